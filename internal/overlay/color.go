package overlay

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Predefined colors for the panel theme.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}

	ColorPanelBg      = Color{0.09, 0.09, 0.12, 0.94}
	ColorPanelBorder  = Color{0.3, 0.3, 0.38, 1}
	ColorButtonNormal = Color{0.16, 0.16, 0.21, 1}
	ColorButtonHover  = Color{0.24, 0.24, 0.32, 1}
	ColorButtonActive = Color{0.12, 0.32, 0.52, 1}
	ColorInputBg      = Color{0.05, 0.05, 0.08, 1}
	ColorInputBorder  = Color{0.2, 0.2, 0.28, 1}
	ColorText         = Color{0.9, 0.9, 0.9, 1}
	ColorTextDim      = Color{0.52, 0.52, 0.6, 1}
	ColorHighlight    = Color{0.22, 0.58, 0.88, 1}
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Darken returns a darker version of the color.
func (c Color) Darken(factor float32) Color {
	return Color{
		R: c.R * (1 - factor),
		G: c.G * (1 - factor),
		B: c.B * (1 - factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of the color.
func (c Color) Lighten(factor float32) Color {
	return Color{
		R: c.R + (1-c.R)*factor,
		G: c.G + (1-c.G)*factor,
		B: c.B + (1-c.B)*factor,
		A: c.A,
	}
}
