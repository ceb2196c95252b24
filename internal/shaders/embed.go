// Package shaders provides embedded WGSL shader sources.
package shaders

import _ "embed"

// MipMapCompute fills one mip level from the level above it.
// Entry point: computeMipMap.
//
//go:embed mipmap.wgsl
var MipMapCompute string

// OverlaySolid renders untextured widget and panel quads.
//
//go:embed overlay_solid.wgsl
var OverlaySolid string

// OverlayText renders font atlas glyphs.
//
//go:embed overlay_text.wgsl
var OverlayText string

// OverlayPreview renders the selected mip level into the window.
//
//go:embed overlay_preview.wgsl
var OverlayPreview string
