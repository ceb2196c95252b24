// Package mipchain computes mip-map chain layouts and provides a CPU
// reference downsampler matching the GPU compute path.
package mipchain

import "math/bits"

// Extent describes the pixel dimensions of a single mip level.
type Extent struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// IsZero reports whether any dimension has collapsed to zero.
// Floor-halving a non-power-of-two source can legitimately produce
// zero-sized trailing levels; such levels hold no pixels.
func (e Extent) IsZero() bool {
	return e.Width == 0 || e.Height == 0 || e.Depth == 0
}

// Chain is the planned mip-level layout for a base image.
type Chain struct {
	// Levels holds one extent per mip level, level 0 first.
	Levels []Extent
}

// Count returns the number of mip levels in the chain.
func (c Chain) Count() int {
	return len(c.Levels)
}

// BitWidth returns the number of bits needed to represent n:
// 0 for 0, otherwise 1 + floor(log2 n).
func BitWidth(n uint32) uint32 {
	return uint32(bits.Len32(n))
}

// Plan computes the mip chain for a base image of the given size.
//
// The level count is the bit width of the larger dimension. Level 0 is
// the full-resolution source with depth 1; every following level halves
// each dimension by integer floor division. The halving is NOT clamped
// to 1: a dimension may reach 0 before the chain ends (and depth does so
// immediately, since 1/2 == 0). Callers must tolerate zero-sized
// trailing extents rather than treat them as errors.
func Plan(baseWidth, baseHeight uint32) Chain {
	count := BitWidth(max(baseWidth, baseHeight))
	if count == 0 {
		return Chain{}
	}

	levels := make([]Extent, count)
	levels[0] = Extent{Width: baseWidth, Height: baseHeight, Depth: 1}
	for i := 1; i < len(levels); i++ {
		prev := levels[i-1]
		levels[i] = Extent{
			Width:  prev.Width / 2,
			Height: prev.Height / 2,
			Depth:  prev.Depth / 2,
		}
	}
	return Chain{Levels: levels}
}
