// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import (
	"fmt"
	"math"
)

// CubeFace identifies one side of a cube texture.
// The numbering follows the usual +X, -X, +Y, -Y, +Z, -Z order.
type CubeFace uint8

const (
	FacePosX CubeFace = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ

	// NumCubeFaces is the number of faces in a cube texture.
	NumCubeFaces = 6
)

// String returns the face name.
func (f CubeFace) String() string {
	switch f {
	case FacePosX:
		return "+X"
	case FaceNegX:
		return "-X"
	case FacePosY:
		return "+Y"
	case FaceNegY:
		return "-Y"
	case FacePosZ:
		return "+Z"
	case FaceNegZ:
		return "-Z"
	default:
		return fmt.Sprintf("CubeFace(%d)", uint8(f))
	}
}

// Range describes a rectangular sub-region of a texture across five
// addressable axes: spatial X/Y/Z, array layer, mip level and cube face.
//
// Range is an immutable value: the At*/With* methods return a modified
// copy and never mutate the receiver. Two ranges are equal exactly when
// all their fields compare equal with ==.
//
// Use the New* factories rather than a composite literal; they fix the
// axes a topology does not use to their identity values (offset 0,
// count 1).
type Range struct {
	X, Y, Z      uint32
	Width        uint32
	Height       uint32
	Depth        uint32
	Layer        uint32
	NumLayers    uint32
	MipLevel     uint32
	NumMipLevels uint32
	Face         uint32
	NumFaces     uint32
}

// New1D returns a range covering a span of a 1D texture.
func New1D(x, width uint32) Range {
	return New1DArray(x, width, 0, 1)
}

// New1DArray returns a range covering a span of layers of a 1D array
// texture.
func New1DArray(x, width, layer, numLayers uint32) Range {
	return Range{
		X: x, Width: width,
		Height: 1, Depth: 1,
		Layer: layer, NumLayers: numLayers,
		NumMipLevels: 1,
		NumFaces:     1,
	}
}

// New2D returns a range covering a rectangle of a 2D texture.
func New2D(x, y, width, height uint32) Range {
	return New2DArray(x, y, width, height, 0, 1)
}

// New2DArray returns a range covering a rectangle of a span of layers of
// a 2D array texture.
func New2DArray(x, y, width, height, layer, numLayers uint32) Range {
	return Range{
		X: x, Y: y, Width: width, Height: height,
		Depth: 1,
		Layer: layer, NumLayers: numLayers,
		NumMipLevels: 1,
		NumFaces:     1,
	}
}

// New3D returns a range covering a box of a 3D texture.
func New3D(x, y, z, width, height, depth uint32) Range {
	return Range{
		X: x, Y: y, Z: z,
		Width: width, Height: height, Depth: depth,
		NumLayers:    1,
		NumMipLevels: 1,
		NumFaces:     1,
	}
}

// NewCube returns a range covering a rectangle of all six faces of a
// cube texture.
func NewCube(x, y, width, height uint32) Range {
	r := New2D(x, y, width, height)
	r.NumFaces = NumCubeFaces
	return r
}

// NewCubeFace returns a range covering a rectangle of a single face of a
// cube texture.
func NewCubeFace(x, y, width, height uint32, face CubeFace) Range {
	r := New2D(x, y, width, height)
	r.Face = uint32(face)
	return r
}

// AtMipLevel returns a copy of r pinned to a single mip level.
// Pinning to r's own level leaves every other field unchanged; pinning
// to a deeper level scales the spatial offsets and extents down by one
// half per level (floor, extents never below 1).
func (r Range) AtMipLevel(mipLevel uint32) Range {
	out := r
	out.MipLevel = mipLevel
	out.NumMipLevels = 1
	if mipLevel <= r.MipLevel {
		return out
	}
	delta := mipLevel - r.MipLevel
	if delta >= 32 {
		delta = 31
	}
	out.X = r.X >> delta
	out.Y = r.Y >> delta
	out.Z = r.Z >> delta
	out.Width = mipDimension(r.Width, delta)
	out.Height = mipDimension(r.Height, delta)
	out.Depth = mipDimension(r.Depth, delta)
	return out
}

// WithNumMipLevels returns a copy of r with the mip count adjusted.
// The mip offset is unchanged.
func (r Range) WithNumMipLevels(numMipLevels uint32) Range {
	r.NumMipLevels = numMipLevels
	return r
}

// AtLayer returns a copy of r pinned to a single array layer.
func (r Range) AtLayer(layer uint32) Range {
	r.Layer = layer
	r.NumLayers = 1
	return r
}

// WithNumLayers returns a copy of r with the layer count adjusted.
func (r Range) WithNumLayers(numLayers uint32) Range {
	r.NumLayers = numLayers
	return r
}

// AtFace returns a copy of r pinned to a single face index.
func (r Range) AtFace(face uint32) Range {
	r.Face = face
	r.NumFaces = 1
	return r
}

// AtCubeFace returns a copy of r pinned to a single cube face.
func (r Range) AtCubeFace(face CubeFace) Range {
	return r.AtFace(uint32(face))
}

// WithNumFaces returns a copy of r with the face count adjusted.
func (r Range) WithNumFaces(numFaces uint32) Range {
	r.NumFaces = numFaces
	return r
}

// Validate checks the range invariants:
//
//  1. Width, Height, Depth, NumLayers, NumMipLevels and NumFaces are all
//     at least 1.
//  2. NumMipLevels does not exceed the mip chain length for
//     Width×Height×Depth.
//  3. MipLevel, X+Width, Y+Height, Z+Depth and Layer+NumLayers all fit
//     in 32 bits.
//  4. (X+Width)·(Y+Height)·(Z+Depth)·(Layer+NumLayers)·NumFaces fits in
//     32 bits.
//  5. Face < 6 and NumFaces <= 6.
//
// The returned error wraps [ErrInvalidRange] (and therefore
// [ErrInvalidArgument]) and names the violated invariant.
func (r Range) Validate() error {
	switch {
	case r.Width == 0:
		return fmt.Errorf("%w: width must be at least 1", ErrInvalidRange)
	case r.Height == 0:
		return fmt.Errorf("%w: height must be at least 1", ErrInvalidRange)
	case r.Depth == 0:
		return fmt.Errorf("%w: depth must be at least 1", ErrInvalidRange)
	case r.NumLayers == 0:
		return fmt.Errorf("%w: numLayers must be at least 1", ErrInvalidRange)
	case r.NumMipLevels == 0:
		return fmt.Errorf("%w: numMipLevels must be at least 1", ErrInvalidRange)
	case r.NumFaces == 0:
		return fmt.Errorf("%w: numFaces must be at least 1", ErrInvalidRange)
	}

	if chain := CalcNumMipLevels(r.Width, r.Height, r.Depth); r.NumMipLevels > chain {
		return fmt.Errorf("%w: numMipLevels %d exceeds the %d-level chain for %dx%dx%d",
			ErrInvalidRange, r.NumMipLevels, chain, r.Width, r.Height, r.Depth)
	}

	// Sums are computed in 64 bits; each must fit in 32.
	sums := [...]struct {
		name string
		v    uint64
	}{
		{"x+width", uint64(r.X) + uint64(r.Width)},
		{"y+height", uint64(r.Y) + uint64(r.Height)},
		{"z+depth", uint64(r.Z) + uint64(r.Depth)},
		{"layer+numLayers", uint64(r.Layer) + uint64(r.NumLayers)},
	}
	product := uint64(r.NumFaces)
	for _, s := range sums {
		if s.v > math.MaxUint32 {
			return fmt.Errorf("%w: %s exceeds 32 bits", ErrInvalidRange, s.name)
		}
		if product > math.MaxUint32/s.v {
			return fmt.Errorf("%w: total extent exceeds 32 bits", ErrInvalidRange)
		}
		product *= s.v
	}

	if r.Face >= NumCubeFaces {
		return fmt.Errorf("%w: face %d out of range", ErrInvalidRange, r.Face)
	}
	if r.NumFaces > NumCubeFaces {
		return fmt.Errorf("%w: numFaces %d out of range", ErrInvalidRange, r.NumFaces)
	}
	return nil
}

// mipDimension halves d once per level below the base, never dropping
// below 1.
func mipDimension(d uint32, level uint32) uint32 {
	if level >= 32 {
		return 1
	}
	if d >>= level; d == 0 {
		return 1
	}
	return d
}

// CalcNumMipLevels returns the length of the full mip chain for the
// given dimensions: the number of times the largest dimension can be
// halved, plus one for the base level. Zero dimensions yield 0.
func CalcNumMipLevels(width, height uint32, depth uint32) uint32 {
	if width == 0 || height == 0 || depth == 0 {
		return 0
	}
	levels := uint32(1)
	for d := max(width, height, depth); d > 1; d >>= 1 {
		levels++
	}
	return levels
}
