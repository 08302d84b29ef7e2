// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import "fmt"

// TextureType denotes the storage topology of a texture.
type TextureType uint8

const (
	// TextureTypeInvalid is the zero value; descriptors must pick a
	// concrete type.
	TextureTypeInvalid TextureType = iota

	// TextureType2D is a single-layer two-dimensional texture.
	TextureType2D

	// TextureType2DArray is a layered two-dimensional texture.
	TextureType2DArray

	// TextureType3D is a volume texture.
	TextureType3D

	// TextureTypeCube is a six-faced cube texture.
	TextureTypeCube

	// TextureTypeExternalImage is an externally provided image, such as
	// a surface texture owned by the host windowing stack.
	TextureTypeExternalImage
)

// String returns the type name.
func (t TextureType) String() string {
	switch t {
	case TextureType2D:
		return "2D"
	case TextureType2DArray:
		return "2DArray"
	case TextureType3D:
		return "3D"
	case TextureTypeCube:
		return "Cube"
	case TextureTypeExternalImage:
		return "ExternalImage"
	default:
		return fmt.Sprintf("TextureType(%d)", uint8(t))
	}
}

// Usage is a bit mask describing how a texture may be used.
type Usage uint8

const (
	// UsageSampled allows use as a read-only texture in shaders.
	UsageSampled Usage = 1 << iota

	// UsageStorage allows use as a read/write storage texture.
	UsageStorage

	// UsageAttachment allows binding as a render-target attachment.
	UsageAttachment
)

// TextureDescriptor describes a texture to create.
//
// Use the New* factories for common topologies; they fill the axes a
// topology does not use with their identity values.
type TextureDescriptor struct {
	// Label is an optional debug name, applied where the backend
	// supports object labels.
	Label string

	// Width, Height and Depth are the base mip level dimensions.
	Width  uint32
	Height uint32
	Depth  uint32

	// NumLayers is the array layer count (1 for non-array textures).
	NumLayers uint32

	// NumMipLevels is the mip chain length.
	NumMipLevels uint32

	// NumSamples is the per-pixel sample count (1 for non-MSAA).
	NumSamples uint32

	// Usage is the allowed-usage mask.
	Usage Usage

	// Type is the storage topology.
	Type TextureType

	// Format is the pixel format.
	Format Format
}

// New2DTexture returns a descriptor for a 2D texture.
func New2DTexture(format Format, width, height uint32, usage Usage, label string) TextureDescriptor {
	return TextureDescriptor{
		Label: label,
		Width: width, Height: height, Depth: 1,
		NumLayers: 1, NumMipLevels: 1, NumSamples: 1,
		Usage: usage, Type: TextureType2D, Format: format,
	}
}

// New2DArrayTexture returns a descriptor for a 2D array texture.
func New2DArrayTexture(format Format, width, height, numLayers uint32, usage Usage, label string) TextureDescriptor {
	d := New2DTexture(format, width, height, usage, label)
	d.Type = TextureType2DArray
	d.NumLayers = numLayers
	return d
}

// New3DTexture returns a descriptor for a volume texture.
func New3DTexture(format Format, width, height, depth uint32, usage Usage, label string) TextureDescriptor {
	d := New2DTexture(format, width, height, usage, label)
	d.Type = TextureType3D
	d.Depth = depth
	return d
}

// NewCubeTexture returns a descriptor for a cube texture.
func NewCubeTexture(format Format, width, height uint32, usage Usage, label string) TextureDescriptor {
	d := New2DTexture(format, width, height, usage, label)
	d.Type = TextureTypeCube
	return d
}

// NewExternalImageTexture returns a descriptor for an externally
// provided image.
func NewExternalImageTexture(format Format, width, height uint32, usage Usage, label string) TextureDescriptor {
	d := New2DTexture(format, width, height, usage, label)
	d.Type = TextureTypeExternalImage
	return d
}

// NumFaces returns the face count implied by the topology: 6 for cube
// textures, 1 otherwise.
func (d TextureDescriptor) NumFaces() uint32 {
	if d.Type == TextureTypeCube {
		return NumCubeFaces
	}
	return 1
}

// AsRange returns the full range equivalent to the descriptor: all of
// the base level's extent, every layer, every face and every mip level.
func (d TextureDescriptor) AsRange() Range {
	return Range{
		Width:        d.Width,
		Height:       d.Height,
		Depth:        d.Depth,
		NumLayers:    d.NumLayers,
		NumMipLevels: d.NumMipLevels,
		NumFaces:     d.NumFaces(),
	}
}

// validate checks the descriptor before texture creation.
func (d TextureDescriptor) validate() error {
	if d.Type == TextureTypeInvalid {
		return fmt.Errorf("%w: texture type not set", ErrInvalidArgument)
	}
	if !PropertiesOf(d.Format).IsValid() {
		return fmt.Errorf("%w: unknown format %d", ErrInvalidArgument, d.Format)
	}
	if d.Width == 0 || d.Height == 0 || d.Depth == 0 {
		return fmt.Errorf("%w: texture dimensions must be at least 1", ErrInvalidArgument)
	}
	if d.NumLayers == 0 || d.NumMipLevels == 0 || d.NumSamples == 0 {
		return fmt.Errorf("%w: texture counts must be at least 1", ErrInvalidArgument)
	}
	if chain := CalcNumMipLevels(d.Width, d.Height, d.Depth); d.NumMipLevels > chain {
		return fmt.Errorf("%w: %d mip levels exceed the %d-level chain", ErrInvalidArgument, d.NumMipLevels, chain)
	}
	return nil
}
