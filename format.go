// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import "github.com/gogpu/gputypes"

// Format identifies a texture pixel format.
//
// The identifier space is owned by this package so that compressed formats
// and min-block constraints can be described uniformly across backends.
// Use [FormatFromGPUType] and [Format.GPUType] to interoperate with the
// gputypes vocabulary where the two overlap.
type Format uint8

const (
	FormatInvalid Format = iota

	// 8-bit per component, unsigned normalized.
	FormatR8Unorm
	FormatRG8Unorm
	FormatRGBA8Unorm
	FormatRGBA8UnormSrgb
	FormatBGRA8Unorm
	FormatBGRA8UnormSrgb

	// Packed and wide color.
	FormatRGB10A2Unorm
	FormatRG16Float
	FormatRGBA16Float
	FormatRGBA32Float

	// Integer. Sampling requires integer-sampler support.
	FormatR32Uint
	FormatRGBA32Uint

	// Depth and stencil.
	FormatDepth16Unorm
	FormatDepth32Float
	FormatDepth24PlusStencil8
	FormatStencil8

	// Block-compressed.
	FormatBC1RGBAUnorm
	FormatBC7RGBAUnorm
	FormatETC2RGB8Unorm
	FormatETC2RGB8UnormSrgb
	FormatEACR11Unorm
	FormatASTC4x4Unorm
	FormatASTC5x5Unorm
	FormatASTC6x6Unorm
	FormatPVRTC1RGBA4
	FormatPVRTC1RGBA2
)

// FormatFlags is a bit set of boolean format properties.
type FormatFlags uint8

const (
	// FlagDepth marks depth texture formats.
	FlagDepth FormatFlags = 1 << iota

	// FlagStencil marks stencil texture formats.
	FlagStencil

	// FlagCompressed marks block-compressed formats.
	FlagCompressed

	// FlagSRGB marks formats with sRGB transfer encoding.
	FlagSRGB

	// FlagInteger marks formats that cannot be sampled through float
	// samplers and require integer texture support.
	FlagInteger
)

// Properties describes the immutable byte layout of a texture format.
//
// For uncompressed formats the block footprint is 1×1×1 and BytesPerBlock
// is the size of one pixel. For compressed formats the block covers
// BlockWidth × BlockHeight × BlockDepth pixels, and MinBlocksX/Y/Z give
// the minimum block count the hardware addresses per axis regardless of
// the logical size (PVRTC requires at least 2×2 blocks).
type Properties struct {
	Name               string
	Format             Format
	ComponentsPerPixel uint8
	BytesPerBlock      uint8
	BlockWidth         uint8
	BlockHeight        uint8
	BlockDepth         uint8
	MinBlocksX         uint8
	MinBlocksY         uint8
	MinBlocksZ         uint8
	Flags              FormatFlags
}

// IsValid reports whether the properties describe a known format.
func (p Properties) IsValid() bool { return p.Format != FormatInvalid }

// IsCompressed reports whether the format is block-compressed.
func (p Properties) IsCompressed() bool { return p.Flags&FlagCompressed != 0 }

// IsSRGB reports whether the format uses sRGB transfer encoding.
func (p Properties) IsSRGB() bool { return p.Flags&FlagSRGB != 0 }

// IsInteger reports whether the format requires integer samplers.
func (p Properties) IsInteger() bool { return p.Flags&FlagInteger != 0 }

// IsDepthOnly reports whether the format has a depth aspect and no
// stencil aspect.
func (p Properties) IsDepthOnly() bool {
	return p.Flags&FlagDepth != 0 && p.Flags&FlagStencil == 0
}

// IsStencilOnly reports whether the format has a stencil aspect and no
// depth aspect.
func (p Properties) IsStencilOnly() bool {
	return p.Flags&FlagDepth == 0 && p.Flags&FlagStencil != 0
}

// IsDepthOrStencil reports whether the format has a depth or stencil
// aspect.
func (p Properties) IsDepthOrStencil() bool {
	return p.Flags&(FlagDepth|FlagStencil) != 0
}

// props is a shorthand constructor for the catalog below.
func props(name string, f Format, comps, bpb, bw, bh, bd, minX, minY, minZ uint8, flags FormatFlags) Properties {
	return Properties{
		Name:               name,
		Format:             f,
		ComponentsPerPixel: comps,
		BytesPerBlock:      bpb,
		BlockWidth:         bw,
		BlockHeight:        bh,
		BlockDepth:         bd,
		MinBlocksX:         minX,
		MinBlocksY:         minY,
		MinBlocksZ:         minZ,
		Flags:              flags,
	}
}

// uncompressed is a shorthand for 1×1×1 block formats.
func uncompressed(name string, f Format, comps, bpp uint8, flags FormatFlags) Properties {
	return props(name, f, comps, bpp, 1, 1, 1, 1, 1, 1, flags)
}

// catalog is the process-wide constant format table.
var catalog = map[Format]Properties{
	FormatR8Unorm:        uncompressed("R8Unorm", FormatR8Unorm, 1, 1, 0),
	FormatRG8Unorm:       uncompressed("RG8Unorm", FormatRG8Unorm, 2, 2, 0),
	FormatRGBA8Unorm:     uncompressed("RGBA8Unorm", FormatRGBA8Unorm, 4, 4, 0),
	FormatRGBA8UnormSrgb: uncompressed("RGBA8UnormSrgb", FormatRGBA8UnormSrgb, 4, 4, FlagSRGB),
	FormatBGRA8Unorm:     uncompressed("BGRA8Unorm", FormatBGRA8Unorm, 4, 4, 0),
	FormatBGRA8UnormSrgb: uncompressed("BGRA8UnormSrgb", FormatBGRA8UnormSrgb, 4, 4, FlagSRGB),

	FormatRGB10A2Unorm: uncompressed("RGB10A2Unorm", FormatRGB10A2Unorm, 4, 4, 0),
	FormatRG16Float:    uncompressed("RG16Float", FormatRG16Float, 2, 4, 0),
	FormatRGBA16Float:  uncompressed("RGBA16Float", FormatRGBA16Float, 4, 8, 0),
	FormatRGBA32Float:  uncompressed("RGBA32Float", FormatRGBA32Float, 4, 16, 0),

	FormatR32Uint:    uncompressed("R32Uint", FormatR32Uint, 1, 4, FlagInteger),
	FormatRGBA32Uint: uncompressed("RGBA32Uint", FormatRGBA32Uint, 4, 16, FlagInteger),

	FormatDepth16Unorm:        uncompressed("Depth16Unorm", FormatDepth16Unorm, 1, 2, FlagDepth),
	FormatDepth32Float:        uncompressed("Depth32Float", FormatDepth32Float, 1, 4, FlagDepth),
	FormatDepth24PlusStencil8: uncompressed("Depth24PlusStencil8", FormatDepth24PlusStencil8, 2, 4, FlagDepth|FlagStencil),
	FormatStencil8:            uncompressed("Stencil8", FormatStencil8, 1, 1, FlagStencil),

	FormatBC1RGBAUnorm:      props("BC1RGBAUnorm", FormatBC1RGBAUnorm, 4, 8, 4, 4, 1, 1, 1, 1, FlagCompressed),
	FormatBC7RGBAUnorm:      props("BC7RGBAUnorm", FormatBC7RGBAUnorm, 4, 16, 4, 4, 1, 1, 1, 1, FlagCompressed),
	FormatETC2RGB8Unorm:     props("ETC2RGB8Unorm", FormatETC2RGB8Unorm, 3, 8, 4, 4, 1, 1, 1, 1, FlagCompressed),
	FormatETC2RGB8UnormSrgb: props("ETC2RGB8UnormSrgb", FormatETC2RGB8UnormSrgb, 3, 8, 4, 4, 1, 1, 1, 1, FlagCompressed|FlagSRGB),
	FormatEACR11Unorm:       props("EACR11Unorm", FormatEACR11Unorm, 1, 8, 4, 4, 1, 1, 1, 1, FlagCompressed),
	FormatASTC4x4Unorm:      props("ASTC4x4Unorm", FormatASTC4x4Unorm, 4, 16, 4, 4, 1, 1, 1, 1, FlagCompressed),
	FormatASTC5x5Unorm:      props("ASTC5x5Unorm", FormatASTC5x5Unorm, 4, 16, 5, 5, 1, 1, 1, 1, FlagCompressed),
	FormatASTC6x6Unorm:      props("ASTC6x6Unorm", FormatASTC6x6Unorm, 4, 16, 6, 6, 1, 1, 1, 1, FlagCompressed),

	// PVRTC addresses a minimum of 2×2 blocks per surface.
	FormatPVRTC1RGBA4: props("PVRTC1RGBA4", FormatPVRTC1RGBA4, 4, 8, 4, 4, 1, 2, 2, 1, FlagCompressed),
	FormatPVRTC1RGBA2: props("PVRTC1RGBA2", FormatPVRTC1RGBA2, 4, 8, 8, 4, 1, 2, 2, 1, FlagCompressed),
}

// PropertiesOf returns the layout properties for f.
// Unknown formats return a zero Properties with Name "Invalid"; check
// [Properties.IsValid] before relying on the result.
func PropertiesOf(f Format) Properties {
	if p, ok := catalog[f]; ok {
		return p
	}
	return Properties{Name: "Invalid"}
}

// String returns the format's catalog name.
func (f Format) String() string { return PropertiesOf(f).Name }

// FormatFromGPUType converts a gputypes texture format to the texel
// identifier space. Formats outside the shared subset map to
// [FormatInvalid].
func FormatFromGPUType(f gputypes.TextureFormat) Format {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return FormatR8Unorm
	case gputypes.TextureFormatRGBA8Unorm:
		return FormatRGBA8Unorm
	case gputypes.TextureFormatBGRA8Unorm:
		return FormatBGRA8Unorm
	case gputypes.TextureFormatDepth24PlusStencil8:
		return FormatDepth24PlusStencil8
	default:
		return FormatInvalid
	}
}

// GPUType converts the format to the gputypes vocabulary.
// The second result is false for formats outside the shared subset.
func (f Format) GPUType() (gputypes.TextureFormat, bool) {
	switch f {
	case FormatR8Unorm:
		return gputypes.TextureFormatR8Unorm, true
	case FormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm, true
	case FormatBGRA8Unorm:
		return gputypes.TextureFormatBGRA8Unorm, true
	case FormatDepth24PlusStencil8:
		return gputypes.TextureFormatDepth24PlusStencil8, true
	default:
		return gputypes.TextureFormatUndefined, false
	}
}
