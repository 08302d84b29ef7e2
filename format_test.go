// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestPropertiesOf_Catalog(t *testing.T) {
	tests := []struct {
		name          string
		format        Format
		bytesPerBlock uint8
		blockW        uint8
		blockH        uint8
		compressed    bool
	}{
		{"RGBA8", FormatRGBA8Unorm, 4, 1, 1, false},
		{"R8", FormatR8Unorm, 1, 1, 1, false},
		{"RGBA32F", FormatRGBA32Float, 16, 1, 1, false},
		{"BC7", FormatBC7RGBAUnorm, 16, 4, 4, true},
		{"ETC2", FormatETC2RGB8Unorm, 8, 4, 4, true},
		{"ASTC6x6", FormatASTC6x6Unorm, 16, 6, 6, true},
		{"PVRTC2bpp", FormatPVRTC1RGBA2, 8, 8, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PropertiesOf(tt.format)
			if !p.IsValid() {
				t.Fatalf("PropertiesOf(%v) reported invalid", tt.format)
			}
			if p.BytesPerBlock != tt.bytesPerBlock {
				t.Errorf("BytesPerBlock = %d, want %d", p.BytesPerBlock, tt.bytesPerBlock)
			}
			if p.BlockWidth != tt.blockW || p.BlockHeight != tt.blockH {
				t.Errorf("block = %dx%d, want %dx%d", p.BlockWidth, p.BlockHeight, tt.blockW, tt.blockH)
			}
			if p.IsCompressed() != tt.compressed {
				t.Errorf("IsCompressed() = %v, want %v", p.IsCompressed(), tt.compressed)
			}
		})
	}
}

func TestPropertiesOf_Unknown(t *testing.T) {
	p := PropertiesOf(FormatInvalid)
	if p.IsValid() {
		t.Error("FormatInvalid reported valid")
	}
	if p.Name != "Invalid" {
		t.Errorf("Name = %q, want Invalid", p.Name)
	}
}

func TestProperties_Aspects(t *testing.T) {
	tests := []struct {
		format                           Format
		depthOnly, stencilOnly, combined bool
	}{
		{FormatDepth32Float, true, false, true},
		{FormatStencil8, false, true, true},
		{FormatDepth24PlusStencil8, false, false, true},
		{FormatRGBA8Unorm, false, false, false},
	}

	for _, tt := range tests {
		p := PropertiesOf(tt.format)
		if p.IsDepthOnly() != tt.depthOnly {
			t.Errorf("%v: IsDepthOnly() = %v, want %v", tt.format, p.IsDepthOnly(), tt.depthOnly)
		}
		if p.IsStencilOnly() != tt.stencilOnly {
			t.Errorf("%v: IsStencilOnly() = %v, want %v", tt.format, p.IsStencilOnly(), tt.stencilOnly)
		}
		if p.IsDepthOrStencil() != tt.combined {
			t.Errorf("%v: IsDepthOrStencil() = %v, want %v", tt.format, p.IsDepthOrStencil(), tt.combined)
		}
	}
}

func TestFormat_GPUTypeRoundTrip(t *testing.T) {
	shared := []Format{FormatR8Unorm, FormatRGBA8Unorm, FormatBGRA8Unorm, FormatDepth24PlusStencil8}
	for _, f := range shared {
		g, ok := f.GPUType()
		if !ok {
			t.Errorf("%v: GPUType() not convertible", f)
			continue
		}
		if back := FormatFromGPUType(g); back != f {
			t.Errorf("%v: round trip gave %v", f, back)
		}
	}

	if _, ok := FormatBC7RGBAUnorm.GPUType(); ok {
		t.Error("BC7 should not convert to a gputypes format")
	}
	if f := FormatFromGPUType(gputypes.TextureFormatUndefined); f != FormatInvalid {
		t.Errorf("Undefined mapped to %v, want FormatInvalid", f)
	}
}

func TestFormat_String(t *testing.T) {
	if got := FormatRGBA8Unorm.String(); got != "RGBA8Unorm" {
		t.Errorf("String() = %q", got)
	}
	if got := Format(250).String(); got != "Invalid" {
		t.Errorf("unknown String() = %q", got)
	}
}
