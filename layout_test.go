// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import (
	"errors"
	"testing"
)

func TestProperties_BytesPerRow(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		width  uint32
		want   uint64
	}{
		{"RGBA8 is 4 per pixel", FormatRGBA8Unorm, 256, 1024},
		{"R8 is 1 per pixel", FormatR8Unorm, 100, 100},
		{"BC7 rounds up to blocks", FormatBC7RGBAUnorm, 10, 48},
		{"BC7 exact blocks", FormatBC7RGBAUnorm, 8, 32},
		{"ASTC5x5 rounds up", FormatASTC5x5Unorm, 12, 48},
		{"PVRTC clamps to two blocks", FormatPVRTC1RGBA4, 4, 16},
		{"PVRTC above the clamp", FormatPVRTC1RGBA4, 16, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PropertiesOf(tt.format).BytesPerRow(tt.width); got != tt.want {
				t.Errorf("BytesPerRow(%d) = %d, want %d", tt.width, got, tt.want)
			}
		})
	}
}

func TestProperties_BytesPerRowMonotonic(t *testing.T) {
	for _, f := range []Format{FormatRGBA8Unorm, FormatBC1RGBAUnorm, FormatASTC6x6Unorm, FormatPVRTC1RGBA2} {
		p := PropertiesOf(f)
		prev := uint64(0)
		for w := uint32(1); w <= 64; w++ {
			got := p.BytesPerRow(w)
			if got < prev {
				t.Errorf("%v: BytesPerRow(%d) = %d < BytesPerRow(%d) = %d", f, w, got, w-1, prev)
			}
			prev = got
		}
	}
}

func TestProperties_Rows(t *testing.T) {
	tests := []struct {
		format Format
		height uint32
		want   uint32
	}{
		{FormatRGBA8Unorm, 64, 64},
		{FormatBC7RGBAUnorm, 64, 16},
		{FormatBC7RGBAUnorm, 10, 3},
		{FormatPVRTC1RGBA4, 4, 2},
	}
	for _, tt := range tests {
		r := Range{Width: 16, Height: tt.height, Depth: 1, NumLayers: 1, NumMipLevels: 1, NumFaces: 1}
		if got := PropertiesOf(tt.format).Rows(r); got != tt.want {
			t.Errorf("%v: Rows(height=%d) = %d, want %d", tt.format, tt.height, got, tt.want)
		}
	}
}

func TestProperties_BytesPerLayer(t *testing.T) {
	p := PropertiesOf(FormatRGBA8Unorm)

	if got := p.BytesPerLayer(256, 256, 1, 0); got != 262144 {
		t.Errorf("packed = %d, want 262144", got)
	}
	// A custom stride replaces the packed row size.
	if got := p.BytesPerLayer(256, 256, 1, 2048); got != 524288 {
		t.Errorf("strided = %d, want 524288", got)
	}
	// Depth multiplies linearly.
	if got := p.BytesPerLayer(16, 16, 4, 0); got != 4096 {
		t.Errorf("volume = %d, want 4096", got)
	}
}

func TestProperties_BytesPerRange(t *testing.T) {
	p := PropertiesOf(FormatRGBA8Unorm)

	tests := []struct {
		name string
		r    Range
		want uint64
	}{
		{"single level", New2D(0, 0, 256, 256), 262144},
		{"cube multiplies faces", NewCube(0, 0, 16, 16), 6 * 1024},
		{"array multiplies layers", New2DArray(0, 0, 16, 16, 0, 3), 3 * 1024},
		{
			// 4x4 + 2x2 + 1x1 pixels, 4 bytes each.
			name: "mip chain sums halved levels",
			r:    New2D(0, 0, 4, 4).WithNumMipLevels(3),
			want: (16 + 4 + 1) * 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.BytesPerRange(tt.r, 0)
			if err != nil {
				t.Fatalf("BytesPerRange() = %v", err)
			}
			if got != tt.want {
				t.Errorf("BytesPerRange() = %d, want %d", got, tt.want)
			}
		})
	}

	_, err := p.BytesPerRange(New2D(0, 0, 4, 4).WithNumMipLevels(3), 32)
	if !errors.Is(err, ErrStrideWithMipChain) {
		t.Errorf("stride with mip chain gave %v, want ErrStrideWithMipChain", err)
	}
}

func TestProperties_NumMipLevels(t *testing.T) {
	p := PropertiesOf(FormatRGBA8Unorm)

	// Inverse of BytesPerRange for full chains.
	for _, dim := range []uint32{1, 2, 16, 100, 256} {
		chain := CalcNumMipLevels(dim, dim, 1)
		total, err := p.BytesPerRange(New2D(0, 0, dim, dim).WithNumMipLevels(chain), 0)
		if err != nil {
			t.Fatalf("BytesPerRange() = %v", err)
		}
		if got := p.NumMipLevels(dim, dim, total); got != chain {
			t.Errorf("NumMipLevels(%d, %d, %d) = %d, want %d", dim, dim, total, got, chain)
		}
		// One byte short loses the last level.
		if got := p.NumMipLevels(dim, dim, total-1); got != chain-1 {
			t.Errorf("NumMipLevels(%d, %d, %d) = %d, want %d", dim, dim, total-1, got, chain-1)
		}
	}

	// Surplus bytes beyond the full chain are ignored.
	if got := p.NumMipLevels(2, 2, 1<<20); got != 2 {
		t.Errorf("surplus NumMipLevels = %d, want 2", got)
	}
	if got := p.NumMipLevels(16, 16, 0); got != 0 {
		t.Errorf("empty NumMipLevels = %d, want 0", got)
	}
}

func TestProperties_SubRangeByteOffset(t *testing.T) {
	p := PropertiesOf(FormatRGBA8Unorm)

	t.Run("mip walk", func(t *testing.T) {
		r := New2D(0, 0, 16, 16).WithNumMipLevels(3)
		// Level 1 starts after the 16x16 base level.
		got, err := p.SubRangeByteOffset(r, r.AtMipLevel(1), 0)
		if err != nil {
			t.Fatalf("SubRangeByteOffset() = %v", err)
		}
		if want := uint64(16 * 16 * 4); got != want {
			t.Errorf("offset = %d, want %d", got, want)
		}
		// Level 2 starts after base plus level 1.
		got, err = p.SubRangeByteOffset(r, r.AtMipLevel(2), 0)
		if err != nil {
			t.Fatalf("SubRangeByteOffset() = %v", err)
		}
		if want := uint64((16*16 + 8*8) * 4); got != want {
			t.Errorf("offset = %d, want %d", got, want)
		}
	})

	t.Run("layer and face", func(t *testing.T) {
		r := NewCube(0, 0, 8, 8)
		perFace := uint64(8 * 8 * 4)
		got, err := p.SubRangeByteOffset(r, r.AtCubeFace(FacePosY), 0)
		if err != nil {
			t.Fatalf("SubRangeByteOffset() = %v", err)
		}
		if want := 2 * perFace; got != want {
			t.Errorf("face offset = %d, want %d", got, want)
		}

		a := New2DArray(0, 0, 8, 8, 0, 4)
		got, err = p.SubRangeByteOffset(a, a.AtLayer(3), 0)
		if err != nil {
			t.Fatalf("SubRangeByteOffset() = %v", err)
		}
		if want := 3 * perFace; got != want {
			t.Errorf("layer offset = %d, want %d", got, want)
		}
	})

	t.Run("z slice honors stride", func(t *testing.T) {
		r := New3D(0, 0, 0, 8, 8, 4)
		sub := r
		sub.Z, sub.Depth = 2, 2
		got, err := p.SubRangeByteOffset(r, sub, 64)
		if err != nil {
			t.Fatalf("SubRangeByteOffset() = %v", err)
		}
		if want := uint64(2 * 64 * 8); got != want {
			t.Errorf("z offset = %d, want %d", got, want)
		}
	})

	t.Run("rejections", func(t *testing.T) {
		r := New2D(0, 0, 16, 16).WithNumMipLevels(2)

		shifted := r.AtMipLevel(0)
		shifted.X = 4
		if _, err := p.SubRangeByteOffset(r, shifted, 0); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("x offset gave %v, want ErrInvalidArgument", err)
		}

		outside := r.AtMipLevel(0)
		outside.MipLevel = 5
		if _, err := p.SubRangeByteOffset(r, outside, 0); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("outside mips gave %v, want ErrInvalidArgument", err)
		}

		if _, err := p.SubRangeByteOffset(r, r.AtMipLevel(1), 128); !errors.Is(err, ErrStrideWithMipChain) {
			t.Errorf("stride across levels gave %v, want ErrStrideWithMipChain", err)
		}
	})
}
