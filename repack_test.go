// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import (
	"bytes"
	"errors"
	"testing"
)

// gradient fills a buffer with a deterministic byte pattern.
func gradient(n uint64) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i * 7)
	}
	return b
}

func TestRepackData_Identity(t *testing.T) {
	p := PropertiesOf(FormatRGBA8Unorm)
	r := New2D(0, 0, 8, 8)
	src := gradient(8 * 8 * 4)
	dst := make([]byte, len(src))

	if err := RepackData(p, r, src, 0, dst, 0, false); err != nil {
		t.Fatalf("RepackData() = %v", err)
	}
	if !bytes.Equal(src, dst) {
		t.Error("packed-to-packed copy altered the data")
	}
}

func TestRepackData_StrideChange(t *testing.T) {
	p := PropertiesOf(FormatR8Unorm)
	r := New2D(0, 0, 4, 3)

	// Source rows are 8 bytes with 4 meaningful; destination is packed.
	src := []byte{
		1, 2, 3, 4, 0xAA, 0xAA, 0xAA, 0xAA,
		5, 6, 7, 8, 0xAA, 0xAA, 0xAA, 0xAA,
		9, 10, 11, 12, 0xAA, 0xAA, 0xAA, 0xAA,
	}
	dst := make([]byte, 12)
	if err := RepackData(p, r, src, 8, dst, 0, false); err != nil {
		t.Fatalf("RepackData() = %v", err)
	}
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if !bytes.Equal(dst, want) {
		t.Errorf("dst = %v, want %v", dst, want)
	}

	// Widening never zero pads the tail of a row.
	wide := bytes.Repeat([]byte{0xFF}, 3*8)
	if err := RepackData(p, r, want, 0, wide, 8, false); err != nil {
		t.Fatalf("RepackData() = %v", err)
	}
	for row := 0; row < 3; row++ {
		if !bytes.Equal(wide[row*8:row*8+4], want[row*4:row*4+4]) {
			t.Errorf("row %d data not copied", row)
		}
		if wide[row*8+4] != 0xFF {
			t.Errorf("row %d tail was touched", row)
		}
	}
}

func TestRepackData_FlipVertical(t *testing.T) {
	p := PropertiesOf(FormatR8Unorm)

	t.Run("single slab", func(t *testing.T) {
		r := New2D(0, 0, 2, 3)
		src := []byte{1, 2, 3, 4, 5, 6}
		dst := make([]byte, 6)
		if err := RepackData(p, r, src, 0, dst, 0, true); err != nil {
			t.Fatalf("RepackData() = %v", err)
		}
		want := []byte{5, 6, 3, 4, 1, 2}
		if !bytes.Equal(dst, want) {
			t.Errorf("dst = %v, want %v", dst, want)
		}
	})

	t.Run("flip is per layer", func(t *testing.T) {
		r := New2DArray(0, 0, 1, 2, 0, 2)
		src := []byte{1, 2, 3, 4}
		dst := make([]byte, 4)
		if err := RepackData(p, r, src, 0, dst, 0, true); err != nil {
			t.Fatalf("RepackData() = %v", err)
		}
		// Rows swap within each layer, layers stay in order.
		want := []byte{2, 1, 4, 3}
		if !bytes.Equal(dst, want) {
			t.Errorf("dst = %v, want %v", dst, want)
		}
	})
}

func TestRepackData_Errors(t *testing.T) {
	p := PropertiesOf(FormatRGBA8Unorm)

	multiMip := New2D(0, 0, 8, 8).WithNumMipLevels(2)
	err := RepackData(p, multiMip, make([]byte, 1024), 0, make([]byte, 1024), 0, false)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("multi-mip gave %v, want ErrInvalidArgument", err)
	}

	r := New2D(0, 0, 8, 8)
	err = RepackData(p, r, make([]byte, 10), 0, make([]byte, 256), 0, false)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("short source gave %v, want ErrInvalidArgument", err)
	}
	err = RepackData(p, r, make([]byte, 256), 0, make([]byte, 10), 0, false)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("short destination gave %v, want ErrInvalidArgument", err)
	}
}

func TestRepackData_CompressedRows(t *testing.T) {
	// 8x8 BC1 is 2x2 blocks of 8 bytes; rows are block rows.
	p := PropertiesOf(FormatBC1RGBAUnorm)
	r := New2D(0, 0, 8, 8)
	src := gradient(2 * 2 * 8)
	dst := make([]byte, len(src))

	if err := RepackData(p, r, src, 0, dst, 0, true); err != nil {
		t.Fatalf("RepackData() = %v", err)
	}
	// Two block rows of 16 bytes, swapped.
	if !bytes.Equal(dst[:16], src[16:]) || !bytes.Equal(dst[16:], src[:16]) {
		t.Error("block rows not flipped as units")
	}
}
