// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import "fmt"

// RepackData copies texture data from src to dst one row at a time,
// changing the row stride from srcBytesPerRow to dstBytesPerRow. A
// stride of 0 means packed (the format's default for the range width).
//
// The copy walks the range in the canonical nesting order (layer, face,
// z slice, row; the range must cover exactly one mip level). When the
// destination stride is smaller than the source stride the tail of each
// source row is dropped; the destination is never zero padded, so only
// the overlapping bytes of each row are meaningful.
//
// When flipVertical is set, row order is reversed independently within
// each (layer, face, z slice) slab.
func RepackData(p Properties, r Range, src []byte, srcBytesPerRow uint64, dst []byte, dstBytesPerRow uint64, flipVertical bool) error {
	if r.NumMipLevels != 1 {
		return fmt.Errorf("%w: repacking requires a single mip level", ErrInvalidArgument)
	}
	if srcBytesPerRow == 0 {
		srcBytesPerRow = p.BytesPerRow(r.Width)
	}
	if dstBytesPerRow == 0 {
		dstBytesPerRow = p.BytesPerRow(r.Width)
	}
	n := min(srcBytesPerRow, dstBytesPerRow)

	rows := uint64(p.Rows(r))
	slabs := uint64(r.NumLayers) * uint64(r.NumFaces) * uint64(r.Depth)
	if need := srcBytesPerRow * rows * slabs; uint64(len(src)) < need {
		return fmt.Errorf("%w: source holds %d bytes, need %d", ErrInvalidArgument, len(src), need)
	}
	if need := dstBytesPerRow * rows * slabs; uint64(len(dst)) < need {
		return fmt.Errorf("%w: destination holds %d bytes, need %d", ErrInvalidArgument, len(dst), need)
	}

	var srcOff, dstOff uint64
	for slab := uint64(0); slab < slabs; slab++ {
		dstRow := dstOff
		dstStep := int64(dstBytesPerRow)
		if flipVertical {
			dstRow = dstOff + (rows-1)*dstBytesPerRow
			dstStep = -dstStep
		}
		for row := uint64(0); row < rows; row++ {
			copy(dst[dstRow:dstRow+n], src[srcOff:srcOff+n])
			srcOff += srcBytesPerRow
			dstRow = uint64(int64(dstRow) + dstStep)
		}
		dstOff += rows * dstBytesPerRow
	}
	return nil
}
