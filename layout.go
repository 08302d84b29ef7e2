// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import "fmt"

// The functions in this file compute byte geometry for texture data laid
// out in the package's canonical nesting order (mip level, array layer,
// cube face, z slice, row). All sizes are in bytes. A bytesPerRow
// argument of 0 selects the format's default packed stride.

// ceilBlocks divides n by the block size, rounding up.
func ceilBlocks(n uint32, block uint8) uint64 {
	b := uint64(block)
	return (uint64(n) + b - 1) / b
}

// Rows returns the number of rows of texture data in the range.
// For uncompressed formats this is the range height; for compressed
// formats the height is rounded up to whole blocks, subject to the
// format's minimum block count.
//
// The range dimensions must already describe the mip level being
// measured; Rows does not apply mip halving itself.
func (p Properties) Rows(r Range) uint32 {
	rows := ceilBlocks(r.Height, p.BlockHeight)
	if rows < uint64(p.MinBlocksY) {
		rows = uint64(p.MinBlocksY)
	}
	return uint32(rows)
}

// BytesPerRow returns the packed size in bytes of one row of texture
// data that is width pixels wide.
func (p Properties) BytesPerRow(width uint32) uint64 {
	blocks := ceilBlocks(width, p.BlockWidth)
	if blocks < uint64(p.MinBlocksX) {
		blocks = uint64(p.MinBlocksX)
	}
	return blocks * uint64(p.BytesPerBlock)
}

// BytesPerRowRange returns the packed size in bytes of one row of the
// range.
func (p Properties) BytesPerRowRange(r Range) uint64 {
	return p.BytesPerRow(r.Width)
}

// BytesPerLayer returns the size in bytes of one layer (or one cube
// face) of texture data with the given dimensions. The dimensions must
// already describe the mip level being measured. Depth multiplies
// linearly after block rounding along z.
func (p Properties) BytesPerLayer(width, height, depth uint32, bytesPerRow uint64) uint64 {
	if bytesPerRow == 0 {
		bytesPerRow = p.BytesPerRow(width)
	}
	rows := uint64(p.Rows(Range{Width: width, Height: height, Depth: depth}))
	slices := ceilBlocks(depth, p.BlockDepth)
	if slices < uint64(p.MinBlocksZ) {
		slices = uint64(p.MinBlocksZ)
	}
	return bytesPerRow * rows * slices
}

// BytesPerLayerRange returns the size in bytes of one layer of the
// range.
func (p Properties) BytesPerLayerRange(r Range, bytesPerRow uint64) uint64 {
	return p.BytesPerLayer(r.Width, r.Height, r.Depth, bytesPerRow)
}

// BytesPerRange returns the total size in bytes of the range, summed
// across its layers, faces and mip levels. When the range spans more
// than one mip level, width, height and depth are halved (floor,
// minimum 1) for each successive level, and each level uses its own
// default stride: combining a custom bytesPerRow with a multi-level
// range is a contract violation reported as [ErrStrideWithMipChain].
func (p Properties) BytesPerRange(r Range, bytesPerRow uint64) (uint64, error) {
	if bytesPerRow != 0 && r.NumMipLevels > 1 {
		return 0, ErrStrideWithMipChain
	}
	var total uint64
	w, h, d := r.Width, r.Height, r.Depth
	for level := uint32(0); level < r.NumMipLevels; level++ {
		layer := p.BytesPerLayer(w, h, d, bytesPerRow)
		total += layer * uint64(r.NumLayers) * uint64(r.NumFaces)
		w, h, d = mipDimension(w, 1), mipDimension(h, 1), mipDimension(d, 1)
	}
	return total, nil
}

// NumMipLevels returns how many complete mip levels, starting from a
// width×height base level, fit in totalBytes of packed texture data.
// It is the inverse of [Properties.BytesPerRange] over a single-layer,
// single-face 2D range.
func (p Properties) NumMipLevels(width, height uint32, totalBytes uint64) uint32 {
	var levels uint32
	var used uint64
	w, h := width, height
	for {
		n := p.BytesPerLayer(w, h, 1, 0)
		if used+n > totalBytes {
			return levels
		}
		used += n
		levels++
		if w == 1 && h == 1 {
			return levels
		}
		w, h = mipDimension(w, 1), mipDimension(h, 1)
	}
}

// SubRangeByteOffset returns the byte offset of the start of sub within
// the block of data described by r, assuming the canonical nesting
// order.
//
// sub must select a contiguous subset of r along the mip, layer, face
// and z axes only; sub-windows in x or y are not addressable by a byte
// offset and are rejected. bytesPerRow must be 0 unless sub starts at
// r's first mip level and covers a single level, since a custom stride
// is only meaningful within one level.
func (p Properties) SubRangeByteOffset(r, sub Range, bytesPerRow uint64) (uint64, error) {
	if sub.X != r.X || sub.Y != r.Y {
		return 0, fmt.Errorf("%w: subrange must not offset x or y", ErrInvalidArgument)
	}
	if sub.MipLevel < r.MipLevel || sub.MipLevel+sub.NumMipLevels > r.MipLevel+r.NumMipLevels {
		return 0, fmt.Errorf("%w: subrange mip levels outside range", ErrInvalidArgument)
	}
	if sub.Layer < r.Layer || sub.Layer+sub.NumLayers > r.Layer+r.NumLayers {
		return 0, fmt.Errorf("%w: subrange layers outside range", ErrInvalidArgument)
	}
	if sub.Face < r.Face || sub.Face+sub.NumFaces > r.Face+r.NumFaces {
		return 0, fmt.Errorf("%w: subrange faces outside range", ErrInvalidArgument)
	}
	if sub.Z < r.Z || uint64(sub.Z)+uint64(sub.Depth) > uint64(r.Z)+uint64(r.Depth) {
		return 0, fmt.Errorf("%w: subrange z slices outside range", ErrInvalidArgument)
	}
	if bytesPerRow != 0 && (sub.MipLevel != r.MipLevel || sub.NumMipLevels > 1) {
		return 0, ErrStrideWithMipChain
	}

	// The stride check above guarantees bytesPerRow is 0 whenever the
	// walk below crosses a mip boundary, so it can be used directly.
	var offset uint64
	w, h, d := r.Width, r.Height, r.Depth
	for level := r.MipLevel; level < sub.MipLevel; level++ {
		offset += p.BytesPerLayer(w, h, d, 0) * uint64(r.NumLayers) * uint64(r.NumFaces)
		w, h, d = mipDimension(w, 1), mipDimension(h, 1), mipDimension(d, 1)
	}

	perFace := p.BytesPerLayer(w, h, d, bytesPerRow)
	perLayer := perFace * uint64(r.NumFaces)
	offset += uint64(sub.Layer-r.Layer) * perLayer
	offset += uint64(sub.Face-r.Face) * perFace

	rowBytes := bytesPerRow
	if rowBytes == 0 {
		rowBytes = p.BytesPerRow(w)
	}
	offset += uint64(sub.Z-r.Z) * rowBytes * uint64(p.Rows(Range{Width: w, Height: h}))
	return offset, nil
}
