// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import (
	"fmt"
	"log/slog"
)

// Storage is the narrow capability contract a backend texture variant
// provides. The closed set of variants in this module is the GL texture
// (backend/gl), the wgpu-HAL texture (backend/wgpu), the external-image
// wrapper ([NewExternalImage]) and test mocks.
type Storage interface {
	// NeedsRepack reports whether data supplied with the given row
	// stride must be repacked to the format's default stride before the
	// backend write path can consume it.
	NeedsRepack(r Range, bytesPerRow uint64) bool

	// WriteSubresource delivers data for a single-mip-level range to
	// the backend. data may be nil to reserve storage without a
	// transfer.
	WriteSubresource(r Range, data []byte, bytesPerRow uint64) error

	// Release frees the backend resources. It is called at most once.
	Release()
}

// Texture is a texture resource: a format catalog entry plus logical
// dimensions, validating ranges against its own bounds and driving
// upload and repacking decisions.
//
// Lifecycle:
//  1. Create via [NewTexture] (backends call this from their own
//     constructors) with a Storage variant.
//  2. Upload data, attach to framebuffers.
//  3. Call Destroy when done. Ranges derived from a destroyed texture
//     must not be used; the package does not track them.
//
// Texture has no internal locking; see the package documentation for
// the threading contract.
type Texture struct {
	desc      TextureDescriptor
	props     Properties
	storage   Storage
	destroyed bool
}

// NewTexture creates a texture resource over a backend storage variant.
// storage may be nil for textures that only describe layout; uploads to
// such a texture report [ErrUnimplemented].
func NewTexture(desc TextureDescriptor, storage Storage) (*Texture, error) {
	if err := desc.validate(); err != nil {
		return nil, err
	}
	return &Texture{
		desc:    desc,
		props:   PropertiesOf(desc.Format),
		storage: storage,
	}, nil
}

// Descriptor returns the creation descriptor.
func (t *Texture) Descriptor() TextureDescriptor { return t.desc }

// Format returns the pixel format.
func (t *Texture) Format() Format { return t.desc.Format }

// Properties returns the format's layout properties.
func (t *Texture) Properties() Properties { return t.props }

// Width returns the base level width in pixels.
func (t *Texture) Width() uint32 { return t.desc.Width }

// Height returns the base level height in pixels.
func (t *Texture) Height() uint32 { return t.desc.Height }

// Depth returns the base level depth in pixels.
func (t *Texture) Depth() uint32 { return t.desc.Depth }

// NumLayers returns the array layer count.
func (t *Texture) NumLayers() uint32 { return t.desc.NumLayers }

// NumMipLevels returns the mip chain length.
func (t *Texture) NumMipLevels() uint32 { return t.desc.NumMipLevels }

// NumFaces returns 6 for cube textures and 1 otherwise.
func (t *Texture) NumFaces() uint32 { return t.desc.NumFaces() }

// Samples returns the per-pixel sample count.
func (t *Texture) Samples() uint32 { return t.desc.NumSamples }

// Type returns the storage topology.
func (t *Texture) Type() TextureType { return t.desc.Type }

// Usage returns the allowed-usage mask.
func (t *Texture) Usage() Usage { return t.desc.Usage }

// AspectRatio returns width divided by height.
func (t *Texture) AspectRatio() float32 {
	return float32(t.desc.Width) / float32(t.desc.Height)
}

// EstimatedSizeInBytes approximates the texture's memory footprint:
// the packed size of the full mip range times the sample count. Driver
// padding and alignment make the true number unknowable from here.
func (t *Texture) EstimatedSizeInBytes() uint64 {
	n, err := t.props.BytesPerRange(t.FullMipRange(), 0)
	if err != nil {
		return 0
	}
	return n * uint64(t.desc.NumSamples)
}

// FullRange returns the texture's full extent at the given mip level,
// spanning numMipLevels levels, every layer and every face.
func (t *Texture) FullRange(mipLevel, numMipLevels uint32) Range {
	return Range{
		Width:        mipDimension(t.desc.Width, mipLevel),
		Height:       mipDimension(t.desc.Height, mipLevel),
		Depth:        mipDimension(t.desc.Depth, mipLevel),
		NumLayers:    t.desc.NumLayers,
		MipLevel:     mipLevel,
		NumMipLevels: numMipLevels,
		NumFaces:     t.desc.NumFaces(),
	}
}

// FullMipRange returns the texture's full extent across all mip levels.
func (t *Texture) FullMipRange() Range {
	return t.FullRange(0, t.desc.NumMipLevels)
}

// CubeFaceRange returns the full extent of a single cube face at the
// given mip level.
func (t *Texture) CubeFaceRange(face CubeFace, mipLevel, numMipLevels uint32) Range {
	return t.FullRange(mipLevel, numMipLevels).AtCubeFace(face)
}

// LayerRange returns the full extent of a single array layer at the
// given mip level.
func (t *Texture) LayerRange(layer, mipLevel, numMipLevels uint32) Range {
	return t.FullRange(mipLevel, numMipLevels).AtLayer(layer)
}

// ValidateRange checks r's own invariants and then that r stays within
// the texture's bounds at r's mip level, where each level halves the
// base dimensions (floor, minimum 1).
func (t *Texture) ValidateRange(r Range) error {
	if err := r.Validate(); err != nil {
		return err
	}
	w := mipDimension(t.desc.Width, r.MipLevel)
	h := mipDimension(t.desc.Height, r.MipLevel)
	d := mipDimension(t.desc.Depth, r.MipLevel)
	switch {
	case uint64(r.X)+uint64(r.Width) > uint64(w),
		uint64(r.Y)+uint64(r.Height) > uint64(h),
		uint64(r.Z)+uint64(r.Depth) > uint64(d):
		return fmt.Errorf("%w: range exceeds %dx%dx%d at mip level %d",
			ErrInvalidRange, w, h, d, r.MipLevel)
	case uint64(r.Layer)+uint64(r.NumLayers) > uint64(t.desc.NumLayers):
		return fmt.Errorf("%w: range exceeds %d layers", ErrInvalidRange, t.desc.NumLayers)
	case uint64(r.MipLevel)+uint64(r.NumMipLevels) > uint64(t.desc.NumMipLevels):
		return fmt.Errorf("%w: range exceeds %d mip levels", ErrInvalidRange, t.desc.NumMipLevels)
	case uint64(r.Face)+uint64(r.NumFaces) > uint64(t.desc.NumFaces()):
		return fmt.Errorf("%w: range exceeds %d faces", ErrInvalidRange, t.desc.NumFaces())
	}
	return nil
}

// SupportsUpload reports whether the texture accepts uploads at all:
// it must be usable as a sampled or storage texture and must not be a
// depth or stencil format.
func (t *Texture) SupportsUpload() bool {
	return t.desc.Usage&(UsageSampled|UsageStorage) != 0 && !t.props.IsDepthOrStencil()
}

// Upload transfers data into the texture's memory for the given range.
//
// data may describe multiple mip levels, layers, faces and z slices,
// laid out in the canonical nesting order. bytesPerRow is the stride of
// data's rows; 0 means packed, and a non-zero stride is only allowed
// for single-mip-level ranges. A nil data still reserves and
// initializes storage without a transfer.
//
// When the backend variant cannot consume the caller's stride directly,
// the data is repacked into a staging buffer first.
func (t *Texture) Upload(r Range, data []byte, bytesPerRow uint64) error {
	if t.storage == nil {
		return fmt.Errorf("%w: no backend write path", ErrUnimplemented)
	}
	if !t.SupportsUpload() {
		return ErrUploadNotSupported
	}
	if err := t.ValidateRange(r); err != nil {
		return err
	}
	if r.NumMipLevels == 1 {
		return t.uploadLevel(r, data, bytesPerRow)
	}
	if bytesPerRow != 0 {
		return ErrStrideWithMipChain
	}
	for level := r.MipLevel; level < r.MipLevel+r.NumMipLevels; level++ {
		lr := r.AtMipLevel(level)
		var slice []byte
		if data != nil {
			offset, err := t.props.SubRangeByteOffset(r, lr, 0)
			if err != nil {
				return err
			}
			slice = data[offset:]
		}
		if err := t.uploadLevel(lr, slice, 0); err != nil {
			return err
		}
	}
	return nil
}

// uploadLevel writes a single mip level, repacking when the backend
// asks for it.
func (t *Texture) uploadLevel(r Range, data []byte, bytesPerRow uint64) error {
	if data == nil || !t.storage.NeedsRepack(r, bytesPerRow) {
		return t.storage.WriteSubresource(r, data, bytesPerRow)
	}
	packed, err := t.props.BytesPerRange(r, 0)
	if err != nil {
		return err
	}
	buf := make([]byte, packed)
	if err := RepackData(t.props, r, data, bytesPerRow, buf, 0, false); err != nil {
		return err
	}
	Logger().Debug("texel: repacked upload",
		slog.String("format", t.props.Name),
		slog.Uint64("bytesPerRow", bytesPerRow),
		slog.Uint64("packed", packed))
	return t.storage.WriteSubresource(r, buf, 0)
}

// Destroy releases the backend storage. Destroy is idempotent.
// Outstanding ranges derived from the texture become invalid.
func (t *Texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if t.storage != nil {
		t.storage.Release()
	}
}

// SurfaceTextures holds the textures associated with an externally
// owned surface, such as a window.
type SurfaceTextures struct {
	// Color is the surface's color texture.
	Color *Texture

	// Depth is the surface's depth texture, if any.
	Depth *Texture
}
