// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// externalStorage adapts a host-owned texture handle (typically a
// window surface texture provided through the gpucontext ecosystem) to
// the Storage contract. The handle is opaque; uploads work only when
// the host texture implements gpucontext.TextureUpdater, and only for
// the full base level, since that is all UpdateData can express.
type externalStorage struct {
	handle any
	desc   TextureDescriptor
}

// NewExternalImage wraps a host-provided texture handle as a texture
// resource. handle is kept opaque: drawing integrations retrieve it via
// [Texture.ExternalHandle] wherever gpucontext.Texture is expected.
//
// The descriptor's type must be [TextureTypeExternalImage].
func NewExternalImage(desc TextureDescriptor, handle any) (*Texture, error) {
	if desc.Type != TextureTypeExternalImage {
		return nil, fmt.Errorf("%w: descriptor type must be ExternalImage, got %v", ErrInvalidArgument, desc.Type)
	}
	return NewTexture(desc, &externalStorage{handle: handle, desc: desc})
}

// NewSurfaceImage wraps a host surface texture, taking the pixel format
// from the provider's surface configuration.
func NewSurfaceImage(provider gpucontext.DeviceProvider, width, height uint32, handle any) (*Texture, error) {
	format := FormatFromGPUType(provider.SurfaceFormat())
	if format == FormatInvalid {
		return nil, fmt.Errorf("%w: surface format %v has no texel equivalent", ErrInvalidArgument, provider.SurfaceFormat())
	}
	desc := NewExternalImageTexture(format, width, height, UsageSampled|UsageAttachment, "surface")
	return NewExternalImage(desc, handle)
}

// ExternalHandle returns the host texture handle for external-image
// textures, or nil for every other variant.
func (t *Texture) ExternalHandle() any {
	if s, ok := t.storage.(*externalStorage); ok {
		return s.handle
	}
	return nil
}

// NeedsRepack reports whether the host update path needs packed rows.
// UpdateData takes a bare byte slice with no stride parameter, so any
// caller-padded data must be repacked first.
func (s *externalStorage) NeedsRepack(r Range, bytesPerRow uint64) bool {
	return bytesPerRow != 0 && bytesPerRow != PropertiesOf(s.desc.Format).BytesPerRow(r.Width)
}

// WriteSubresource forwards packed data to the host texture's
// UpdateData. Only a full base-level write is expressible.
func (s *externalStorage) WriteSubresource(r Range, data []byte, _ uint64) error {
	if data == nil {
		// Host owns the storage; nothing to reserve.
		return nil
	}
	full := New2D(0, 0, s.desc.Width, s.desc.Height)
	if r != full {
		return fmt.Errorf("%w: external images only accept full base-level uploads", ErrUnimplemented)
	}
	updater, ok := s.handle.(gpucontext.TextureUpdater)
	if !ok {
		return fmt.Errorf("%w: host texture does not implement gpucontext.TextureUpdater", ErrUnimplemented)
	}
	if err := updater.UpdateData(data); err != nil {
		return fmt.Errorf("%w: host texture update failed: %v", ErrRuntime, err)
	}
	return nil
}

// Release drops the handle reference. The host owns the texture's
// lifetime; destroying it is not this package's call.
func (s *externalStorage) Release() {
	s.handle = nil
}
