// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu implements the WebGPU texture variant over gogpu/wgpu's
// HAL. Uploads go through the queue's WriteTexture path; framebuffer
// management has no equivalent here since render targets are declared
// per pass in WebGPU.
package wgpu

import (
	"fmt"

	types "github.com/gogpu/gputypes"
	"github.com/gogpu/texel"
	"github.com/gogpu/wgpu/hal"
)

// rowAlignment is the row pitch granularity the HAL transfer path
// accepts for padded rows. Packed rows are always accepted.
const rowAlignment = 256

// Device is the slice of hal.Device this package uses.
type Device interface {
	CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error)
	DestroyTexture(texture hal.Texture)
}

// Queue is the slice of hal.Queue this package uses.
type Queue interface {
	WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D)
}

// Texture is the WebGPU texture variant. It owns a hal.Texture and
// implements the backend write path for the texture resource built
// over it.
type Texture struct {
	device Device
	queue  Queue
	hal    hal.Texture
	res    *texel.Texture
}

// halFormat maps the catalog to the HAL format vocabulary. Only the
// subset both vocabularies share is creatable on this backend.
func halFormat(f texel.Format) (types.TextureFormat, bool) {
	switch f {
	case texel.FormatR8Unorm:
		return types.TextureFormatR8Unorm, true
	case texel.FormatRGBA8Unorm:
		return types.TextureFormatRGBA8Unorm, true
	case texel.FormatBGRA8Unorm:
		return types.TextureFormatBGRA8Unorm, true
	case texel.FormatDepth24PlusStencil8:
		return types.TextureFormatDepth24PlusStencil8, true
	default:
		return types.TextureFormatUndefined, false
	}
}

// halUsage maps the usage mask to HAL usage flags. CopyDst is always
// included so the upload path works.
func halUsage(u texel.Usage) types.TextureUsage {
	usage := types.TextureUsageCopyDst
	if u&texel.UsageSampled != 0 {
		usage |= types.TextureUsageTextureBinding
	}
	if u&texel.UsageStorage != 0 {
		usage |= types.TextureUsageStorageBinding
	}
	if u&texel.UsageAttachment != 0 {
		usage |= types.TextureUsageRenderAttachment
	}
	return usage
}

// NewTexture allocates a HAL texture for desc and builds a texture
// resource over it.
//
// Cube textures allocate six array layers per logical layer. Volume
// textures are not supported on this backend.
func NewTexture(device Device, queue Queue, desc texel.TextureDescriptor) (*Texture, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("%w: nil device or queue", texel.ErrInvalidArgument)
	}
	if desc.Type == texel.TextureType3D {
		return nil, fmt.Errorf("%w: volume textures on the wgpu backend", texel.ErrUnimplemented)
	}
	format, ok := halFormat(desc.Format)
	if !ok {
		return nil, fmt.Errorf("%w: format %v has no HAL equivalent", texel.ErrUnimplemented, desc.Format)
	}

	halDesc := &hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: desc.NumLayers * desc.NumFaces(),
		},
		MipLevelCount: desc.NumMipLevels,
		SampleCount:   desc.NumSamples,
		Dimension:     types.TextureDimension2D,
		Format:        format,
		Usage:         halUsage(desc.Usage),
	}
	halTex, err := device.CreateTexture(halDesc)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTexture: %v", texel.ErrRuntime, err)
	}

	t := &Texture{device: device, queue: queue, hal: halTex}
	res, err := texel.NewTexture(desc, t)
	if err != nil {
		device.DestroyTexture(halTex)
		return nil, err
	}
	t.res = res
	return t, nil
}

// Resource returns the texture resource built over this variant.
func (t *Texture) Resource() *texel.Texture { return t.res }

// HAL returns the underlying HAL texture handle.
func (t *Texture) HAL() hal.Texture { return t.hal }

// NeedsRepack reports whether the caller's row stride must be packed
// before the transfer path accepts it. Packed rows and rows padded to
// the HAL pitch granularity pass through untouched.
func (t *Texture) NeedsRepack(r texel.Range, bytesPerRow uint64) bool {
	if bytesPerRow == 0 || bytesPerRow == t.res.Properties().BytesPerRow(r.Width) {
		return false
	}
	return bytesPerRow%rowAlignment != 0
}

// WriteSubresource uploads one mip level through the queue. Array
// layers and cube faces ride in the copy's depth dimension. A nil data
// is a no-op: HAL textures are fully allocated at creation.
func (t *Texture) WriteSubresource(r texel.Range, data []byte, bytesPerRow uint64) error {
	if data == nil {
		return nil
	}
	p := t.res.Properties()
	rowBytes := bytesPerRow
	if rowBytes == 0 {
		rowBytes = p.BytesPerRow(r.Width)
	}

	layer := r.Layer*t.res.NumFaces() + r.Face
	dst := &hal.ImageCopyTexture{
		Texture:  t.hal,
		MipLevel: r.MipLevel,
		Origin:   hal.Origin3D{X: r.X, Y: r.Y, Z: layer},
		Aspect:   types.TextureAspectAll,
	}
	layout := &hal.ImageDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(rowBytes),
		RowsPerImage: p.Rows(r),
	}
	size := &hal.Extent3D{
		Width:              r.Width,
		Height:             r.Height,
		DepthOrArrayLayers: r.NumLayers * r.NumFaces,
	}
	t.queue.WriteTexture(dst, data, layout, size)
	return nil
}

// Release destroys the HAL texture.
func (t *Texture) Release() {
	if t.hal == nil {
		return
	}
	t.device.DestroyTexture(t.hal)
	t.hal = nil
}

var _ texel.Storage = (*Texture)(nil)
