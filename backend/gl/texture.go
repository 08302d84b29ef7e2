// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gl

import (
	"fmt"

	"github.com/gogpu/texel"
)

// transferFormat is the client pixel-transfer encoding of a format:
// either an uncompressed format/type pair or a compressed internal
// format enum.
type transferFormat struct {
	format     Enum
	typ        Enum
	compressed Enum
}

// transferFormats maps the catalog to GL transfer encodings. Formats
// missing from the table cannot be uploaded or read back on this
// backend.
var transferFormats = map[texel.Format]transferFormat{
	texel.FormatR8Unorm:           {format: RED, typ: UNSIGNED_BYTE},
	texel.FormatRG8Unorm:          {format: RG, typ: UNSIGNED_BYTE},
	texel.FormatRGBA8Unorm:        {format: RGBA, typ: UNSIGNED_BYTE},
	texel.FormatRGBA8UnormSrgb:    {format: RGBA, typ: UNSIGNED_BYTE},
	texel.FormatBGRA8Unorm:        {format: BGRA, typ: UNSIGNED_BYTE},
	texel.FormatBGRA8UnormSrgb:    {format: BGRA, typ: UNSIGNED_BYTE},
	texel.FormatRGB10A2Unorm:      {format: RGBA, typ: UNSIGNED_INT_2_10_10_10_REV},
	texel.FormatRG16Float:         {format: RG, typ: HALF_FLOAT},
	texel.FormatRGBA16Float:       {format: RGBA, typ: HALF_FLOAT},
	texel.FormatRGBA32Float:       {format: RGBA, typ: FLOAT},
	texel.FormatR32Uint:           {format: RED_INTEGER, typ: UNSIGNED_INT},
	texel.FormatRGBA32Uint:        {format: RGBA_INTEGER, typ: UNSIGNED_INT},
	texel.FormatBC1RGBAUnorm:      {compressed: COMPRESSED_RGBA_S3TC_DXT1},
	texel.FormatBC7RGBAUnorm:      {compressed: COMPRESSED_RGBA_BPTC_UNORM},
	texel.FormatETC2RGB8Unorm:     {compressed: COMPRESSED_RGB8_ETC2},
	texel.FormatETC2RGB8UnormSrgb: {compressed: COMPRESSED_SRGB8_ETC2},
	texel.FormatEACR11Unorm:       {compressed: COMPRESSED_R11_EAC},
	texel.FormatASTC4x4Unorm:      {compressed: COMPRESSED_RGBA_ASTC_4x4},
	texel.FormatASTC5x5Unorm:      {compressed: COMPRESSED_RGBA_ASTC_5x5},
	texel.FormatASTC6x6Unorm:      {compressed: COMPRESSED_RGBA_ASTC_6x6},
	texel.FormatPVRTC1RGBA4:       {compressed: COMPRESSED_RGBA_PVRTC_4BPPV1},
	texel.FormatPVRTC1RGBA2:       {compressed: COMPRESSED_RGBA_PVRTC_2BPPV1},
}

// Texture is the OpenGL texture variant. It wraps a native texture
// object (with storage already allocated) and implements the backend
// write path plus framebuffer attachment.
type Texture struct {
	ctx      Context
	id       TextureID
	res      *texel.Texture
	implicit bool
}

// NewTexture wraps a native texture object. The wrapper takes ownership
// of id; destroying the resource deletes it.
func NewTexture(ctx Context, id TextureID, desc texel.TextureDescriptor) (*Texture, error) {
	p := texel.PropertiesOf(desc.Format)
	if p.IsInteger() && !ctx.Caps().IntegerTextures {
		return nil, fmt.Errorf("%w: context lacks integer texture support", texel.ErrUnimplemented)
	}
	t := &Texture{ctx: ctx, id: id}
	res, err := texel.NewTexture(desc, t)
	if err != nil {
		return nil, err
	}
	t.res = res
	return t, nil
}

// NewImplicitTexture wraps the storage of an externally provided
// surface (the default framebuffer's backing). It has no texture
// object of its own; it exists to describe the surface's format and
// size and to mark the framebuffer implicit.
func NewImplicitTexture(ctx Context, desc texel.TextureDescriptor) (*Texture, error) {
	t := &Texture{ctx: ctx, implicit: true}
	res, err := texel.NewTexture(desc, t)
	if err != nil {
		return nil, err
	}
	t.res = res
	return t, nil
}

// Resource returns the texture resource built over this variant.
func (t *Texture) Resource() *texel.Texture { return t.res }

// ID returns the native texture object name, 0 for implicit textures.
func (t *Texture) ID() TextureID { return t.id }

// ImplicitStorage reports whether the texture wraps surface-provided
// storage rather than a texture object.
func (t *Texture) ImplicitStorage() bool { return t.implicit }

// Target returns the GL texture target for the texture's topology.
func (t *Texture) Target() Enum {
	switch t.res.Type() {
	case texel.TextureType3D:
		return TEXTURE_3D
	case texel.TextureType2DArray:
		return TEXTURE_2D_ARRAY
	case texel.TextureTypeCube:
		return TEXTURE_CUBE_MAP
	default:
		return TEXTURE_2D
	}
}

// AttachParams selects the sub-resource a framebuffer attachment
// points at and which framebuffer target the attach call affects.
type AttachParams struct {
	Face     uint32
	MipLevel uint32
	Layer    uint32

	// Read attaches to the read framebuffer target when the context
	// has separate read/draw targets.
	Read bool

	// Eye shifts the attached layer for stereo rendering.
	Eye texel.StereoEye
}

// AttachAsColor attaches the texture to color slot index of the
// currently bound framebuffer.
func (t *Texture) AttachAsColor(index uint32, p AttachParams) {
	t.attach(COLOR_ATTACHMENT0+Enum(index), p, t.id)
}

// AttachAsDepth attaches the texture as the depth attachment, or as
// the combined depth-stencil attachment for packed formats.
func (t *Texture) AttachAsDepth(p AttachParams) {
	t.attach(t.depthAttachmentPoint(), p, t.id)
}

// AttachAsStencil attaches the texture as the stencil attachment.
func (t *Texture) AttachAsStencil(p AttachParams) {
	t.attach(STENCIL_ATTACHMENT, p, t.id)
}

// DetachColor clears color slot index of the currently bound
// framebuffer.
func (t *Texture) DetachColor(index uint32, read bool) {
	t.attach(COLOR_ATTACHMENT0+Enum(index), AttachParams{Read: read}, 0)
}

// DetachDepth clears the depth (or depth-stencil) attachment.
func (t *Texture) DetachDepth(read bool) {
	t.attach(t.depthAttachmentPoint(), AttachParams{Read: read}, 0)
}

// DetachStencil clears the stencil attachment.
func (t *Texture) DetachStencil(read bool) {
	t.attach(STENCIL_ATTACHMENT, AttachParams{Read: read}, 0)
}

func (t *Texture) depthAttachmentPoint() Enum {
	p := t.res.Properties()
	if p.IsDepthOrStencil() && !p.IsDepthOnly() && !p.IsStencilOnly() {
		return DEPTH_STENCIL_ATTACHMENT
	}
	return DEPTH_ATTACHMENT
}

func (t *Texture) attach(attachment Enum, p AttachParams, id TextureID) {
	target := FRAMEBUFFER
	if p.Read && t.ctx.Caps().ReadWriteFramebuffer {
		target = READ_FRAMEBUFFER
	}
	layer := p.Layer
	if p.Eye == texel.EyeRight {
		layer++
	}
	switch t.res.Type() {
	case texel.TextureTypeCube:
		t.ctx.FramebufferTexture2D(target, attachment,
			TEXTURE_CUBE_MAP_POSITIVE_X+Enum(p.Face), id, int32(p.MipLevel))
	case texel.TextureType2DArray, texel.TextureType3D:
		t.ctx.FramebufferTextureLayer(target, attachment, id, int32(p.MipLevel), int32(layer))
	default:
		t.ctx.FramebufferTexture2D(target, attachment, TEXTURE_2D, id, int32(p.MipLevel))
	}
}

// Alignment returns the largest pixel-store alignment (8, 4, 2 or 1)
// that divides bytesPerRow.
func Alignment(bytesPerRow uint64) int32 {
	switch {
	case bytesPerRow%8 == 0:
		return 8
	case bytesPerRow%4 == 0:
		return 4
	case bytesPerRow%2 == 0:
		return 2
	default:
		return 1
	}
}

// NeedsRepack reports whether a row-padded client buffer must be
// repacked before upload. Compressed data must always be packed; for
// uncompressed data UNPACK_ROW_LENGTH consumes the padding when the
// context has it.
func (t *Texture) NeedsRepack(r texel.Range, bytesPerRow uint64) bool {
	p := t.res.Properties()
	if bytesPerRow == 0 || bytesPerRow == p.BytesPerRow(r.Width) {
		return false
	}
	if p.IsCompressed() {
		return true
	}
	return !t.ctx.Caps().UnpackRowLength
}

// WriteSubresource uploads one mip level of data through TexSubImage.
// A nil data is a no-op: the wrapped texture object already owns
// allocated storage.
func (t *Texture) WriteSubresource(r texel.Range, data []byte, bytesPerRow uint64) error {
	if data == nil {
		return nil
	}
	if t.implicit {
		return fmt.Errorf("%w: surface-backed textures have no upload path", texel.ErrUnimplemented)
	}
	p := t.res.Properties()
	tf, ok := transferFormats[t.res.Format()]
	if !ok {
		return fmt.Errorf("%w: format %v has no GL transfer encoding", texel.ErrUnimplemented, t.res.Format())
	}

	rowBytes := bytesPerRow
	if rowBytes == 0 {
		rowBytes = p.BytesPerRow(r.Width)
	}
	t.ctx.BindTexture(t.Target(), t.id)
	t.ctx.PixelStorei(UNPACK_ALIGNMENT, Alignment(rowBytes))
	if rowBytes != p.BytesPerRow(r.Width) {
		// NeedsRepack already steered padded data away from contexts
		// that cannot express a client row stride.
		t.ctx.PixelStorei(UNPACK_ROW_LENGTH, int32(rowBytes/uint64(p.BytesPerBlock)))
		defer t.ctx.PixelStorei(UNPACK_ROW_LENGTH, 0)
	}

	if err := t.writeImages(r, data, rowBytes, tf); err != nil {
		return err
	}
	if status := t.ctx.GetError(); status != NO_ERROR {
		return fmt.Errorf("%w: TexSubImage failed with 0x%04X", texel.ErrRuntime, uint32(status))
	}
	return nil
}

func (t *Texture) writeImages(r texel.Range, data []byte, rowBytes uint64, tf transferFormat) error {
	p := t.res.Properties()
	perFace := p.BytesPerLayer(r.Width, r.Height, r.Depth, rowBytes)

	switch t.res.Type() {
	case texel.TextureTypeCube:
		for i := uint32(0); i < r.NumFaces; i++ {
			face := TEXTURE_CUBE_MAP_POSITIVE_X + Enum(r.Face+i)
			chunk := data[uint64(i)*perFace:]
			if p.IsCompressed() {
				t.ctx.CompressedTexSubImage2D(face, int32(r.MipLevel),
					int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height),
					tf.compressed, chunk[:perFace])
			} else {
				t.ctx.TexSubImage2D(face, int32(r.MipLevel),
					int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height),
					tf.format, tf.typ, chunk)
			}
		}
	case texel.TextureType2DArray:
		if p.IsCompressed() {
			return fmt.Errorf("%w: compressed array upload", texel.ErrUnimplemented)
		}
		t.ctx.TexSubImage3D(TEXTURE_2D_ARRAY, int32(r.MipLevel),
			int32(r.X), int32(r.Y), int32(r.Layer),
			int32(r.Width), int32(r.Height), int32(r.NumLayers),
			tf.format, tf.typ, data)
	case texel.TextureType3D:
		if p.IsCompressed() {
			return fmt.Errorf("%w: compressed volume upload", texel.ErrUnimplemented)
		}
		t.ctx.TexSubImage3D(TEXTURE_3D, int32(r.MipLevel),
			int32(r.X), int32(r.Y), int32(r.Z),
			int32(r.Width), int32(r.Height), int32(r.Depth),
			tf.format, tf.typ, data)
	default:
		if p.IsCompressed() {
			t.ctx.CompressedTexSubImage2D(TEXTURE_2D, int32(r.MipLevel),
				int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height),
				tf.compressed, data[:perFace])
		} else {
			t.ctx.TexSubImage2D(TEXTURE_2D, int32(r.MipLevel),
				int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height),
				tf.format, tf.typ, data)
		}
	}
	return nil
}

// Release deletes the wrapped texture object.
func (t *Texture) Release() {
	if t.implicit || t.id == 0 {
		return
	}
	t.ctx.DeleteTexture(t.id)
	t.id = 0
}

var _ texel.Storage = (*Texture)(nil)
