// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gl implements the OpenGL framebuffer controller and texture
// variant. The package never calls OpenGL directly; all state mutation
// goes through the [Context] interface so the same logic runs on ES,
// core profiles and test mocks.
//
// Thread Safety: one Context serves one goroutine at a time. All types
// in this package inherit that contract and add no locking of their own.
package gl

// Enum is a GL enumerant.
type Enum uint32

// FramebufferID is a native framebuffer object name. 0 is the default
// (implicit) framebuffer.
type FramebufferID uint32

// RenderbufferID is a native renderbuffer object name.
type RenderbufferID uint32

// TextureID is a native texture object name.
type TextureID uint32

// GL constants used by this package, values per the OpenGL ES registry.
const (
	FRAMEBUFFER      Enum = 0x8D40
	READ_FRAMEBUFFER Enum = 0x8CA8
	DRAW_FRAMEBUFFER Enum = 0x8CA9
	RENDERBUFFER     Enum = 0x8D41

	FRAMEBUFFER_BINDING      Enum = 0x8CA6
	READ_FRAMEBUFFER_BINDING Enum = 0x8CAA
	DRAW_FRAMEBUFFER_BINDING Enum = 0x8CA6
	RENDERBUFFER_BINDING     Enum = 0x8CA7

	FRAMEBUFFER_COMPLETE                      Enum = 0x8CD5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         Enum = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT Enum = 0x8CD7
	FRAMEBUFFER_UNSUPPORTED                   Enum = 0x8CDD

	COLOR_ATTACHMENT0        Enum = 0x8CE0
	DEPTH_ATTACHMENT         Enum = 0x8D00
	STENCIL_ATTACHMENT       Enum = 0x8D20
	DEPTH_STENCIL_ATTACHMENT Enum = 0x821A

	// Invalidate names for the default framebuffer.
	COLOR   Enum = 0x1800
	DEPTH   Enum = 0x1801
	STENCIL Enum = 0x1802

	TEXTURE_2D                  Enum = 0x0DE1
	TEXTURE_3D                  Enum = 0x806F
	TEXTURE_2D_ARRAY            Enum = 0x8C1A
	TEXTURE_CUBE_MAP            Enum = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X Enum = 0x8515

	COLOR_BUFFER_BIT   Enum = 0x4000
	DEPTH_BUFFER_BIT   Enum = 0x0100
	STENCIL_BUFFER_BIT Enum = 0x0400

	FRAMEBUFFER_SRGB Enum = 0x8DB9

	PACK_ALIGNMENT    Enum = 0x0D05
	UNPACK_ALIGNMENT  Enum = 0x0CF5
	UNPACK_ROW_LENGTH Enum = 0x0CF2

	RED          Enum = 0x1903
	RG           Enum = 0x8227
	RGBA         Enum = 0x1908
	BGRA         Enum = 0x80E1
	RED_INTEGER  Enum = 0x8D94
	RGBA_INTEGER Enum = 0x8D99

	UNSIGNED_BYTE               Enum = 0x1401
	UNSIGNED_INT                Enum = 0x1405
	FLOAT                       Enum = 0x1406
	HALF_FLOAT                  Enum = 0x140B
	UNSIGNED_INT_2_10_10_10_REV Enum = 0x8368

	// Compressed internal formats.
	COMPRESSED_RGBA_S3TC_DXT1    Enum = 0x83F1
	COMPRESSED_RGBA_BPTC_UNORM   Enum = 0x8E8C
	COMPRESSED_RGB8_ETC2         Enum = 0x9274
	COMPRESSED_SRGB8_ETC2        Enum = 0x9275
	COMPRESSED_R11_EAC           Enum = 0x9270
	COMPRESSED_RGBA_ASTC_4x4     Enum = 0x93B0
	COMPRESSED_RGBA_ASTC_5x5     Enum = 0x93B2
	COMPRESSED_RGBA_ASTC_6x6     Enum = 0x93B4
	COMPRESSED_RGBA_PVRTC_4BPPV1 Enum = 0x8C02
	COMPRESSED_RGBA_PVRTC_2BPPV1 Enum = 0x8C03

	NO_ERROR          Enum = 0
	INVALID_OPERATION Enum = 0x0502

	NONE Enum = 0

	// Object label identifier namespaces.
	LABEL_FRAMEBUFFER Enum = 0x8D40
)

// Caps describes what the underlying context can do. The controller
// degrades gracefully around missing capabilities instead of probing
// extensions itself.
type Caps struct {
	// ReadWriteFramebuffer is set when the context has separate
	// READ_FRAMEBUFFER and DRAW_FRAMEBUFFER targets (ES3, desktop).
	ReadWriteFramebuffer bool

	// InvalidateFramebuffer is set when the context supports discard
	// hints for attachments.
	InvalidateFramebuffer bool

	// IntegerTextures is set when integer formats can be sampled and
	// read back.
	IntegerTextures bool

	// DebugLabel is set when objects accept debug labels.
	DebugLabel bool

	// SRGBWriteControl is set when FRAMEBUFFER_SRGB can be toggled.
	SRGBWriteControl bool

	// UnpackRowLength is set when UNPACK_ROW_LENGTH is available, which
	// lets uploads consume row-padded client memory directly (absent on
	// ES2-class contexts).
	UnpackRowLength bool
}

// Context is the narrow slice of OpenGL this package consumes. A real
// implementation forwards each method to the corresponding GL entry
// point on its own thread-bound context; tests substitute a mock.
type Context interface {
	Caps() Caps

	// Bindings.
	BindFramebuffer(target Enum, fb FramebufferID)
	BindRenderbuffer(target Enum, rb RenderbufferID)
	BindTexture(target Enum, tex TextureID)
	// GetBinding returns the object name currently bound for a
	// *_BINDING query.
	GetBinding(pname Enum) uint32

	// Object lifecycle.
	CreateFramebuffer() FramebufferID
	DeleteFramebuffer(fb FramebufferID)
	CheckFramebufferStatus(target Enum) Enum
	DeleteTexture(tex TextureID)

	// Attachment.
	FramebufferTexture2D(target, attachment, texTarget Enum, tex TextureID, level int32)
	FramebufferTextureLayer(target, attachment Enum, tex TextureID, level, layer int32)
	DrawBuffers(bufs []Enum)

	// Clears.
	ColorMask(r, g, b, a bool)
	ClearColor(r, g, b, a float32)
	DepthMask(mask bool)
	ClearDepthf(d float32)
	StencilMask(mask uint32)
	ClearStencil(s int32)
	Clear(mask Enum)

	// Ambient state.
	Enable(cap Enum)
	Disable(cap Enum)
	PixelStorei(pname Enum, param int32)

	// Pixel transfer.
	TexSubImage2D(target Enum, level, x, y, width, height int32, format, typ Enum, data []byte)
	TexSubImage3D(target Enum, level, x, y, z, width, height, depth int32, format, typ Enum, data []byte)
	CompressedTexSubImage2D(target Enum, level, x, y, width, height int32, format Enum, data []byte)
	ReadPixels(x, y, width, height int32, format, typ Enum, dst []byte)

	// Hints and diagnostics.
	InvalidateFramebuffer(target Enum, attachments []Enum)
	ObjectLabel(identifier Enum, name uint32, label string)
	GetError() Enum
	Flush()
}
