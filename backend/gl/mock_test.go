// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gl

import (
	"testing"

	"github.com/gogpu/texel"
)

// mockContext records every call so tests can verify what reached the
// GL boundary. Bindings are tracked for real so BindingGuard tests can
// verify save and restore.
type mockContext struct {
	caps Caps

	drawFB FramebufferID
	readFB FramebufferID
	rb     RenderbufferID

	nextFB     FramebufferID
	createdFBs []FramebufferID
	deletedFBs []FramebufferID
	deletedTex []TextureID

	status    Enum
	lastError Enum

	drawBufs     [][]Enum
	attachments  []attachCall
	invalidates  [][]Enum
	clears       []Enum
	clearColor   [4]float32
	clearDepth   float32
	clearStencil int32
	pixelStore   map[Enum]int32
	enabled      map[Enum]bool
	labels       map[uint32]string
	reads        []readPixelsCall
	tex2D        []texSubImage2DCall
	tex3D        []texSubImage3DCall
	compressed   []compressedTexCall
	flushes      int
}

type attachCall struct {
	target     Enum
	attachment Enum
	texTarget  Enum
	tex        TextureID
	level      int32
	layer      int32
	layered    bool
}

type readPixelsCall struct {
	x, y, w, h  int32
	format, typ Enum
	dstLen      int
}

type texSubImage2DCall struct {
	target      Enum
	level       int32
	x, y, w, h  int32
	format, typ Enum
	data        []byte
}

type texSubImage3DCall struct {
	target           Enum
	level            int32
	x, y, z, w, h, d int32
	format, typ      Enum
	data             []byte
}

type compressedTexCall struct {
	target     Enum
	level      int32
	x, y, w, h int32
	format     Enum
	data       []byte
}

func newMockContext(caps Caps) *mockContext {
	return &mockContext{
		caps:       caps,
		nextFB:     1,
		status:     FRAMEBUFFER_COMPLETE,
		pixelStore: make(map[Enum]int32),
		enabled:    make(map[Enum]bool),
		labels:     make(map[uint32]string),
	}
}

func (m *mockContext) Caps() Caps { return m.caps }

func (m *mockContext) BindFramebuffer(target Enum, fb FramebufferID) {
	switch target {
	case READ_FRAMEBUFFER:
		m.readFB = fb
	case DRAW_FRAMEBUFFER:
		m.drawFB = fb
	default:
		m.drawFB, m.readFB = fb, fb
	}
}

func (m *mockContext) BindRenderbuffer(_ Enum, rb RenderbufferID) { m.rb = rb }
func (m *mockContext) BindTexture(Enum, TextureID)                {}

func (m *mockContext) GetBinding(pname Enum) uint32 {
	switch pname {
	case READ_FRAMEBUFFER_BINDING:
		return uint32(m.readFB)
	case RENDERBUFFER_BINDING:
		return uint32(m.rb)
	default:
		return uint32(m.drawFB)
	}
}

func (m *mockContext) CreateFramebuffer() FramebufferID {
	fb := m.nextFB
	m.nextFB++
	m.createdFBs = append(m.createdFBs, fb)
	return fb
}

func (m *mockContext) DeleteFramebuffer(fb FramebufferID) {
	m.deletedFBs = append(m.deletedFBs, fb)
}

func (m *mockContext) CheckFramebufferStatus(Enum) Enum { return m.status }

func (m *mockContext) DeleteTexture(tex TextureID) {
	m.deletedTex = append(m.deletedTex, tex)
}

func (m *mockContext) FramebufferTexture2D(target, attachment, texTarget Enum, tex TextureID, level int32) {
	m.attachments = append(m.attachments, attachCall{
		target: target, attachment: attachment, texTarget: texTarget, tex: tex, level: level,
	})
}

func (m *mockContext) FramebufferTextureLayer(target, attachment Enum, tex TextureID, level, layer int32) {
	m.attachments = append(m.attachments, attachCall{
		target: target, attachment: attachment, tex: tex, level: level, layer: layer, layered: true,
	})
}

func (m *mockContext) DrawBuffers(bufs []Enum) {
	m.drawBufs = append(m.drawBufs, append([]Enum(nil), bufs...))
}

func (m *mockContext) ColorMask(bool, bool, bool, bool) {}

func (m *mockContext) ClearColor(r, g, b, a float32) { m.clearColor = [4]float32{r, g, b, a} }
func (m *mockContext) DepthMask(bool)                {}
func (m *mockContext) ClearDepthf(d float32)         { m.clearDepth = d }
func (m *mockContext) StencilMask(uint32)            {}
func (m *mockContext) ClearStencil(s int32)          { m.clearStencil = s }
func (m *mockContext) Clear(mask Enum)               { m.clears = append(m.clears, mask) }

func (m *mockContext) Enable(c Enum)  { m.enabled[c] = true }
func (m *mockContext) Disable(c Enum) { m.enabled[c] = false }

func (m *mockContext) PixelStorei(pname Enum, param int32) { m.pixelStore[pname] = param }

func (m *mockContext) TexSubImage2D(target Enum, level, x, y, w, h int32, format, typ Enum, data []byte) {
	m.tex2D = append(m.tex2D, texSubImage2DCall{
		target: target, level: level, x: x, y: y, w: w, h: h, format: format, typ: typ,
		data: append([]byte(nil), data...),
	})
}

func (m *mockContext) TexSubImage3D(target Enum, level, x, y, z, w, h, d int32, format, typ Enum, data []byte) {
	m.tex3D = append(m.tex3D, texSubImage3DCall{
		target: target, level: level, x: x, y: y, z: z, w: w, h: h, d: d, format: format, typ: typ,
		data: append([]byte(nil), data...),
	})
}

func (m *mockContext) CompressedTexSubImage2D(target Enum, level, x, y, w, h int32, format Enum, data []byte) {
	m.compressed = append(m.compressed, compressedTexCall{
		target: target, level: level, x: x, y: y, w: w, h: h, format: format,
		data: append([]byte(nil), data...),
	})
}

func (m *mockContext) ReadPixels(x, y, w, h int32, format, typ Enum, dst []byte) {
	m.reads = append(m.reads, readPixelsCall{x: x, y: y, w: w, h: h, format: format, typ: typ, dstLen: len(dst)})
}

func (m *mockContext) InvalidateFramebuffer(_ Enum, attachments []Enum) {
	m.invalidates = append(m.invalidates, append([]Enum(nil), attachments...))
}

func (m *mockContext) ObjectLabel(_ Enum, name uint32, label string) { m.labels[name] = label }

func (m *mockContext) GetError() Enum {
	err := m.lastError
	m.lastError = NO_ERROR
	return err
}

func (m *mockContext) Flush() { m.flushes++ }

var _ Context = (*mockContext)(nil)

// allCaps enables every capability.
func allCaps() Caps {
	return Caps{
		ReadWriteFramebuffer:  true,
		InvalidateFramebuffer: true,
		IntegerTextures:       true,
		DebugLabel:            true,
		SRGBWriteControl:      true,
		UnpackRowLength:       true,
	}
}

// newColorTexture wraps a fake texture object for attachment tests.
func newColorTexture(t *testing.T, ctx Context, id TextureID, format texel.Format, w, h uint32) *Texture {
	t.Helper()
	tex, err := NewTexture(ctx, id, texel.New2DTexture(format, w, h, texel.UsageSampled|texel.UsageAttachment, ""))
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	return tex
}
