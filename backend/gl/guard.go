// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gl

// BindingGuard snapshots the current framebuffer and renderbuffer
// bindings so an operation can rebind freely and put everything back,
// no matter how it exits. Use it with defer:
//
//	guard := NewBindingGuard(ctx)
//	defer guard.Restore()
//
// On contexts with separate read/draw targets both bindings are saved
// and restored; otherwise the combined binding is used.
type BindingGuard struct {
	ctx          Context
	renderbuffer RenderbufferID
	framebuffer  FramebufferID
	readFB       FramebufferID
	separate     bool
}

// NewBindingGuard captures the bindings in effect right now.
func NewBindingGuard(ctx Context) BindingGuard {
	g := BindingGuard{
		ctx:          ctx,
		renderbuffer: RenderbufferID(ctx.GetBinding(RENDERBUFFER_BINDING)),
		separate:     ctx.Caps().ReadWriteFramebuffer,
	}
	if g.separate {
		g.framebuffer = FramebufferID(ctx.GetBinding(DRAW_FRAMEBUFFER_BINDING))
		g.readFB = FramebufferID(ctx.GetBinding(READ_FRAMEBUFFER_BINDING))
	} else {
		g.framebuffer = FramebufferID(ctx.GetBinding(FRAMEBUFFER_BINDING))
	}
	return g
}

// Restore reinstates the captured bindings unconditionally.
func (g BindingGuard) Restore() {
	if g.separate {
		g.ctx.BindFramebuffer(DRAW_FRAMEBUFFER, g.framebuffer)
		g.ctx.BindFramebuffer(READ_FRAMEBUFFER, g.readFB)
	} else {
		g.ctx.BindFramebuffer(FRAMEBUFFER, g.framebuffer)
	}
	g.ctx.BindRenderbuffer(RENDERBUFFER, g.renderbuffer)
}
