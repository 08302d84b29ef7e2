// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gl

import "testing"

func TestBindingGuard_SeparateTargets(t *testing.T) {
	ctx := newMockContext(allCaps())
	ctx.BindFramebuffer(DRAW_FRAMEBUFFER, 7)
	ctx.BindFramebuffer(READ_FRAMEBUFFER, 8)
	ctx.BindRenderbuffer(RENDERBUFFER, 9)

	guard := NewBindingGuard(ctx)
	ctx.BindFramebuffer(FRAMEBUFFER, 42)
	ctx.BindRenderbuffer(RENDERBUFFER, 43)

	guard.Restore()
	if ctx.drawFB != 7 || ctx.readFB != 8 {
		t.Errorf("framebuffers = %d/%d, want 7/8", ctx.drawFB, ctx.readFB)
	}
	if ctx.rb != 9 {
		t.Errorf("renderbuffer = %d, want 9", ctx.rb)
	}
}

func TestBindingGuard_CombinedTarget(t *testing.T) {
	ctx := newMockContext(Caps{})
	ctx.BindFramebuffer(FRAMEBUFFER, 5)

	guard := NewBindingGuard(ctx)
	ctx.BindFramebuffer(FRAMEBUFFER, 99)

	guard.Restore()
	if ctx.drawFB != 5 || ctx.readFB != 5 {
		t.Errorf("framebuffers = %d/%d, want 5/5", ctx.drawFB, ctx.readFB)
	}
}

func TestBindingGuard_RestoreOnEarlyExit(t *testing.T) {
	ctx := newMockContext(allCaps())
	ctx.BindFramebuffer(FRAMEBUFFER, 3)

	func() {
		guard := NewBindingGuard(ctx)
		defer guard.Restore()
		ctx.BindFramebuffer(FRAMEBUFFER, 50)
		// Early return path.
	}()

	if ctx.drawFB != 3 {
		t.Errorf("drawFB = %d, want 3 after early exit", ctx.drawFB)
	}
}
