// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gl

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/texel"
)

// ErrAlreadyInitialized is returned by Initialize on a framebuffer that
// has already been initialized. Attachments are fixed for the life of
// the framebuffer; only the drawable references may change afterwards.
var ErrAlreadyInitialized = fmt.Errorf("%w: framebuffer already initialized", texel.ErrInvalidArgument)

// State tracks where a framebuffer is in its lifecycle.
type State uint8

const (
	// StateUninitialized is the zero state; only Initialize is legal.
	StateUninitialized State = iota

	// StateInitialized means attachments are fixed and the framebuffer
	// can be bound.
	StateInitialized

	// StateBound means a render pass is active between Bind and Unbind.
	StateBound
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInitialized:
		return "Initialized"
	case StateBound:
		return "Bound"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Mode selects how many views the framebuffer renders.
type Mode uint8

const (
	// ModeMono renders a single view.
	ModeMono Mode = iota

	// ModeStereo renders left and right eyes into paired layers.
	ModeStereo

	// ModeMultiview renders multiple views in one pass. Multiview
	// framebuffers can be constructed and queried but not bound.
	ModeMultiview
)

// Attachment pairs a render target texture with an optional resolve
// texture that its multisampled contents are downsampled into at the
// end of a pass.
type Attachment struct {
	Texture *Texture
	Resolve *Texture
}

// FramebufferDescriptor fixes a framebuffer's attachment set.
type FramebufferDescriptor struct {
	// ColorAttachments maps color slot index to its attachment.
	// Output slots are assigned in ascending index order.
	ColorAttachments map[int]Attachment

	// Depth and Stencil are the optional depth and stencil attachments.
	// Packed depth-stencil formats go in Depth and claim both aspects.
	Depth   Attachment
	Stencil Attachment

	Mode  Mode
	Label string
}

// Framebuffer is the OpenGL render target controller.
//
// Lifecycle: construct with [NewFramebuffer], fix the attachment set
// with Initialize (once), then alternate Bind and Unbind around each
// render pass. UpdateDrawable swaps attachment references between
// passes without reallocating the native object.
type Framebuffer struct {
	ctx      Context
	desc     FramebufferDescriptor
	id       FramebufferID
	state    State
	implicit bool
	resolve  *Framebuffer
	pass     texel.RenderPassDescriptor
}

// NewFramebuffer returns an uninitialized framebuffer over ctx.
func NewFramebuffer(ctx Context) *Framebuffer {
	return &Framebuffer{ctx: ctx}
}

// Initialize fixes the attachment set and allocates the native
// framebuffer object. It succeeds at most once per Framebuffer.
//
// When the descriptor wraps an externally provided surface (a single
// implicit-storage color attachment at index 0 with no resolve),
// no native object is allocated and the default framebuffer is used.
//
// When any color attachment carries a resolve texture, all of them
// must; the resolve targets then get their own child framebuffer,
// reachable via [Framebuffer.ResolveFramebuffer].
func (f *Framebuffer) Initialize(desc FramebufferDescriptor) error {
	if f.state != StateUninitialized {
		return ErrAlreadyInitialized
	}
	withResolve := 0
	for _, att := range desc.ColorAttachments {
		if att.Texture == nil {
			return fmt.Errorf("%w: color attachment without a texture", texel.ErrInvalidArgument)
		}
		if att.Resolve != nil {
			withResolve++
		}
	}
	if withResolve != 0 && withResolve != len(desc.ColorAttachments) {
		return fmt.Errorf("%w: %d of %d color attachments carry a resolve texture; all or none must",
			texel.ErrInvalidArgument, withResolve, len(desc.ColorAttachments))
	}

	if isImplicit(desc) {
		f.desc = desc
		f.implicit = true
		f.state = StateInitialized
		return nil
	}

	guard := NewBindingGuard(f.ctx)
	defer guard.Restore()

	f.id = f.ctx.CreateFramebuffer()
	f.ctx.BindFramebuffer(FRAMEBUFFER, f.id)

	indices := sortedIndices(desc.ColorAttachments)
	drawBufs := make([]Enum, 0, len(indices))
	for _, idx := range indices {
		desc.ColorAttachments[idx].Texture.AttachAsColor(uint32(idx), AttachParams{})
		drawBufs = append(drawBufs, COLOR_ATTACHMENT0+Enum(idx))
	}
	if len(drawBufs) > 0 {
		f.ctx.DrawBuffers(drawBufs)
	}
	if desc.Depth.Texture != nil {
		desc.Depth.Texture.AttachAsDepth(AttachParams{})
	}
	if desc.Stencil.Texture != nil && desc.Stencil.Texture != desc.Depth.Texture {
		desc.Stencil.Texture.AttachAsStencil(AttachParams{})
	}
	if desc.Label != "" && f.ctx.Caps().DebugLabel {
		f.ctx.ObjectLabel(LABEL_FRAMEBUFFER, uint32(f.id), desc.Label)
	}

	if status := f.ctx.CheckFramebufferStatus(FRAMEBUFFER); status != FRAMEBUFFER_COMPLETE {
		f.ctx.DeleteFramebuffer(f.id)
		f.id = 0
		return fmt.Errorf("%w: framebuffer incomplete: %s", texel.ErrRuntime, statusString(status))
	}

	f.desc = desc
	f.state = StateInitialized
	texel.Logger().Info("gl: framebuffer allocated",
		slog.Uint64("id", uint64(f.id)),
		slog.Int("colorAttachments", len(indices)),
		slog.String("label", desc.Label))

	if withResolve > 0 {
		if err := f.initResolve(); err != nil {
			return err
		}
	}
	return nil
}

// initResolve builds the child framebuffer over the resolve textures.
func (f *Framebuffer) initResolve() error {
	child := FramebufferDescriptor{
		ColorAttachments: make(map[int]Attachment, len(f.desc.ColorAttachments)),
		Mode:             f.desc.Mode,
		Label:            f.desc.Label + " resolve",
	}
	for idx, att := range f.desc.ColorAttachments {
		child.ColorAttachments[idx] = Attachment{Texture: att.Resolve}
	}
	if f.desc.Depth.Resolve != nil {
		child.Depth = Attachment{Texture: f.desc.Depth.Resolve}
	}
	if f.desc.Stencil.Resolve != nil {
		child.Stencil = Attachment{Texture: f.desc.Stencil.Resolve}
	}
	f.resolve = NewFramebuffer(f.ctx)
	if err := f.resolve.Initialize(child); err != nil {
		f.resolve = nil
		return err
	}
	texel.Logger().Info("gl: resolve framebuffer created",
		slog.Uint64("id", uint64(f.resolve.id)))
	return nil
}

// isImplicit reports whether desc wraps an externally provided surface:
// one color attachment at index 0, backed by surface storage, with no
// resolve texture anywhere.
func isImplicit(desc FramebufferDescriptor) bool {
	if len(desc.ColorAttachments) != 1 {
		return false
	}
	att, ok := desc.ColorAttachments[0]
	if !ok || att.Resolve != nil {
		return false
	}
	return att.Texture.ImplicitStorage()
}

// Bind makes the framebuffer the active render target and applies the
// pass's load actions: attachments are re-pointed when the pass asks
// for a non-default layer, mip, face or eye, and every attachment whose
// load action is clear gets cleared in one call.
//
// Bind panics on a multiview framebuffer; no fallback exists.
func (f *Framebuffer) Bind(pass texel.RenderPassDescriptor) error {
	if f.state != StateInitialized {
		return fmt.Errorf("%w: bind in state %s", texel.ErrInvalidArgument, f.state)
	}
	if f.desc.Mode == ModeMultiview {
		panic("gl: multiview framebuffers cannot be bound")
	}

	f.ctx.BindFramebuffer(FRAMEBUFFER, f.id)

	var mask Enum
	srgb := f.ctx.Caps().SRGBWriteControl
	for _, idx := range sortedIndices(f.desc.ColorAttachments) {
		att := f.desc.ColorAttachments[idx]
		action := pass.ColorAction(idx)
		if srgb {
			if att.Texture.Resource().Properties().IsSRGB() {
				f.ctx.Enable(FRAMEBUFFER_SRGB)
			} else {
				f.ctx.Disable(FRAMEBUFFER_SRGB)
			}
		}
		if p := (AttachParams{
			Face:     action.Face,
			MipLevel: action.MipLevel,
			Layer:    action.Layer,
			Eye:      action.Eye,
		}); p != (AttachParams{}) && !f.implicit {
			att.Texture.AttachAsColor(uint32(idx), p)
		}
		if action.Load == gputypes.LoadOpClear {
			c := action.ClearColor
			f.ctx.ColorMask(true, true, true, true)
			f.ctx.ClearColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
			mask |= COLOR_BUFFER_BIT
		}
	}
	if f.desc.Depth.Texture != nil && pass.DepthAttachment.Load == gputypes.LoadOpClear {
		f.ctx.DepthMask(true)
		f.ctx.ClearDepthf(pass.DepthAttachment.ClearDepth)
		mask |= DEPTH_BUFFER_BIT
	}
	if f.stencilTexture() != nil && pass.StencilAttachment.Load == gputypes.LoadOpClear {
		f.ctx.StencilMask(0xFF)
		f.ctx.ClearStencil(int32(pass.StencilAttachment.ClearStencil))
		mask |= STENCIL_BUFFER_BIT
	}
	if mask != 0 {
		f.ctx.Clear(mask)
	}

	f.pass = pass
	f.state = StateBound
	return nil
}

// Unbind ends the pass bound by Bind. Attachments whose store action
// is not store are handed to the driver as discardable, when the
// context can express that. The hint is best effort; skipping it never
// affects correctness.
func (f *Framebuffer) Unbind() error {
	if f.state != StateBound {
		return fmt.Errorf("%w: unbind in state %s", texel.ErrInvalidArgument, f.state)
	}
	f.state = StateInitialized

	if !f.ctx.Caps().InvalidateFramebuffer {
		texel.Logger().Warn("gl: context cannot invalidate; discard hints dropped")
		return nil
	}
	var discard []Enum
	for _, idx := range sortedIndices(f.desc.ColorAttachments) {
		if f.pass.ColorAction(idx).Store != gputypes.StoreOpStore {
			if f.implicit {
				discard = append(discard, COLOR)
			} else {
				discard = append(discard, COLOR_ATTACHMENT0+Enum(idx))
			}
		}
	}
	if f.desc.Depth.Texture != nil && f.pass.DepthAttachment.Store != gputypes.StoreOpStore {
		discard = append(discard, f.invalidateName(DEPTH_ATTACHMENT, DEPTH))
	}
	if f.stencilTexture() != nil && f.pass.StencilAttachment.Store != gputypes.StoreOpStore {
		discard = append(discard, f.invalidateName(STENCIL_ATTACHMENT, STENCIL))
	}
	if len(discard) > 0 {
		f.ctx.InvalidateFramebuffer(FRAMEBUFFER, discard)
	}
	return nil
}

func (f *Framebuffer) invalidateName(attachment, defaultName Enum) Enum {
	if f.implicit {
		return defaultName
	}
	return attachment
}

// stencilTexture returns the texture claiming the stencil aspect: the
// dedicated stencil attachment, or the depth attachment when its
// format packs both.
func (f *Framebuffer) stencilTexture() *Texture {
	if f.desc.Stencil.Texture != nil {
		return f.desc.Stencil.Texture
	}
	if d := f.desc.Depth.Texture; d != nil && !d.Resource().Properties().IsDepthOnly() &&
		d.Resource().Properties().IsDepthOrStencil() {
		return d
	}
	return nil
}

// UpdateDrawable swaps the color attachment at slot 0 without
// reallocating the native framebuffer. Passing nil detaches the slot.
func (f *Framebuffer) UpdateDrawable(color *Texture) error {
	return f.UpdateDrawableWithDepth(color, f.desc.Depth.Texture)
}

// UpdateDrawableWithDepth swaps the color attachment at slot 0 and the
// depth attachment in one call. Unchanged references are left alone; a
// nil reference detaches its slot and drops the tracking entry.
func (f *Framebuffer) UpdateDrawableWithDepth(color, depth *Texture) error {
	if f.state == StateUninitialized {
		return fmt.Errorf("%w: update drawable before initialize", texel.ErrInvalidArgument)
	}
	oldColor := f.colorTexture(0)
	oldDepth := f.desc.Depth.Texture
	if color == oldColor && depth == oldDepth {
		return nil
	}

	if !f.implicit {
		guard := NewBindingGuard(f.ctx)
		defer guard.Restore()
		f.ctx.BindFramebuffer(FRAMEBUFFER, f.id)
	}

	if color != oldColor {
		if color == nil {
			if !f.implicit {
				oldColor.DetachColor(0, false)
			}
			delete(f.desc.ColorAttachments, 0)
		} else {
			if !f.implicit {
				color.AttachAsColor(0, AttachParams{})
			}
			if f.desc.ColorAttachments == nil {
				f.desc.ColorAttachments = make(map[int]Attachment, 1)
			}
			f.desc.ColorAttachments[0] = Attachment{Texture: color}
		}
	}
	if depth != oldDepth {
		if depth == nil {
			if !f.implicit {
				oldDepth.DetachDepth(false)
			}
			f.desc.Depth = Attachment{}
		} else {
			if !f.implicit {
				depth.AttachAsDepth(AttachParams{})
			}
			f.desc.Depth = Attachment{Texture: depth}
		}
	}
	return nil
}

// CopyBytesColorAttachment reads the pixels of color attachment 0 back
// into dst. Only attachment 0 is readable, and r must address a single
// layer, face and mip level. The read goes through a throwaway
// framebuffer so the primary framebuffer's bind state is untouched.
func (f *Framebuffer) CopyBytesColorAttachment(index int, r texel.Range, dst []byte, bytesPerRow uint64) error {
	if index != 0 {
		return fmt.Errorf("%w: only color attachment 0 is readable, got %d", texel.ErrInvalidArgument, index)
	}
	att, ok := f.desc.ColorAttachments[0]
	if !ok {
		return fmt.Errorf("%w: no color attachment to read", texel.ErrInvalidArgument)
	}
	if r.NumLayers != 1 || r.NumFaces != 1 || r.NumMipLevels != 1 {
		return fmt.Errorf("%w: readback requires a single layer, face and mip level", texel.ErrInvalidArgument)
	}
	tex := att.Texture
	props := tex.Resource().Properties()
	tf, ok := transferFormats[tex.Resource().Format()]
	if !ok || tf.compressed != 0 {
		return fmt.Errorf("%w: no readback path for format %v", texel.ErrUnimplemented, tex.Resource().Format())
	}
	if props.IsInteger() && !f.ctx.Caps().IntegerTextures {
		return fmt.Errorf("%w: context lacks integer texture support", texel.ErrUnimplemented)
	}
	rowBytes := bytesPerRow
	if rowBytes == 0 {
		rowBytes = props.BytesPerRow(r.Width)
	}
	if need := props.BytesPerLayer(r.Width, r.Height, 1, rowBytes); uint64(len(dst)) < need {
		return fmt.Errorf("%w: destination holds %d bytes, need %d", texel.ErrInvalidArgument, len(dst), need)
	}

	guard := NewBindingGuard(f.ctx)
	defer guard.Restore()

	readTarget := FRAMEBUFFER
	if f.ctx.Caps().ReadWriteFramebuffer {
		readTarget = READ_FRAMEBUFFER
	}
	scratch := f.ctx.CreateFramebuffer()
	defer f.ctx.DeleteFramebuffer(scratch)
	f.ctx.BindFramebuffer(readTarget, scratch)
	tex.AttachAsColor(0, AttachParams{
		Read:     true,
		Face:     r.Face,
		MipLevel: r.MipLevel,
		Layer:    r.Layer,
	})

	f.ctx.PixelStorei(PACK_ALIGNMENT, Alignment(rowBytes))
	defer f.ctx.PixelStorei(PACK_ALIGNMENT, 4)
	f.ctx.ReadPixels(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height), tf.format, tf.typ, dst)
	f.ctx.Flush()

	if status := f.ctx.GetError(); status != NO_ERROR {
		return fmt.Errorf("%w: ReadPixels failed with 0x%04X", texel.ErrRuntime, uint32(status))
	}
	return nil
}

// CopyBytesDepthAttachment is not supported on this backend.
func (f *Framebuffer) CopyBytesDepthAttachment(texel.Range, []byte, uint64) error {
	return fmt.Errorf("%w: depth attachment readback", texel.ErrUnimplemented)
}

// CopyBytesStencilAttachment is not supported on this backend.
func (f *Framebuffer) CopyBytesStencilAttachment(texel.Range, []byte, uint64) error {
	return fmt.Errorf("%w: stencil attachment readback", texel.ErrUnimplemented)
}

// State returns the framebuffer's lifecycle state.
func (f *Framebuffer) State() State { return f.state }

// Mode returns the framebuffer's view mode.
func (f *Framebuffer) Mode() Mode { return f.desc.Mode }

// ID returns the native framebuffer object name; 0 for the implicit
// framebuffer.
func (f *Framebuffer) ID() FramebufferID { return f.id }

// IsImplicit reports whether the framebuffer wraps the default
// surface rather than owning a native object.
func (f *Framebuffer) IsImplicit() bool { return f.implicit }

// ColorAttachment returns the texture at color slot index, or nil.
func (f *Framebuffer) ColorAttachment(index int) *Texture { return f.colorTexture(index) }

// ResolveColorAttachment returns the resolve texture at color slot
// index, or nil.
func (f *Framebuffer) ResolveColorAttachment(index int) *Texture {
	return f.desc.ColorAttachments[index].Resolve
}

// DepthAttachment returns the depth texture, or nil.
func (f *Framebuffer) DepthAttachment() *Texture { return f.desc.Depth.Texture }

// ResolveDepthAttachment returns the depth resolve texture, or nil.
func (f *Framebuffer) ResolveDepthAttachment() *Texture { return f.desc.Depth.Resolve }

// StencilAttachment returns the texture claiming the stencil aspect,
// or nil.
func (f *Framebuffer) StencilAttachment() *Texture { return f.stencilTexture() }

// ColorAttachmentIndices returns the occupied color slots in ascending
// order.
func (f *Framebuffer) ColorAttachmentIndices() []int {
	return sortedIndices(f.desc.ColorAttachments)
}

// ResolveFramebuffer returns the child framebuffer over the resolve
// textures, or nil when no attachment declared one.
func (f *Framebuffer) ResolveFramebuffer() *Framebuffer { return f.resolve }

// Viewport returns the base-level dimensions of color attachment 0,
// falling back to the depth attachment for depth-only framebuffers.
func (f *Framebuffer) Viewport() (width, height uint32) {
	tex := f.colorTexture(0)
	if tex == nil {
		tex = f.desc.Depth.Texture
	}
	if tex == nil {
		return 0, 0
	}
	return tex.Resource().Width(), tex.Resource().Height()
}

// Destroy releases the native framebuffer object and the resolve
// child. Attached textures are not destroyed; the framebuffer only
// drops its references.
func (f *Framebuffer) Destroy() {
	if f.resolve != nil {
		f.resolve.Destroy()
		f.resolve = nil
	}
	if f.id != 0 {
		f.ctx.DeleteFramebuffer(f.id)
		f.id = 0
	}
	f.desc = FramebufferDescriptor{}
	f.state = StateUninitialized
}

func (f *Framebuffer) colorTexture(index int) *Texture {
	return f.desc.ColorAttachments[index].Texture
}

func sortedIndices(m map[int]Attachment) []int {
	indices := make([]int, 0, len(m))
	for idx := range m {
		indices = append(indices, idx)
	}
	slices.Sort(indices)
	return indices
}

// statusString names a framebuffer completeness status.
func statusString(status Enum) string {
	switch status {
	case FRAMEBUFFER_COMPLETE:
		return "complete"
	case FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "incomplete attachment"
	case FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "missing attachment"
	case FRAMEBUFFER_UNSUPPORTED:
		return "unsupported configuration"
	default:
		return fmt.Sprintf("status 0x%04X", uint32(status))
	}
}
