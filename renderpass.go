// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import "github.com/gogpu/gputypes"

// StereoEye selects the target eye of a stereo framebuffer attachment.
type StereoEye uint8

const (
	// EyeMono is the single eye of a non-stereo pass.
	EyeMono StereoEye = iota

	// EyeLeft targets the left half of a stereo attachment.
	EyeLeft

	// EyeRight targets the right half of a stereo attachment.
	EyeRight
)

// AttachmentAction is the render-pass-declared policy for one
// attachment: whether its prior contents are kept or cleared at bind
// time, whether its results are kept at unbind time, and which
// sub-resource of the attached texture the pass targets.
type AttachmentAction struct {
	// Load decides what happens to prior contents at bind time.
	Load gputypes.LoadOp

	// Store decides whether results are kept at unbind time. Anything
	// other than [gputypes.StoreOpStore] marks the attachment
	// discardable.
	Store gputypes.StoreOp

	// Layer, MipLevel and Face select the attached sub-resource.
	// Framebuffers attach at (0, 0, 0) by default and only re-attach
	// when the pass requests something else.
	Layer    uint32
	MipLevel uint32
	Face     uint32

	// Eye selects the stereo eye for stereo framebuffers.
	Eye StereoEye
}

// ColorAttachmentAction is the pass policy for one color attachment.
type ColorAttachmentAction struct {
	AttachmentAction

	// ClearColor is used when Load is [gputypes.LoadOpClear].
	ClearColor gputypes.Color
}

// DepthAttachmentAction is the pass policy for the depth attachment.
type DepthAttachmentAction struct {
	AttachmentAction

	// ClearDepth is used when Load is [gputypes.LoadOpClear].
	ClearDepth float32
}

// StencilAttachmentAction is the pass policy for the stencil
// attachment.
type StencilAttachmentAction struct {
	AttachmentAction

	// ClearStencil is used when Load is [gputypes.LoadOpClear].
	ClearStencil uint32
}

// RenderPassDescriptor describes one render pass over a framebuffer:
// per-attachment load/store actions and clear values, indexed the same
// way as the framebuffer's attachment set.
type RenderPassDescriptor struct {
	// ColorAttachments maps attachment index to its pass policy.
	ColorAttachments map[int]ColorAttachmentAction

	// DepthAttachment is the pass policy for the depth attachment.
	DepthAttachment DepthAttachmentAction

	// StencilAttachment is the pass policy for the stencil attachment.
	StencilAttachment StencilAttachmentAction
}

// ColorAction returns the pass policy for color attachment index.
// Missing entries default to load-and-store, which touches nothing.
func (d RenderPassDescriptor) ColorAction(index int) ColorAttachmentAction {
	if a, ok := d.ColorAttachments[index]; ok {
		return a
	}
	return ColorAttachmentAction{
		AttachmentAction: AttachmentAction{
			Load:  gputypes.LoadOpLoad,
			Store: gputypes.StoreOpStore,
		},
	}
}
