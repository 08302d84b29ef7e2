// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texel implements texture sub-resource addressing and byte-layout
// calculation for GPU texture data, together with the backend-agnostic core
// of a render-target attachment model.
//
// The addressing engine converts a logical description of a texture
// sub-region (mip level, array layer, cube face, Z slice, row) into exact
// byte offsets and sizes for arbitrary pixel formats, including
// block-compressed formats with non-1×1 block footprints:
//
//	props := texel.PropertiesOf(texel.FormatRGBA8Unorm)
//	r := texel.New2D(0, 0, 256, 256)
//	n, err := props.BytesPerRange(r, 0) // 256*256*4
//
// Texture data is always addressed with the following nesting order:
//
//	mip level
//	  array layer
//	    cube face
//	      z slice
//	        row
//
// [Texture] validates ranges against a concrete resource's dimensions and
// drives upload and repacking decisions; the actual write path is supplied
// by a backend variant (see backend/gl and backend/wgpu) through the narrow
// [Storage] interface.
//
// Framebuffer attachment state machines live in the backend packages; this
// package defines the shared value types they consume, most notably
// [RenderPassDescriptor] and [SurfaceTextures].
//
// All context-touching operations assume exclusive access to one graphics
// context at a time; see the backend/gl package documentation for the
// threading contract.
package texel
