// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import "errors"

// Error classes. Every error returned by this module wraps exactly one of
// these, so callers can classify failures with errors.Is without matching
// message text.
var (
	// ErrInvalidArgument is the class of all caller-input failures:
	// malformed ranges, out-of-bounds sub-resources, mismatched
	// resolve-attachment sets, contract violations on custom strides.
	ErrInvalidArgument = errors.New("texel: invalid argument")

	// ErrRuntime is the class of backend-reported failures, such as an
	// incomplete framebuffer or an unexpected native status code. The
	// wrapped message carries the backend's own status text.
	ErrRuntime = errors.New("texel: runtime error")

	// ErrUnimplemented is the class of operations that are not supported
	// on the current backend or path, such as depth/stencil readback or
	// uploads to a texture whose usage flags disallow writing.
	ErrUnimplemented = errors.New("texel: unimplemented")
)

// Specific sentinels, each wrapping its class so both levels match.
var (
	// ErrInvalidRange is returned when a Range fails validation.
	ErrInvalidRange = wrap(ErrInvalidArgument, "invalid range")

	// ErrStrideWithMipChain is returned when a custom bytes-per-row is
	// combined with a range spanning more than one mip level. Each mip
	// level recomputes its own default stride; a single custom stride
	// across a mip chain is meaningless.
	ErrStrideWithMipChain = wrap(ErrInvalidArgument, "custom bytes-per-row requires a single mip level")

	// ErrUploadNotSupported is returned when uploading to a texture whose
	// usage flags or format disallow writing.
	ErrUploadNotSupported = wrap(ErrUnimplemented, "texture does not support upload")
)

func wrap(class error, msg string) error {
	return &classError{class: class, msg: "texel: " + msg}
}

// classError is an error that also matches its class via errors.Is.
type classError struct {
	class error
	msg   string
}

func (e *classError) Error() string { return e.msg }
func (e *classError) Unwrap() error { return e.class }
