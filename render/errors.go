// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// Package errors for the render device.
var (
	// ErrInvalidDimensions is returned when a width or height is zero.
	ErrInvalidDimensions = errors.New("render: invalid dimensions")

	// ErrUnsupportedFormat is returned for texture formats the device
	// cannot store.
	ErrUnsupportedFormat = errors.New("render: unsupported format")

	// ErrUnknownTexture is returned when a texture name does not exist.
	ErrUnknownTexture = errors.New("render: unknown texture")

	// ErrUnknownRenderbuffer is returned when a renderbuffer name does not exist.
	ErrUnknownRenderbuffer = errors.New("render: unknown renderbuffer")

	// ErrUnknownFramebuffer is returned when a framebuffer name does not exist.
	ErrUnknownFramebuffer = errors.New("render: unknown framebuffer")

	// ErrAttachmentSize is returned when framebuffer attachments differ in size.
	ErrAttachmentSize = errors.New("render: attachment size mismatch")

	// ErrOutOfBounds is returned when a region falls outside its target.
	ErrOutOfBounds = errors.New("render: region out of bounds")

	// ErrDataSize is returned when an upload does not match its region.
	ErrDataSize = errors.New("render: pixel data size mismatch")
)
