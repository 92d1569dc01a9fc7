// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import "errors"

// Package errors for the software compositor.
var (
	// ErrClosed is returned for operations on a closed backend.
	ErrClosed = errors.New("software: backend closed")

	// ErrScreenshotBounds is returned when a screenshot box falls outside
	// the window framebuffer.
	ErrScreenshotBounds = errors.New("software: screenshot outside window")
)
