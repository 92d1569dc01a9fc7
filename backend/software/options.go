// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image/color"
	"log/slog"
)

// Option configures a Backend during creation.
type Option func(*options)

type options struct {
	clearColor *color.RGBA
	logger     *slog.Logger
}

// WithClearColor makes every commit clear the dirty rectangle of the window
// to c (premultiplied) before compositing. By default only depth and
// stencil are cleared and uncovered window pixels keep their old contents.
func WithClearColor(c color.RGBA) Option {
	return func(o *options) {
		o.clearColor = &c
	}
}

// WithLogger sets the backend's logger. Without it the backend follows
// planeshift.SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
