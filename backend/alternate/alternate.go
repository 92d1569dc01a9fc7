// Package alternate provides a planeshift backend that uses one backend
// and falls back to another when the first cannot connect.
//
// More than two backends can be chained by passing Factory as either
// argument:
//
//	b, err := alternate.New(conn, nativeFactory, alternate.Factory(glxFactory, softwareFactory))
package alternate

import (
	"errors"
	"log/slog"

	"github.com/gogpu/planeshift"
)

// Backend delegates every call to the backend that connected.
type Backend struct {
	planeshift.Backend
	fallback bool
}

// New connects primary to conn, or fallback if primary fails. It returns a
// *planeshift.ConnectionError wrapping both failures if neither connects.
func New(conn planeshift.Connection, primary, fallback planeshift.BackendFactory) (*Backend, error) {
	a, errA := primary(conn)
	if errA == nil {
		return &Backend{Backend: a}, nil
	}
	planeshift.Logger().Warn("alternate: primary backend failed, trying fallback", "err", errA)

	b, errB := fallback(conn)
	if errB == nil {
		return &Backend{Backend: b, fallback: true}, nil
	}
	return nil, &planeshift.ConnectionError{Err: errors.Join(errA, errB)}
}

// Factory returns a BackendFactory for New(conn, primary, fallback).
func Factory(primary, fallback planeshift.BackendFactory) planeshift.BackendFactory {
	return func(conn planeshift.Connection) (planeshift.Backend, error) {
		b, err := New(conn, primary, fallback)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

// Name returns "alternate(<active backend>)".
func (b *Backend) Name() string {
	return "alternate(" + b.Backend.Name() + ")"
}

// Active returns the backend that connected.
func (b *Backend) Active() planeshift.Backend {
	return b.Backend
}

// Fallback reports whether the fallback backend is active.
func (b *Backend) Fallback() bool {
	return b.fallback
}

// SetLogger forwards l to the active backend if it accepts a logger.
func (b *Backend) SetLogger(l *slog.Logger) {
	if ls, ok := b.Backend.(interface{ SetLogger(*slog.Logger) }); ok {
		ls.SetLogger(l)
	}
}
