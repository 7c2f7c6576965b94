// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

// Package clock encapsulates "now" behind a single indirection so tests can
// drive timer-dependent behavior (countdown, lag screen, action cadence)
// without sleeping real wall-clock time (§9 design note).
package clock

import "time"

// Clock returns the current time in milliseconds since some fixed epoch.
// Only differences between two Clock() calls are meaningful.
type Clock interface {
	NowMs() int64
}

// System is the production Clock, backed by time.Now.
type System struct{}

// NowMs implements Clock.
func (System) NowMs() int64 { return time.Now().UnixMilli() }

// Virtual is a test Clock whose time only moves when Advance is called.
type Virtual struct {
	ms int64
}

// NewVirtual returns a Virtual clock starting at ms.
func NewVirtual(ms int64) *Virtual { return &Virtual{ms: ms} }

// NowMs implements Clock.
func (v *Virtual) NowMs() int64 { return v.ms }

// Advance moves the virtual clock forward by d and returns the new time.
func (v *Virtual) Advance(d time.Duration) int64 {
	v.ms += d.Milliseconds()
	return v.ms
}
