package calltrace

import (
	"sync/atomic"
	"time"
)

// TraceSpan is the open interval of one traced call. It is returned by
// Tracer.Begin and must be handed back to exactly one of Tracer.End or
// Tracer.Exception.
type TraceSpan struct {
	identity  TraceIdentity
	startTime time.Time
	label     string

	closed atomic.Bool
}

func newTraceSpan(identity TraceIdentity, start time.Time, label string) *TraceSpan {
	return &TraceSpan{
		identity:  identity,
		startTime: start,
		label:     label,
	}
}

// Identity returns the identity that was active when the span opened.
func (s *TraceSpan) Identity() TraceIdentity { return s.identity }

// StartTime returns the instant Begin was called.
func (s *TraceSpan) StartTime() time.Time { return s.startTime }

// Label returns the displayed operation name.
func (s *TraceSpan) Label() string { return s.label }

// Closed reports whether the span was already consumed by End or Exception.
func (s *TraceSpan) Closed() bool { return s.closed.Load() }

// close latches the span and reports whether this call was the first.
func (s *TraceSpan) close() bool {
	return s.closed.CompareAndSwap(false, true)
}
