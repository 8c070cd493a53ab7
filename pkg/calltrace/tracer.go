package calltrace

import (
	"context"
	"fmt"
	"strings"

	"github.com/zoobzio/clockz"
)

const (
	startPrefix    = "-->"
	completePrefix = "<--"
	exPrefix       = "<X-"
)

// Logger defines the interface for logging operations in the calltrace package.
// Trace lines are written through Info, failures through Warn.
//
//go:generate mockgen -source=tracer.go -destination=mock_logger.go -package=calltrace
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Tracer writes begin, end and exception lines for nested calls of one logical
// execution. The current TraceIdentity travels in the context.Context handed to
// Begin, so a single Tracer can be shared by any number of goroutines without
// their nesting levels interfering.
type Tracer struct {
	logger Logger
	clock  clockz.Clock
	newID  func() string
}

// Option configures a Tracer.
type Option func(*Tracer)

// WithClock replaces the clock used for start times and elapsed durations.
func WithClock(clock clockz.Clock) Option {
	return func(t *Tracer) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithIDGenerator replaces the correlation id generator.
func WithIDGenerator(gen func() string) Option {
	return func(t *Tracer) {
		if gen != nil {
			t.newID = gen
		}
	}
}

// NewTracer creates a Tracer that writes to logger.
func NewTracer(logger Logger, opts ...Option) *Tracer {
	t := &Tracer{
		logger: logger,
		clock:  clockz.RealClock,
		newID:  newCorrelationID,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Begin opens a span for label. When ctx carries no identity a new root
// identity is created, otherwise the next deeper one is derived. The returned
// context carries the new identity and must be used for nested calls.
func (t *Tracer) Begin(ctx context.Context, label string) (context.Context, *TraceSpan) {
	if ctx == nil {
		ctx = context.Background()
	}

	identity, ok := IdentityFromContext(ctx)
	if ok {
		identity = identity.Next()
	} else {
		identity = newRootIdentity(t.newID)
	}

	span := newTraceSpan(identity, t.clock.Now(), label)

	t.emit(false, fmt.Sprintf("[%s] %s%s", identity.ID(), addSpace(startPrefix, identity.Level()), label), nil,
		map[string]interface{}{
			"trace_id": identity.ID(),
			"level":    identity.Level(),
			"label":    label,
		})

	return ContextWithIdentity(ctx, identity), span
}

// End closes span after a successful call and writes the elapsed time.
func (t *Tracer) End(span *TraceSpan) {
	t.complete(span, nil)
}

// Exception closes span after a failed call and writes the elapsed time and err.
// A nil span, meaning Begin never returned, still produces a best-effort line.
func (t *Tracer) Exception(span *TraceSpan, err error) {
	if span == nil {
		t.emit(true, fmt.Sprintf("[-] %s ex=%s", exPrefix, describe(err)), err, nil)
		return
	}
	t.complete(span, errOrUnknown(err))
}

func (t *Tracer) complete(span *TraceSpan, err error) {
	if span == nil {
		t.emit(true, "calltrace: end called without an open span", nil, nil)
		return
	}
	if !span.close() {
		t.emit(true, "calltrace: span closed more than once", nil, map[string]interface{}{
			"trace_id": span.identity.ID(),
			"level":    span.identity.Level(),
			"label":    span.label,
		})
		return
	}

	elapsed := t.clock.Since(span.startTime).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}

	identity := span.identity
	fields := map[string]interface{}{
		"trace_id":   identity.ID(),
		"level":      identity.Level(),
		"label":      span.label,
		"elapsed_ms": elapsed,
	}

	if err == nil {
		t.emit(false, fmt.Sprintf("[%s] %s%s time=%dms", identity.ID(),
			addSpace(completePrefix, identity.Level()), span.label, elapsed), nil, fields)
		return
	}

	t.emit(true, fmt.Sprintf("[%s] %s%s time=%dms ex=%s", identity.ID(),
		addSpace(exPrefix, identity.Level()), span.label, elapsed, describe(err)), err, fields)
}

// emit hands one line to the logger. A panicking sink is swallowed so that
// tracing never fails the traced call.
func (t *Tracer) emit(failure bool, msg string, err error, fields map[string]interface{}) {
	if t == nil || t.logger == nil {
		return
	}
	defer func() {
		_ = recover()
	}()

	if failure {
		t.logger.Warn(msg, err, fields)
		return
	}
	t.logger.Info(msg, err, fields)
}

// addSpace renders the indentation for level: "| " per enclosing call and
// "|"+prefix for the call itself. Level 0 has no indentation.
func addSpace(prefix string, level int) string {
	var sb strings.Builder
	for i := 0; i < level; i++ {
		if i == level-1 {
			sb.WriteString("|")
			sb.WriteString(prefix)
		} else {
			sb.WriteString("| ")
		}
	}
	return sb.String()
}

func describe(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

func errOrUnknown(err error) error {
	if err == nil {
		return ErrUnknownFailure
	}
	return err
}
