package calltrace

import "context"

// Call runs fn inside a span named label. fn receives the context carrying the
// span's identity. Its results are returned as they are; a non-nil error closes
// the span with Exception, otherwise End. If fn panics the span is closed with
// Exception and the panic continues; if fn exits its goroutine the span is
// closed with ErrAborted.
func Call[R any](ctx context.Context, t *Tracer, label string, fn func(context.Context) (R, error)) (R, error) {
	if t == nil {
		return fn(ctx)
	}

	ctx, span := t.Begin(ctx, label)
	defer recoverInto(t, span)

	result, err := fn(ctx)
	if err != nil {
		t.Exception(span, err)
		return result, err
	}

	t.End(span)
	return result, nil
}

// Exec is Call for operations that only return an error.
func Exec(ctx context.Context, t *Tracer, label string, fn func(context.Context) error) error {
	_, err := Call(ctx, t, label, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Value is Call for operations that cannot fail.
func Value[R any](ctx context.Context, t *Tracer, label string, fn func(context.Context) R) R {
	result, _ := Call(ctx, t, label, func(ctx context.Context) (R, error) {
		return fn(ctx), nil
	})
	return result
}

// Run is Call for operations without results.
func Run(ctx context.Context, t *Tracer, label string, fn func(context.Context)) {
	_, _ = Call(ctx, t, label, func(ctx context.Context) (struct{}, error) {
		fn(ctx)
		return struct{}{}, nil
	})
}

// recoverInto closes a span that fn left open. A panic is recorded and
// re-raised; an open span without a panic means fn ran runtime.Goexit.
func recoverInto(t *Tracer, span *TraceSpan) {
	r := recover()
	if r == nil {
		if !span.Closed() {
			t.Exception(span, ErrAborted)
		}
		return
	}
	if !span.Closed() {
		t.Exception(span, &PanicError{Value: r})
	}
	panic(r)
}
