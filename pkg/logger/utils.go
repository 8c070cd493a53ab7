package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Aleph-Alpha/calltrace/pkg/calltrace"
)

// convertToZapFields converts error and additional field maps into Zap's structured logging fields.
// If multiple fields maps contain the same key, the later maps will override earlier ones.
func (l *Logger) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	var zapFields []zap.Field
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}

	merged := make(map[string]interface{})
	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			merged[key] = value
		}
	}
	for key, value := range merged {
		zapFields = append(zapFields, zap.Any(key, value))
	}
	return zapFields
}

// contextFields returns the trace correlation fields carried by ctx.
// Call trace fields are skipped when the caller already supplied them.
func (l *Logger) contextFields(ctx context.Context, fields []map[string]interface{}) []map[string]interface{} {
	if !l.tracingEnabled || ctx == nil {
		return fields
	}

	extra := make(map[string]interface{})
	if id, ok := calltrace.IdentityFromContext(ctx); ok {
		extra["trace_id"] = id.ID()
		extra["trace_level"] = id.Level()
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		extra["otel_trace_id"] = sc.TraceID().String()
		extra["otel_span_id"] = sc.SpanID().String()
	}
	if len(extra) == 0 {
		return fields
	}

	// caller supplied fields win
	return append([]map[string]interface{}{extra}, fields...)
}

// Info logs an informational message, along with an optional error and structured fields.
//
// Example:
//
//	logger.Info("User logged in successfully", nil, map[string]interface{}{
//	    "user_id": 12345,
//	})
func (l *Logger) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, l.convertToZapFields(err, fields...)...)
}

// Debug logs a debug-level message, useful for development and troubleshooting.
func (l *Logger) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, l.convertToZapFields(err, fields...)...)
}

// Warn logs a warning message, indicating potential issues that aren't necessarily errors.
func (l *Logger) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, l.convertToZapFields(err, fields...)...)
}

// Error logs an error message, including details of the error and additional context fields.
func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, l.convertToZapFields(err, fields...)...)
}

// Fatal logs a critical error message and terminates the application.
//
// Note: This function does not return as it terminates the application.
func (l *Logger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Fatal(msg, l.convertToZapFields(err, fields...)...)
}

// InfoWithContext is Info with the trace correlation fields found in ctx.
//
// Example:
//
//	ctx, span := tracer.Begin(ctx, "ItemService.SaveItem()")
//	log.InfoWithContext(ctx, "saving item", nil, map[string]interface{}{"item_name": name})
func (l *Logger) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Info(msg, err, l.contextFields(ctx, fields)...)
}

// DebugWithContext is Debug with the trace correlation fields found in ctx.
func (l *Logger) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Debug(msg, err, l.contextFields(ctx, fields)...)
}

// WarnWithContext is Warn with the trace correlation fields found in ctx.
func (l *Logger) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Warn(msg, err, l.contextFields(ctx, fields)...)
}

// ErrorWithContext is Error with the trace correlation fields found in ctx.
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Error(msg, err, l.contextFields(ctx, fields)...)
}
