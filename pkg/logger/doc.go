// Package logger provides structured logging on top of Uber's zap.
//
// It is the sink for call trace lines: *Logger satisfies calltrace.Logger and
// the Logger interfaces declared by the other packages of this module.
//
// Basic Usage:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         "info",
//		ServiceName:   "itemservice",
//		EnableTracing: true,
//	})
//
//	log.Info("Item saved", nil, map[string]interface{}{
//		"item_id": 42,
//	})
//
//	// adds trace_id and trace_level of the current traced call
//	log.InfoWithContext(ctx, "Loading item", nil, nil)
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		// ... other modules
//	)
//
// Configuration:
//
//	ZAP_LOGGER_LEVEL=debug          # Log level (debug, info, warning, error)
//	LOGGER_SERVICE_NAME=itemservice # Value of the "service" field
//	LOGGER_ENCODING=console         # json (default) or console
//	LOGGER_ENABLE_TRACING=true      # Add trace correlation fields in *WithContext methods
//
// When tracing is enabled the *WithContext methods add:
//   - trace_id, trace_level: the calltrace identity of the innermost traced call
//   - otel_trace_id, otel_span_id: the OpenTelemetry span context, if one is present
//
// Thread Safety:
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
