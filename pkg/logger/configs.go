package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config defines the logger configuration.
type Config struct {
	// Level is one of debug, info, warning, error. Anything else means info.
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`

	// Encoding is "json" (default) or "console". Console output keeps the
	// indented trace lines readable during local development.
	Encoding string `yaml:"encoding" envconfig:"LOGGER_ENCODING"`

	// EnableTracing makes the *WithContext methods add the call trace id and
	// level, and the OpenTelemetry trace and span ids, found in the context.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`
}
