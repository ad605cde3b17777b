package config

// TracingConfig holds OpenTelemetry tracing configuration
type TracingConfig struct {
	// Enabled wraps every request in a span
	Enabled bool `mapstructure:"enabled"`

	// Exporter: stdout, otlp
	Exporter string `mapstructure:"exporter" validate:"required,oneof=stdout otlp"`

	// OTLP gRPC collector endpoint (host:port), used by the otlp exporter
	Endpoint string `mapstructure:"endpoint" validate:"required_if=Exporter otlp"`

	// Insecure disables TLS towards the collector
	Insecure bool `mapstructure:"insecure"`

	// ServiceName is reported as the service.name resource attribute
	ServiceName string `mapstructure:"service_name" validate:"required"`
}
