package config

// MetricsConfig holds metrics collection configuration
type MetricsConfig struct {
	// Enabled controls whether dispatch metrics are collected
	Enabled bool `mapstructure:"enabled"`

	// Namespace prefixes every metric name
	Namespace string `mapstructure:"namespace" validate:"omitempty,alphanum"`
}
