package config

// DispatchConfig holds mediator dispatch configuration
type DispatchConfig struct {
	// Concurrent enables per-request-type locking so the mediator can be
	// shared between goroutines
	Concurrent bool `mapstructure:"concurrent"`

	// Optional rate limit applied to every request
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds token bucket settings. Zero requests disables limiting.
type RateLimitConfig struct {
	Requests float64 `mapstructure:"requests" validate:"min=0"`
	Burst    int     `mapstructure:"burst" validate:"min=0"`
}

// Enabled reports whether a rate limit is configured
func (c RateLimitConfig) Enabled() bool {
	return c.Requests > 0
}
