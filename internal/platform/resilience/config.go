package resilience

import "time"

// CircuitBreakerConfig is populated from NBA_CIRCUIT_* / ASTRONOMY_CIRCUIT_*.
type CircuitBreakerConfig struct {
	Enabled          bool          `env:"ENABLED" envDefault:"true"`
	FailureThreshold int           `env:"FAILURE_THRESHOLD" envDefault:"5"`
	OpenTimeout      time.Duration `env:"OPEN_TIMEOUT" envDefault:"30s"`
	HalfOpenMaxReq   int           `env:"HALF_OPEN_MAX_REQUESTS" envDefault:"1"`
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   1,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}
