package topcandidates

import (
	"time"

	"ranking-workers/internal/common/config"
)

// DefaultLimit is used when the job carries no limit variable.
const DefaultLimit = 10

type Config struct {
	Timeout      time.Duration
	DefaultLimit int
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	cfg := &Config{
		Timeout:      config.GetDuration(wcfg.Timeout),
		DefaultLimit: DefaultLimit,
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg
}
