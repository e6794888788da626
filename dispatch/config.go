package dispatch

import (
	"github.com/farwydi/triage"
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

// Config defines the config for dispatcher.
type Config struct {
	Logger Logger
	// Journal receives visits that failed to publish.
	Journal triage.Journal
	// Registerer is where dispatcher metrics are registered, nil skips registration.
	Registerer    prometheus.Registerer
	ServeInterval time.Duration
	ServeLimit    int
	ShowActivity  bool
	// OnServe is called for every patient taken off the queue.
	OnServe func(visit *triage.Visit)
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	ServeInterval: time.Second,
	ServeLimit:    1,
	ShowActivity:  true,
}

// Helper function to set default values
func configDefault(config ...Config) Config {
	// Return default config if nothing provided
	if len(config) < 1 {
		return ConfigDefault
	}

	// Override default config
	cfg := config[0]

	if cfg.ServeLimit == 0 {
		cfg.ServeLimit = ConfigDefault.ServeLimit
	}

	if cfg.ServeInterval < 100*time.Millisecond {
		cfg.ServeInterval = 100 * time.Millisecond
	}

	return cfg
}
