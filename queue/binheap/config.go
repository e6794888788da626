package binheap

// Config defines the config for heap queue.
type Config struct {
	// Capacity bounds the queue, zero means unbounded.
	Capacity int
	// SizeHint preallocates the backing slice.
	SizeHint int
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	Capacity: 0,
	SizeHint: 16,
}

// Helper function to set default values
func configDefault(config ...Config) Config {
	// Return default config if nothing provided
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.Capacity < 0 {
		cfg.Capacity = ConfigDefault.Capacity
	}

	if cfg.SizeHint <= 0 {
		cfg.SizeHint = ConfigDefault.SizeHint
	}

	if cfg.Capacity > 0 && cfg.SizeHint > cfg.Capacity {
		cfg.SizeHint = cfg.Capacity
	}

	return cfg
}
