package memory

// Config defines the config for memory queue.
type Config struct {
	// Capacity bounds the queue, zero means unbounded.
	Capacity int
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	Capacity: 0,
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

	return cfg
}
