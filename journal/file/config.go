package file

// Config defines the config for file journal.
type Config struct {
	Workspace string
	Name      string
	// MaxHistory is how many corrupted journals are kept around.
	MaxHistory int
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	Workspace:  "/tmp",
	Name:       "visits",
	MaxHistory: 3,
}

// Helper function to set default values
func configDefault(config ...Config) Config {
	// Return default config if nothing provided
	if len(config) < 1 {
		return ConfigDefault
	}

	// Override default config
	cfg := config[0]

	if cfg.Workspace == "" {
		cfg.Workspace = ConfigDefault.Workspace
	}

	if cfg.Name == "" {
		cfg.Name = ConfigDefault.Name
	}

	if cfg.MaxHistory == 0 {
		cfg.MaxHistory = ConfigDefault.MaxHistory
	}

	return cfg
}
