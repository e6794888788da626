package main

import (
	"fmt"
	"gopkg.in/yaml.v2"
	"os"
	"time"
)

type PatientConfig struct {
	Name       string `yaml:"name"`
	Priority   int    `yaml:"priority"`
	Department string `yaml:"department"`
}

type Config struct {
	// DSN of the ClickHouse visit log, empty disables publishing.
	DSN string `yaml:"dsn"`

	// Backend is memory or heap.
	Backend       string          `yaml:"backend"`
	Capacity      int             `yaml:"capacity"`
	Clerks        int             `yaml:"clerks"`
	ServeInterval time.Duration   `yaml:"serve_interval"`
	ServeLimit    int             `yaml:"serve_limit"`
	Workspace     string          `yaml:"workspace"`
	Patients      []PatientConfig `yaml:"patients"`
}

var defaultConfig = Config{
	Backend:       "memory",
	Clerks:        1,
	ServeInterval: time.Second,
	ServeLimit:    1,
	Patients: []PatientConfig{
		{Name: "Lucas", Priority: 2},
		{Name: "Duda", Priority: 1},
		{Name: "Maria", Priority: 3},
	},
}

// loadConfig reads a yaml file over the defaults, an empty path returns the defaults.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig
	if path == "" {
		return &config, nil
	}

	yamlText, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.UnmarshalStrict(yamlText, &config)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	switch config.Backend {
	case "memory", "heap":
	default:
		return nil, fmt.Errorf("unknown backend %q", config.Backend)
	}

	if config.Clerks < 1 {
		config.Clerks = 1
	}

	return &config, nil
}
