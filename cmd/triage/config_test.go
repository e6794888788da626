package main

import (
	"github.com/farwydi/triage/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend)
	assert.Len(t, cfg.Patients, 3)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
backend: heap
clerks: 3
serve_interval: 250ms
serve_limit: 2
patients:
  - name: A
    priority: 5
    department: er
  - name: B
    priority: 5
    department: er
  - name: C
    priority: 1
    department: er
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "heap", cfg.Backend)
	assert.Equal(t, 3, cfg.Clerks)
	assert.Equal(t, 250*time.Millisecond, cfg.ServeInterval)
	assert.Equal(t, 2, cfg.ServeLimit)
	require.Len(t, cfg.Patients, 3)
	assert.Equal(t, PatientConfig{Name: "C", Priority: 1, Department: "er"}, cfg.Patients[2])
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(writeConfig(t, "backend: list\n"))
	assert.Error(t, err)

	_, err = loadConfig(writeConfig(t, "unknown_field: 1\n"))
	assert.Error(t, err)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAdmitAllConcurrentClerks(t *testing.T) {
	cfg := defaultConfig
	cfg.Clerks = 2

	var served []string
	d, err := dispatch.NewDispatcher(nil, newQueueFunc(&cfg), dispatch.Config{
		Logger: zap.NewNop().Sugar(),
	})
	require.NoError(t, err)

	require.NoError(t, admitAll(d, &cfg))
	assert.Equal(t, 3, d.Len())

	waiting := d.Waiting()
	for _, entry := range waiting[""] {
		served = append(served, entry.Entity.Name)
	}
	assert.Equal(t, []string{"Duda", "Lucas", "Maria"}, served)
}

func TestRunWithoutDatabase(t *testing.T) {
	path := writeConfig(t, "backend: heap\nclerks: 2\n")
	assert.NoError(t, run(path, zap.NewNop().Sugar()))
}
