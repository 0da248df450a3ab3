// Package testsupport provides shared fixtures for thermo tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"thermo/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.SocketPath = filepath.Join(base, "thermod.sock")
	cfg.Journal.Path = filepath.Join(base, "data", "journal.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithEndpointName overrides the endpoint name on the test config.
func WithEndpointName(name string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Endpoint.Name = name
	}
}

// WithJournalDisabled turns off history persistence on the test config.
func WithJournalDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Journal.Enabled = false
	}
}
