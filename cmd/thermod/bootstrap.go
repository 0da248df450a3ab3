package main

import (
	"thermo/internal/config"
	"thermo/internal/journal"
)

// openJournal opens the conversion history store when enabled. A nil store
// means the daemon runs without persistence.
func openJournal(cfg *config.Config) (*journal.Store, error) {
	if cfg == nil || !cfg.Journal.Enabled {
		return nil, nil
	}
	return journal.Open(cfg)
}
