package main

import (
	"testing"

	"thermo/internal/testsupport"
)

func TestOpenJournalDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournalDisabled())
	store, err := openJournal(cfg)
	if err != nil {
		t.Fatalf("openJournal: %v", err)
	}
	if store != nil {
		t.Fatal("expected nil store when journal is disabled")
	}

	if store, err := openJournal(nil); err != nil || store != nil {
		t.Fatalf("expected nil store for nil config, got %v %v", store, err)
	}
}

func TestOpenJournalEnabled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := openJournal(cfg)
	if err != nil {
		t.Fatalf("openJournal: %v", err)
	}
	if store == nil {
		t.Fatal("expected store when journal is enabled")
	}
	t.Cleanup(func() {
		store.Close()
	})
	if store.Path() != cfg.JournalPath() {
		t.Fatalf("unexpected journal path %q", store.Path())
	}
}
