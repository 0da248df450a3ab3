package main

import (
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"start"}, env.socketPath, env.configPath); err != nil {
		t.Fatalf("start: %v", err)
	}

	out, _, err := runCLI(t, []string{"write", "100F"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	requireContains(t, out, "Converted to 37")

	out, _, err = runCLI(t, []string{"read"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	requireContains(t, out, "100 (3 bytes)")
}

func TestWriteMalformedToken(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"start"}, env.socketPath, env.configPath); err != nil {
		t.Fatalf("start: %v", err)
	}

	out, _, err := runCLI(t, []string{"write", "abcF"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("write malformed: %v", err)
	}
	requireContains(t, out, "malformed")
	requireContains(t, out, "4 bytes still transferred")

	if _, _, err := runCLI(t, []string{"write", "12345F"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected oversized token to fail")
	}
}

func TestConvertCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"start"}, env.socketPath, env.configPath); err != nil {
		t.Fatalf("start: %v", err)
	}

	out, _, err := runCLI(t, []string{"convert", "0C"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "Converted to 32")
	requireContains(t, out, `Buffer now holds "0"`)
}

func TestHistoryAndTotals(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"start"}, env.socketPath, env.configPath); err != nil {
		t.Fatalf("start: %v", err)
	}

	out, _, err := runCLI(t, []string{"history"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("history empty: %v", err)
	}
	requireContains(t, out, "Journal is empty")

	if _, _, err := runCLI(t, []string{"write", "212F"}, env.socketPath, env.configPath); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := runCLI(t, []string{"write", "100K"}, env.socketPath, env.configPath); err != nil {
		t.Fatalf("write unknown unit: %v", err)
	}

	out, _, err = runCLI(t, []string{"history"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "212")
	requireContains(t, out, "unknown_unit")

	out, _, err = runCLI(t, []string{"totals"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	requireContains(t, out, "Attempts")
	requireContains(t, out, "Converted")
	requireContains(t, out, "Unknown unit")
}
