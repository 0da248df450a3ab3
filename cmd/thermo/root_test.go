package main

import "testing"

func TestRootCommandRegistersSubcommands(t *testing.T) {
	rootCmd := newRootCommand()

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	expected := []string{
		"start", "stop", "status",
		"write", "read", "convert",
		"history", "totals", "logs", "config",
	}
	for _, name := range expected {
		if !registered[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
