// Package daemon owns the lifetime of the conversion endpoint.
//
// A Daemon enforces single-instance execution through a lock file, registers
// the endpoint with the registry on Start, wires its diagnostics and journal
// recorder, and tears everything down on Stop. The endpoint state lives
// exactly as long as the registration, so counters reset across restarts
// while the journal preserves history.
package daemon
