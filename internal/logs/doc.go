// Package logs provides log file tailing with stable offsets so the CLI can
// page through daemon output and follow new lines as they arrive.
//
// A negative offset means "the last N lines"; the returned offset can be fed
// back in to resume where the previous call stopped. Callers supply context
// deadlines so follow-mode polling shuts down cleanly when the CLI exits.
package logs
