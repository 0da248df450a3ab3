// Package journal persists conversion history in SQLite.
//
// Every completed write attempt against the endpoint produces one row, whether
// the token converted, failed to parse, or carried an unknown unit. Counter
// snapshots are stored alongside so usage survives daemon restarts even though
// the live endpoint counters reset with each registration.
//
// The store applies WAL mode and retries briefly on SQLITE_BUSY so the daemon
// and CLI history queries can share the database file.
package journal
