// Package ipc exposes the daemon over JSON-RPC Unix sockets and ships the
// matching client used by the CLI.
//
// It owns socket lifecycle management, request/response DTOs, and the peer
// credential lookup that identifies calling processes. Each accepted
// connection gets its own service instance so endpoint opens and closes are
// attributed to the process on the other end of the socket. The client
// decorates calls with a dial timeout so CLI commands fail fast when the
// daemon is offline.
package ipc
