// Package transfer models the boundary that payload bytes cross between a
// caller and the conversion endpoint.
//
// The endpoint never touches caller memory directly; every staged write and
// every delivered read goes through a Port. Copies either complete in full or
// fail without partial effect, which is what lets the endpoint guarantee its
// buffer and counters are never half-mutated.
//
// Memory is the in-process implementation used by the daemon. Tests inject
// failing ports to exercise fault paths without corrupting endpoint state.
package transfer
