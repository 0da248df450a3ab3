// Package registry tracks endpoint registrations and hands out the opaque
// identities the endpoint uses in diagnostics. It is the analog of the host
// environment that creates a device node: Register claims the endpoint's
// name and socket location, Deregister releases them.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"thermo/internal/device"
	"thermo/internal/logging"
)

// Handle is the identity assigned to a registered endpoint.
type Handle struct {
	Name       string
	Identity   string
	SocketPath string
}

// Registry owns the name space of registered endpoints.
type Registry struct {
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*Handle
}

// New constructs an empty registry.
func New(logger *slog.Logger) *Registry {
	return &Registry{
		logger:  logging.NewComponentLogger(logger, "registry"),
		entries: make(map[string]*Handle),
	}
}

// Register claims name and assigns an identity. The socket path is recorded
// so status output can report where the endpoint is reachable; the registry
// does not open the socket itself.
func (r *Registry) Register(name, socketPath string) (*Handle, error) {
	if name == "" {
		return nil, errors.New("endpoint name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return nil, fmt.Errorf("%w: endpoint %q already registered", device.ErrResourceExhausted, name)
	}

	handle := &Handle{
		Name:       name,
		Identity:   uuid.NewString(),
		SocketPath: socketPath,
	}
	r.entries[name] = handle

	r.logger.Info("endpoint registered",
		logging.String(logging.FieldEndpoint, name),
		logging.String(logging.FieldIdentity, handle.Identity),
		logging.String("socket", socketPath))
	return handle, nil
}

// Deregister releases a previously assigned handle.
func (r *Registry) Deregister(handle *Handle) error {
	if handle == nil {
		return errors.New("handle is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.entries[handle.Name]
	if !exists || current.Identity != handle.Identity {
		return fmt.Errorf("endpoint %q is not registered under identity %s", handle.Name, handle.Identity)
	}
	delete(r.entries, handle.Name)

	r.logger.Info("endpoint deregistered",
		logging.String(logging.FieldEndpoint, handle.Name),
		logging.String(logging.FieldIdentity, handle.Identity))
	return nil
}

// Lookup returns the handle registered under name, if any.
func (r *Registry) Lookup(name string) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	handle, ok := r.entries[name]
	return handle, ok
}
