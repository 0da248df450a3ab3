package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"thermo/internal/config"
	"thermo/internal/device"
	"thermo/internal/journal"
	"thermo/internal/logging"
	"thermo/internal/registry"
	"thermo/internal/transfer"
)

// Daemon coordinates the endpoint lifecycle and enforces single-instance
// execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *journal.Store
	reg    *registry.Registry

	lockPath string
	lock     *flock.Flock
	logPath  string

	mu      sync.Mutex
	running bool
	handle  *registry.Handle
	dev     *device.Device
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	EndpointName string
	Identity     string
	Endpoint     device.Stats
	SocketPath   string
	LockFilePath string
	JournalPath  string
	PID          int
}

// New constructs a daemon with initialized dependencies. The journal store
// may be nil when history persistence is disabled.
func New(cfg *config.Config, store *journal.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "thermod.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		reg:      registry.New(logger),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
		logPath:  filepath.Join(cfg.Paths.LogDir, "thermod.log"),
	}, nil
}

// Start acquires the daemon lock, registers the endpoint, and brings the
// device online.
func (d *Daemon) Start(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return errors.New("daemon already running")
	}

	if err := d.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("prepare directories: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another thermod instance is already running")
	}

	handle, err := d.reg.Register(d.cfg.Endpoint.Name, d.cfg.SocketPath())
	if err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("register endpoint: %w", err)
	}

	opts := []device.Option{device.WithIdentity(handle.Identity)}
	if d.store != nil {
		opts = append(opts, device.WithRecorder(&journalRecorder{store: d.store, logger: d.logger}))
	}
	dev, err := device.New(handle.Name, transfer.Memory{}, d.logger, opts...)
	if err != nil {
		_ = d.reg.Deregister(handle)
		_ = d.lock.Unlock()
		return fmt.Errorf("create endpoint: %w", err)
	}

	d.handle = handle
	d.dev = dev
	d.running = true
	d.logger.Info("thermod started",
		logging.String(logging.FieldEndpoint, handle.Name),
		logging.String(logging.FieldIdentity, handle.Identity),
		logging.String("lock", d.lockPath))
	return nil
}

// Stop snapshots counters, deregisters the endpoint, and releases the lock.
// The endpoint instance is discarded with the registration.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return
	}

	if d.store != nil && d.dev != nil {
		stats := d.dev.Stats()
		if err := d.store.SnapshotCounters(context.Background(), stats.Reads, stats.Writes); err != nil {
			d.logger.Warn("counter snapshot failed", logging.Error(err))
		}
	}
	if d.handle != nil {
		if err := d.reg.Deregister(d.handle); err != nil {
			d.logger.Warn("endpoint deregistration failed", logging.Error(err))
		}
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}

	d.handle = nil
	d.dev = nil
	d.running = false
	d.logger.Info("thermod stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Device returns the live endpoint. It is only available while the daemon
// is running.
func (d *Daemon) Device() (*device.Device, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running || d.dev == nil {
		return nil, errors.New("endpoint not registered")
	}
	return d.dev, nil
}

// History returns the newest journal records.
func (d *Daemon) History(ctx context.Context, limit int) ([]journal.Record, error) {
	if d.store == nil {
		return nil, errors.New("journal disabled")
	}
	if limit <= 0 {
		limit = d.cfg.Journal.HistoryLimit
	}
	return d.store.Recent(ctx, limit)
}

// Totals aggregates all journaled write attempts.
func (d *Daemon) Totals(ctx context.Context) (journal.Totals, error) {
	if d.store == nil {
		return journal.Totals{}, errors.New("journal disabled")
	}
	return d.store.TotalsByOutcome(ctx)
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status.
func (d *Daemon) Status(_ context.Context) Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	status := Status{
		Running:      d.running,
		EndpointName: d.cfg.Endpoint.Name,
		SocketPath:   d.cfg.SocketPath(),
		LockFilePath: d.lockPath,
		PID:          os.Getpid(),
	}
	if d.store != nil {
		status.JournalPath = d.store.Path()
	}
	if d.handle != nil {
		status.Identity = d.handle.Identity
	}
	if d.dev != nil {
		status.Endpoint = d.dev.Stats()
	}
	return status
}

// journalRecorder adapts the journal store to the device.Recorder contract.
// Persistence failures are logged, never surfaced to the write path.
type journalRecorder struct {
	store  *journal.Store
	logger *slog.Logger
}

func (r *journalRecorder) Record(ctx context.Context, conv device.Conversion) {
	if _, err := r.store.RecordConversion(ctx, conv); err != nil {
		r.logger.Warn("journal record failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "journal_record_failed"),
			logging.String(logging.FieldErrorHint, "check journal database permissions"))
	}
}
