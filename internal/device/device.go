package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"thermo/internal/logging"
	"thermo/internal/transfer"
)

const (
	// Capacity is the endpoint buffer size: four data bytes plus terminator.
	Capacity = 5

	// Sentinel is the buffer content before the first write.
	Sentinel = "None"
)

// Caller identifies the process invoking an endpoint operation. Used for
// diagnostics only.
type Caller struct {
	PID  int32
	Comm string
	Mode string
}

func (c Caller) String() string {
	if c.Comm == "" {
		return fmt.Sprintf("pid %d", c.PID)
	}
	return fmt.Sprintf("%s (pid %d)", c.Comm, c.PID)
}

// Outcome classifies what a completed write attempt produced.
type Outcome string

const (
	OutcomeConverted   Outcome = "converted"
	OutcomeMalformed   Outcome = "malformed"
	OutcomeUnknownUnit Outcome = "unknown_unit"
)

// Conversion describes one write attempt after the transfer completed.
type Conversion struct {
	Token     string
	Unit      string
	Value     int64
	Converted int64
	Outcome   Outcome
	At        time.Time
}

// Recorder receives completed write attempts. Implementations must not fail
// the calling operation; persistence errors are theirs to absorb.
type Recorder interface {
	Record(ctx context.Context, conv Conversion)
}

// Stats is a point-in-time snapshot of endpoint state.
type Stats struct {
	Reads  uint64
	Writes uint64
	Active bool
	Buffer string
}

// Device is the conversion endpoint. A single instance exists per
// registration; all operations serialize on one mutex.
type Device struct {
	name     string
	identity string
	logger   *slog.Logger
	port     transfer.Port
	recorder Recorder

	mu      sync.Mutex
	buf     [Capacity]byte
	length  int
	reads   uint64
	writes  uint64
	active  bool
	last    Conversion
	hasLast bool
}

// Option customizes device construction.
type Option func(*Device)

// WithRecorder attaches a write-attempt recorder.
func WithRecorder(r Recorder) Option {
	return func(d *Device) { d.recorder = r }
}

// WithIdentity attaches the registry-assigned identity used in diagnostics.
func WithIdentity(id string) Option {
	return func(d *Device) { d.identity = id }
}

// New constructs an endpoint seeded with the sentinel buffer and zeroed
// counters.
func New(name string, port transfer.Port, logger *slog.Logger, opts ...Option) (*Device, error) {
	if port == nil {
		return nil, errors.New("device requires a transfer port")
	}
	d := &Device{
		name:   name,
		logger: logging.NewComponentLogger(logger, "endpoint"),
		port:   port,
	}
	copy(d.buf[:], Sentinel)
	d.length = len(Sentinel)
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Name returns the endpoint's registered name.
func (d *Device) Name() string { return d.name }

// Identity returns the registry-assigned identity, if any.
func (d *Device) Identity() string { return d.identity }

// Open records the caller for diagnostics. No endpoint state changes.
func (d *Device) Open(_ context.Context, caller Caller) error {
	d.logger.Info("endpoint opened",
		logging.String("caller", caller.String()),
		logging.String("mode", caller.Mode))
	return nil
}

// Close records the caller for diagnostics. No endpoint state changes.
func (d *Device) Close(_ context.Context, caller Caller) error {
	d.logger.Info("endpoint closed",
		logging.String("caller", caller.String()))
	return nil
}

// Write stages count bytes of payload through the transfer port, parses the
// token, and performs the unit conversion. The returned byte count reflects
// the completed transfer; a write whose transfer succeeded is counted even
// when the token fails to parse, in which case ErrMalformedNumber
// accompanies the count and the buffer retains the truncated text.
func (d *Device) Write(ctx context.Context, payload []byte, count int) (int, error) {
	if count > Capacity {
		return 0, fmt.Errorf("%w: %d bytes exceeds max %d", ErrInputTooLarge, count, Capacity)
	}
	if count < 0 || count > len(payload) {
		return 0, fmt.Errorf("%w: %d bytes not available from caller", ErrTransferFault, count)
	}

	stage := make([]byte, count)
	if err := d.port.CopyIn(stage, payload[:count]); err != nil {
		d.logger.Warn("copy from caller failed", logging.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrTransferFault, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	digits, unit, splitErr := splitToken(stage)
	if splitErr != nil {
		// Transfer completed, so the attempt still counts and the raw
		// trimmed text is retained.
		d.setBuffer(trimTerminator(stage))
		d.completeWrite(ctx, Conversion{
			Token:   d.bufferString(),
			Outcome: OutcomeMalformed,
			At:      time.Now().UTC(),
		})
		d.logger.Warn("could not parse token", logging.Error(splitErr))
		return count, splitErr
	}

	d.setBuffer([]byte(digits))

	value, parseErr := parseValue(digits)
	if parseErr != nil {
		d.completeWrite(ctx, Conversion{
			Token:   digits,
			Unit:    string(unit),
			Outcome: OutcomeMalformed,
			At:      time.Now().UTC(),
		})
		d.logger.Warn("could not parse entered value into integer", logging.Error(parseErr))
		return count, parseErr
	}

	conv := Conversion{
		Token: digits,
		Unit:  string(unit),
		Value: value,
		At:    time.Now().UTC(),
	}
	switch unit {
	case UnitFahrenheit:
		conv.Converted = fahrenheitToCelsius(value)
		conv.Outcome = OutcomeConverted
		d.logger.Info("temperature converted",
			logging.Int64("fahrenheit", value),
			logging.Int64("celsius", conv.Converted))
	case UnitCelsius:
		conv.Converted = celsiusToFahrenheit(value)
		conv.Outcome = OutcomeConverted
		d.logger.Info("temperature converted",
			logging.Int64("celsius", value),
			logging.Int64("fahrenheit", conv.Converted))
	default:
		conv.Outcome = OutcomeUnknownUnit
		d.logger.Warn("cannot convert temperature",
			logging.String("unit", string(unit)),
			logging.String("hint", "unit must be F or C"))
	}

	d.completeWrite(ctx, conv)
	d.logger.Debug("write complete",
		logging.Int("bytes", count),
		logging.Uint64("reads", d.reads),
		logging.Uint64("writes", d.writes))
	return count, nil
}

// Read delivers up to len(dst) bytes of the retained buffer through the
// transfer port and counts the read on success.
func (d *Device) Read(_ context.Context, dst []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.length <= 0 {
		d.logger.Warn("no temperature available")
		return 0, ErrNoData
	}

	n := d.length
	if len(dst) < n {
		n = len(dst)
	}
	if err := d.port.CopyOut(dst[:n], d.buf[:n]); err != nil {
		d.logger.Warn("copy to caller failed", logging.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrTransferFault, err)
	}

	d.reads++
	d.logger.Debug("read complete",
		logging.Int("bytes", n),
		logging.Uint64("reads", d.reads),
		logging.Uint64("writes", d.writes))
	return n, nil
}

// Stats snapshots the counters and buffer without disturbing them.
func (d *Device) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{
		Reads:  d.reads,
		Writes: d.writes,
		Active: d.active,
		Buffer: d.bufferString(),
	}
}

// completeWrite bumps the write counter, marks the endpoint active, and
// hands the attempt to the recorder. Caller holds d.mu.
func (d *Device) completeWrite(ctx context.Context, conv Conversion) {
	d.writes++
	d.active = true
	d.last = conv
	d.hasLast = true
	if d.recorder != nil {
		d.recorder.Record(ctx, conv)
	}
}

// LastAttempt returns the most recent counted write, if any.
func (d *Device) LastAttempt() (Conversion, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last, d.hasLast
}

// setBuffer stores text clamped to the data region, always terminated.
// Caller holds d.mu.
func (d *Device) setBuffer(text []byte) {
	if len(text) > Capacity-1 {
		text = text[:Capacity-1]
	}
	n := copy(d.buf[:], text)
	d.buf[n] = 0
	d.length = n
}

func (d *Device) bufferString() string {
	return string(d.buf[:d.length])
}

func trimTerminator(b []byte) []byte {
	if n := len(b); n > 0 && (b[n-1] == '\n' || b[n-1] == 0) {
		return b[:n-1]
	}
	return b
}
