package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"thermo/internal/device"
)

// Record is one persisted write attempt.
type Record struct {
	ID          int64
	Token       string
	Unit        string
	InputValue  *int64
	OutputValue *int64
	Outcome     device.Outcome
	CreatedAt   time.Time
}

// Totals aggregates journal contents by outcome.
type Totals struct {
	Attempts    int64
	Converted   int64
	Malformed   int64
	UnknownUnit int64
}

// Snapshot is a persisted view of the endpoint counters.
type Snapshot struct {
	Reads   uint64
	Writes  uint64
	TakenAt time.Time
}

// RecordConversion inserts one write attempt.
func (s *Store) RecordConversion(ctx context.Context, conv device.Conversion) (int64, error) {
	at := conv.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	var input, output any
	if conv.Outcome != device.OutcomeMalformed {
		input = conv.Value
	}
	if conv.Outcome == device.OutcomeConverted {
		output = conv.Converted
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO conversions (token, unit, input_value, output_value, outcome, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		conv.Token,
		conv.Unit,
		input,
		output,
		string(conv.Outcome),
		at.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert conversion: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Recent returns the newest records, newest first, capped at limit.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT id, token, unit, input_value, output_value, outcome, created_at
         FROM conversions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent conversions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}
	return records, nil
}

// TotalsByOutcome aggregates all persisted attempts.
func (s *Store) TotalsByOutcome(ctx context.Context) (Totals, error) {
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT outcome, COUNT(1) FROM conversions GROUP BY outcome`,
	)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	var totals Totals
	for rows.Next() {
		var outcome string
		var count int64
		if err := rows.Scan(&outcome, &count); err != nil {
			return Totals{}, fmt.Errorf("scan totals: %w", err)
		}
		totals.Attempts += count
		switch device.Outcome(outcome) {
		case device.OutcomeConverted:
			totals.Converted = count
		case device.OutcomeMalformed:
			totals.Malformed = count
		case device.OutcomeUnknownUnit:
			totals.UnknownUnit = count
		}
	}
	if err := rows.Err(); err != nil {
		return Totals{}, fmt.Errorf("iterate totals: %w", err)
	}
	return totals, nil
}

// SnapshotCounters persists the endpoint's counters.
func (s *Store) SnapshotCounters(ctx context.Context, reads, writes uint64) error {
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO counter_snapshots (reads, writes, taken_at) VALUES (?, ?, ?)`,
		int64(reads),
		int64(writes),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert counter snapshot: %w", err)
	}
	return nil
}

// LastSnapshot returns the most recent counter snapshot, or nil when none
// has been taken.
func (s *Store) LastSnapshot(ctx context.Context) (*Snapshot, error) {
	row := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT reads, writes, taken_at FROM counter_snapshots ORDER BY id DESC LIMIT 1`,
	)
	var reads, writes int64
	var takenAt string
	if err := row.Scan(&reads, &writes, &takenAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan counter snapshot: %w", err)
	}
	at, err := time.Parse(time.RFC3339Nano, takenAt)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot time: %w", err)
	}
	return &Snapshot{Reads: uint64(reads), Writes: uint64(writes), TakenAt: at}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var input, output sql.NullInt64
	var outcome, createdAt string
	if err := row.Scan(&rec.ID, &rec.Token, &rec.Unit, &input, &output, &outcome, &createdAt); err != nil {
		return Record{}, fmt.Errorf("scan conversion: %w", err)
	}
	if input.Valid {
		v := input.Int64
		rec.InputValue = &v
	}
	if output.Valid {
		v := output.Int64
		rec.OutputValue = &v
	}
	rec.Outcome = device.Outcome(outcome)
	at, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse conversion time: %w", err)
	}
	rec.CreatedAt = at
	return rec, nil
}
