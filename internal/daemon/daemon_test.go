package daemon_test

import (
	"context"
	"sync"
	"testing"

	"thermo/internal/daemon"
	"thermo/internal/device"
	"thermo/internal/logging"
	"thermo/internal/testsupport"
)

func newDaemon(t *testing.T) *daemon.Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	d, err := daemon.New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Stop()
	})
	return d
}

func TestStartRegistersEndpoint(t *testing.T) {
	d := newDaemon(t)
	ctx := context.Background()

	if _, err := d.Device(); err == nil {
		t.Fatal("device must be unavailable before start")
	}

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	dev, err := d.Device()
	if err != nil {
		t.Fatalf("Device failed: %v", err)
	}
	if dev.Identity() == "" {
		t.Fatal("expected registry-assigned identity")
	}

	status := d.Status(ctx)
	if !status.Running || status.Identity == "" {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.Endpoint.Buffer != device.Sentinel {
		t.Fatalf("fresh endpoint should hold sentinel: %+v", status.Endpoint)
	}
}

func TestStartTwiceFails(t *testing.T) {
	d := newDaemon(t)
	ctx := context.Background()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second Start to fail")
	}
}

func TestStopDiscardsEndpointState(t *testing.T) {
	d := newDaemon(t)
	ctx := context.Background()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	dev, err := d.Device()
	if err != nil {
		t.Fatalf("Device failed: %v", err)
	}
	if _, err := dev.Write(ctx, []byte("100F"), 4); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	d.Stop()
	if _, err := d.Device(); err == nil {
		t.Fatal("device must be unavailable after stop")
	}

	// Restart gets a fresh instance with zeroed counters.
	if err := d.Start(ctx); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	dev, err = d.Device()
	if err != nil {
		t.Fatalf("Device after restart failed: %v", err)
	}
	stats := dev.Stats()
	if stats.Writes != 0 || stats.Buffer != device.Sentinel {
		t.Fatalf("restarted endpoint must reset: %+v", stats)
	}
}

func TestJournalRecordsSurviveRestart(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	d, err := daemon.New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	ctx := context.Background()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	dev, err := d.Device()
	if err != nil {
		t.Fatalf("Device failed: %v", err)
	}
	if _, err := dev.Write(ctx, []byte("0C"), 2); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := dev.Read(ctx, make([]byte, device.Capacity)); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	d.Stop()

	records, err := d.History(ctx, 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(records) != 1 || records[0].Outcome != device.OutcomeConverted {
		t.Fatalf("unexpected history: %+v", records)
	}
	if records[0].OutputValue == nil || *records[0].OutputValue != 32 {
		t.Fatalf("expected converted value 32: %+v", records[0])
	}

	snap, err := store.LastSnapshot(ctx)
	if err != nil {
		t.Fatalf("LastSnapshot failed: %v", err)
	}
	if snap == nil || snap.Reads != 1 || snap.Writes != 1 {
		t.Fatalf("expected counters snapshot on stop: %+v", snap)
	}
}

func TestHistoryWithJournalDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournalDisabled())
	d, err := daemon.New(cfg, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { d.Stop() })

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := d.History(context.Background(), 5); err == nil {
		t.Fatal("expected error when journal disabled")
	}
}

func TestStopConcurrentWithStatus(t *testing.T) {
	d := newDaemon(t)
	ctx := context.Background()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		d.Stop()
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = d.Status(ctx)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			if dev, err := d.Device(); err == nil && dev == nil {
				t.Error("Device returned a nil endpoint without error")
			}
		}
	}()
	wg.Wait()

	if status := d.Status(ctx); status.Running {
		t.Fatalf("daemon should be stopped: %+v", status)
	}
}
