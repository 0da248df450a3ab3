package transfer_test

import (
	"bytes"
	"errors"
	"testing"

	"thermo/internal/transfer"
)

func TestMemoryCopyIn(t *testing.T) {
	var port transfer.Memory
	dst := make([]byte, 4)
	if err := port.CopyIn(dst, []byte("100F")); err != nil {
		t.Fatalf("CopyIn failed: %v", err)
	}
	if !bytes.Equal(dst, []byte("100F")) {
		t.Fatalf("unexpected staged bytes: %q", dst)
	}
}

func TestMemoryCopyInShortDestinationFaults(t *testing.T) {
	var port transfer.Memory
	dst := make([]byte, 2)
	err := port.CopyIn(dst, []byte("100F"))
	if !errors.Is(err, transfer.ErrFault) {
		t.Fatalf("expected ErrFault, got %v", err)
	}
}

func TestMemoryCopyOut(t *testing.T) {
	var port transfer.Memory
	dst := make([]byte, 8)
	if err := port.CopyOut(dst[:4], []byte("None")); err != nil {
		t.Fatalf("CopyOut failed: %v", err)
	}
	if string(dst[:4]) != "None" {
		t.Fatalf("unexpected delivered bytes: %q", dst[:4])
	}
}
