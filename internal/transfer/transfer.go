package transfer

import "errors"

// ErrFault indicates a boundary copy failed. No bytes are considered
// transferred when it is returned.
var ErrFault = errors.New("boundary transfer fault")

// Port moves bytes across the trust boundary between a caller and the
// endpoint. Implementations must be atomic: either the full requested range
// is copied or an error is returned and the destination is unspecified.
type Port interface {
	// CopyIn stages caller bytes into endpoint-owned memory.
	CopyIn(dst, src []byte) error
	// CopyOut delivers endpoint bytes back to the caller.
	CopyOut(dst, src []byte) error
}

// Memory is a Port for callers in the same address space.
type Memory struct{}

// CopyIn copies src into dst and faults when dst cannot hold src.
func (Memory) CopyIn(dst, src []byte) error {
	if len(dst) < len(src) {
		return ErrFault
	}
	copy(dst, src)
	return nil
}

// CopyOut copies src into dst and faults when dst cannot hold src.
func (Memory) CopyOut(dst, src []byte) error {
	if len(dst) < len(src) {
		return ErrFault
	}
	copy(dst, src)
	return nil
}
