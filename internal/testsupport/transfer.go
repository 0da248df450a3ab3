package testsupport

import "thermo/internal/transfer"

// FaultyPort fails configured directions of the boundary transfer so tests
// can exercise fault paths.
type FaultyPort struct {
	FailIn  bool
	FailOut bool
}

func (p FaultyPort) CopyIn(dst, src []byte) error {
	if p.FailIn {
		return transfer.ErrFault
	}
	return transfer.Memory{}.CopyIn(dst, src)
}

func (p FaultyPort) CopyOut(dst, src []byte) error {
	if p.FailOut {
		return transfer.ErrFault
	}
	return transfer.Memory{}.CopyOut(dst, src)
}
