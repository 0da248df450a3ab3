package device

import "errors"

// Endpoint errors. All are recoverable conditions surfaced to the caller;
// none indicate endpoint corruption.
var (
	// ErrInputTooLarge rejects writes longer than the buffer capacity.
	ErrInputTooLarge = errors.New("input exceeds buffer capacity")

	// ErrTransferFault indicates the boundary copy failed. State is
	// untouched and no counter moved.
	ErrTransferFault = errors.New("boundary transfer failed")

	// ErrMalformedNumber indicates the numeric prefix did not parse. The
	// transfer itself completed, so the write is still counted.
	ErrMalformedNumber = errors.New("token is not a number")

	// ErrNoData rejects reads while the buffer holds nothing.
	ErrNoData = errors.New("no temperature available")

	// ErrResourceExhausted indicates a transient allocation failure on a
	// registration or diagnostic path.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// Kind classifies an endpoint error for wire transport and CLI exit
// handling.
type Kind string

const (
	KindInputTooLarge     Kind = "input_too_large"
	KindTransferFault     Kind = "transfer_fault"
	KindMalformedNumber   Kind = "malformed_number"
	KindNoData            Kind = "no_data"
	KindResourceExhausted Kind = "resource_exhausted"
	KindUnknown           Kind = "unknown"
)

// KindOf maps an error to its taxonomy kind.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInputTooLarge):
		return KindInputTooLarge
	case errors.Is(err, ErrTransferFault):
		return KindTransferFault
	case errors.Is(err, ErrMalformedNumber):
		return KindMalformedNumber
	case errors.Is(err, ErrNoData):
		return KindNoData
	case errors.Is(err, ErrResourceExhausted):
		return KindResourceExhausted
	default:
		return KindUnknown
	}
}
