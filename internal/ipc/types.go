package ipc

import "time"

// StartRequest brings the endpoint online.
type StartRequest struct{}

// StartResponse indicates whether the endpoint was registered.
type StartResponse struct {
	Started  bool   `json:"started"`
	Endpoint string `json:"endpoint"`
	Identity string `json:"identity"`
	Message  string `json:"message"`
}

// StopRequest takes the endpoint offline.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// OpenRequest opens the endpoint on behalf of the calling process.
type OpenRequest struct {
	Mode string `json:"mode"`
}

// OpenResponse identifies the opened endpoint.
type OpenResponse struct {
	Endpoint string `json:"endpoint"`
	Identity string `json:"identity"`
}

// CloseRequest releases the endpoint on behalf of the calling process.
type CloseRequest struct{}

// CloseResponse acknowledges the release.
type CloseResponse struct {
	Closed bool `json:"closed"`
}

// WriteRequest stages a payload into the endpoint buffer. Count is the
// number of bytes the caller claims to transfer; it may be shorter than
// the payload.
type WriteRequest struct {
	Payload string `json:"payload"`
	Count   int    `json:"count"`
}

// WriteResponse reports a completed transfer. Accepted is the byte count
// the endpoint acknowledged. Malformed tokens still transfer, so Outcome
// distinguishes conversions from counted failures; Converted is set only
// when a conversion happened.
type WriteResponse struct {
	Accepted  int    `json:"accepted"`
	Outcome   string `json:"outcome"`
	Converted *int64 `json:"converted,omitempty"`
	Buffer    string `json:"buffer"`
	ErrorKind string `json:"error_kind,omitempty"`
}

// ReadRequest drains up to Max bytes from the endpoint buffer.
type ReadRequest struct {
	Max int `json:"max"`
}

// ReadResponse carries the bytes the endpoint produced.
type ReadResponse struct {
	Data  string `json:"data"`
	Bytes int    `json:"bytes"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents combined daemon and endpoint status.
type StatusResponse struct {
	Running      bool   `json:"running"`
	EndpointName string `json:"endpoint_name"`
	Identity     string `json:"identity"`
	Reads        uint64 `json:"reads"`
	Writes       uint64 `json:"writes"`
	Active       bool   `json:"active"`
	Buffer       string `json:"buffer"`
	SocketPath   string `json:"socket_path"`
	LockPath     string `json:"lock_path"`
	JournalPath  string `json:"journal_path"`
	PID          int    `json:"pid"`
}

// ConversionRecord is one journaled write attempt.
type ConversionRecord struct {
	ID          int64     `json:"id"`
	Token       string    `json:"token"`
	Unit        string    `json:"unit"`
	InputValue  *int64    `json:"input_value,omitempty"`
	OutputValue *int64    `json:"output_value,omitempty"`
	Outcome     string    `json:"outcome"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryRequest fetches recent journal records. Limit <= 0 uses the
// configured default.
type HistoryRequest struct {
	Limit int `json:"limit"`
}

// HistoryResponse contains journal records, newest first.
type HistoryResponse struct {
	Records []ConversionRecord `json:"records"`
}

// LogTailRequest fetches log lines based on offset and follow semantics.
type LogTailRequest struct {
	Offset     int64 `json:"offset"`
	Limit      int   `json:"limit"`
	Follow     bool  `json:"follow"`
	WaitMillis int   `json:"wait_millis"`
}

// LogTailResponse returns log lines and the next offset.
type LogTailResponse struct {
	Lines  []string `json:"lines"`
	Offset int64    `json:"offset"`
}

// TotalsRequest fetches aggregate journal counts.
type TotalsRequest struct{}

// TotalsResponse reports journal totals by outcome.
type TotalsResponse struct {
	Attempts    int64 `json:"attempts"`
	Converted   int64 `json:"converted"`
	Malformed   int64 `json:"malformed"`
	UnknownUnit int64 `json:"unknown_unit"`
}
