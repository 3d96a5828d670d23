package entity

// SessionState is the state of an analysis session.
type SessionState string

const (
	StateIdle         SessionState = "idle"
	StateValidating   SessionState = "validating"
	StateInputError   SessionState = "input_error"
	StateLoading      SessionState = "loading"
	StateReady        SessionState = "ready"
	StateRequestError SessionState = "request_error"
)

// User-facing session messages.
const (
	MessageInvalidAddress = "Please enter a valid Ethereum address"
	MessageRequestFailed  = "Failed to analyze wallet. Please try again."
)

// SessionSnapshot is a read-only copy of the session state. Report and
// Metrics are set only in StateReady. Address is the last submitted text and
// Checksum, Report and Metrics belong to it; Input is the current, possibly
// edited, text of the address field.
type SessionSnapshot struct {
	State      SessionState    `json:"state"`
	Input      string          `json:"input"`
	Address    string          `json:"address"`
	Checksum   string          `json:"checksum_address,omitempty"`
	Demo       bool            `json:"demo"`
	Error      string          `json:"error,omitempty"`
	Report     *RiskReport     `json:"report,omitempty"`
	Metrics    *DerivedMetrics `json:"metrics,omitempty"`
	Generation uint64          `json:"generation"`
}
