package saga

// This package holds the coordination-level saga state machine shared by all
// saga participants. There is no central orchestrator: each service reacts to
// events and publishes new events, and compensation is driven by the service
// that committed the step being undone.

// Status represents the coordination status of one saga instance. It is
// attached to every outbox message; the most recent message per saga id
// determines the effective saga state.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusProcessing   Status = "PROCESSING"
	StatusSucceeded    Status = "SUCCEEDED"
	StatusCompensating Status = "COMPENSATING"
	StatusCompensated  Status = "COMPENSATED"
	StatusFailed       Status = "FAILED"
)

// Type tags a saga instance with the business flow it belongs to.
type Type string

const (
	TypeBooking Type = "booking"
)

// transitions is the single source of truth for legal saga status moves.
// A step rejected by its downstream participant compensates inside the same
// local transaction, so PROCESSING may close straight to COMPENSATED without
// an externally visible COMPENSATING interval.
var transitions = map[Status][]Status{
	StatusStarted:      {StatusProcessing, StatusSucceeded, StatusCompensating, StatusFailed},
	StatusProcessing:   {StatusSucceeded, StatusCompensating, StatusCompensated, StatusFailed},
	StatusCompensating: {StatusCompensated, StatusFailed},
}

// CanTransition reports whether a saga may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a saga status permits no further transitions.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsActive reports whether a saga instance is still awaiting coordination
// (forward progress or compensation).
func (s Status) IsActive() bool {
	return !s.IsTerminal()
}

func (s Status) String() string {
	return string(s)
}
