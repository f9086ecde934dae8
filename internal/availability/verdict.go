package availability

// Verdict is the outcome of an availability check.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictTooShort
	VerdictTaken
	VerdictAvailable
)

func (v Verdict) String() string {
	switch v {
	case VerdictTooShort:
		return "too_short"
	case VerdictTaken:
		return "taken"
	case VerdictAvailable:
		return "available"
	default:
		return "unknown"
	}
}

// State is the checker lifecycle position.
type State int

const (
	StateIdle State = iota
	StateTyping
	StateChecking
	StateResolved
	StateInvalid
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateTyping:
		return "typing"
	case StateChecking:
		return "checking"
	case StateResolved:
		return "resolved"
	case StateInvalid:
		return "invalid"
	case StateClosed:
		return "closed"
	default:
		return "idle"
	}
}

// pending reports whether a verdict is still expected for the current
// candidate.
func (s State) pending() bool {
	return s == StateTyping || s == StateChecking
}

// Snapshot is a consistent view of the checker taken under its lock.
type Snapshot struct {
	Candidate string
	State     State
	Verdict   Verdict
}

// CanSubmit reports whether a form holding this snapshot may be submitted.
func (s Snapshot) CanSubmit() bool {
	return s.Verdict == VerdictAvailable
}
