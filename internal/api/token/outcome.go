package token

// Outcome classifies the admin cookie of a request.
type Outcome int

const (
	OutcomeAbsent Outcome = iota
	OutcomeValid
	OutcomeMalformed
	OutcomeExpired
	OutcomeMismatched
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAbsent:
		return "absent"
	case OutcomeValid:
		return "valid"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeExpired:
		return "expired"
	case OutcomeMismatched:
		return "mismatched"
	default:
		return "unknown"
	}
}

// Authenticated reports whether o grants admin access.
func (o Outcome) Authenticated() bool {
	return o == OutcomeValid
}
