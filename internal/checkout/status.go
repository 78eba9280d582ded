package checkout

type Status string

const (
	StatusUnauthenticated Status = "UNAUTHENTICATED"
	StatusShipping        Status = "SHIPPING"
	StatusPayment         Status = "PAYMENT"
	StatusReview          Status = "REVIEW"
	StatusPlacing         Status = "PLACING"
	StatusConfirmed       Status = "CONFIRMED"
)

// transitions is the full set of legal moves. Backward moves exist for
// PAYMENT and REVIEW; PLACING can fall back to REVIEW on a failed
// submission. CONFIRMED is terminal.
var transitions = map[Status][]Status{
	StatusUnauthenticated: {StatusShipping},
	StatusShipping:        {StatusPayment},
	StatusPayment:         {StatusReview, StatusShipping},
	StatusReview:          {StatusPlacing, StatusPayment},
	StatusPlacing:         {StatusConfirmed, StatusReview},
	StatusConfirmed:       {},
}

func CanTransitionTo(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusConfirmed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
