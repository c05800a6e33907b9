package shared

// Outcome reports what happened to a best-effort side effect (audit write,
// shopping list regeneration, notification). Side effects never fail the
// primary operation; their outcome is returned so callers and tests can see it.
type Outcome string

const (
	OutcomeApplied Outcome = "APPLIED"
	OutcomeFailed  Outcome = "FAILED"
	OutcomeSkipped Outcome = "SKIPPED"
)

// SideEffect is the observed result of one best-effort step.
type SideEffect struct {
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	Err     error   `json:"-"`
}

// Failed returns the side effects that did not apply.
func Failed(effects []SideEffect) []SideEffect {
	var failed []SideEffect
	for _, e := range effects {
		if e.Outcome == OutcomeFailed {
			failed = append(failed, e)
		}
	}
	return failed
}
