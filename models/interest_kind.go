package models

import "fmt"

// InterestKind identifies which interest batch a run processes
type InterestKind string

const (
	InterestKindFD      InterestKind = "fd"
	InterestKindSavings InterestKind = "savings"
)

// Label returns the human-readable name used in ledger memos and logs
func (k InterestKind) Label() string {
	switch k {
	case InterestKindFD:
		return "FD"
	case InterestKindSavings:
		return "Savings"
	default:
		return string(k)
	}
}

// Validate returns an error for kinds outside the two supported batches
func (k InterestKind) Validate() error {
	switch k {
	case InterestKindFD, InterestKindSavings:
		return nil
	default:
		return fmt.Errorf("unknown interest kind: %q", string(k))
	}
}
