// Package check classifies resolved rolls into outcome tiers and wraps them
// as skill-check results.
package check

// Outcome is the six-tier result of a check. Tiers are ordered from worst to
// best so that comparisons against MarginalSuccess are meaningful.
// The zero value (OutcomeUnknown) is intentionally invalid.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	CriticalFailure
	Failure
	MarginalSuccess
	FullSuccess
	ExceptionalSuccess
	CriticalSuccess
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case CriticalFailure:
		return "critical failure"
	case Failure:
		return "failure"
	case MarginalSuccess:
		return "marginal success"
	case FullSuccess:
		return "full success"
	case ExceptionalSuccess:
		return "exceptional success"
	case CriticalSuccess:
		return "critical success"
	default:
		return "unknown"
	}
}

// IsSuccess reports whether o is MarginalSuccess or better.
func (o Outcome) IsSuccess() bool {
	return o >= MarginalSuccess && o <= CriticalSuccess
}

// IsFailure reports whether o is Failure or CriticalFailure.
func (o Outcome) IsFailure() bool {
	return o == Failure || o == CriticalFailure
}

// Descriptor returns the narrative bucket for o.
//
// Postcondition: Returns DescriptorUnknown only for OutcomeUnknown or
// out-of-range values.
func (o Outcome) Descriptor() Descriptor {
	switch o {
	case CriticalFailure:
		return Catastrophic
	case Failure:
		return Failed
	case MarginalSuccess:
		return Marginal
	case FullSuccess:
		return Competent
	case ExceptionalSuccess:
		return Impressive
	case CriticalSuccess:
		return Masterful
	default:
		return DescriptorUnknown
	}
}

// Descriptor groups outcomes into narrative buckets used to pick flavor text.
// It carries no game logic.
type Descriptor int

const (
	DescriptorUnknown Descriptor = iota
	Catastrophic
	Failed
	Marginal
	Competent
	Impressive
	Masterful
)

// String returns the descriptor name.
func (d Descriptor) String() string {
	switch d {
	case Catastrophic:
		return "catastrophic"
	case Failed:
		return "failed"
	case Marginal:
		return "marginal"
	case Competent:
		return "competent"
	case Impressive:
		return "impressive"
	case Masterful:
		return "masterful"
	default:
		return "unknown"
	}
}

// Details bundles everything a secondary-effect collaborator (stress,
// corruption, flavor text) keys off.
type Details struct {
	Outcome    Outcome
	Descriptor Descriptor
	Margin     int
	// ForcedByNatural is true when a natural max or natural 1 decided the
	// outcome regardless of margin.
	ForcedByNatural bool
}
