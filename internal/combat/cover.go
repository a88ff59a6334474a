package combat

// CoverState is how much of the operator is behind hard cover.
type CoverState int

const (
	// CoverNone leaves the operator fully exposed.
	CoverNone CoverState = iota

	// CoverPartial is "peeking": the lower body is protected, the upper
	// torso, neck and head are exposed. Firing and advancing stay legal.
	CoverPartial

	// CoverFull conceals the operator completely. Blocks all damage and
	// forbids firing and advancing, but incoming fire still builds
	// suppression; rounds cracking past the cover are felt.
	CoverFull
)

func (c CoverState) String() string {
	switch c {
	case CoverNone:
		return "no cover"
	case CoverPartial:
		return "partial cover"
	case CoverFull:
		return "full cover"
	default:
		return "unknown"
	}
}

// Cover transition delays in milliseconds, per adjacent leg. The values
// are asymmetric on purpose: dropping out of a peek is quicker than
// settling into one, and climbing out of full concealment is the
// slowest move of all: you re-expose carefully or not at all.
const (
	coverNoneToPartialMs = 150
	coverPartialToNoneMs = 100
	coverPartialToFullMs = 200
	coverFullToPartialMs = 220
)

// CoverTransitionDelayMs returns the total delay to move between two
// cover states. Non-adjacent transitions sum their intermediate legs
// (None→Full = None→Partial + Partial→Full).
func CoverTransitionDelayMs(from, to CoverState) int64 {
	if from == to {
		return 0
	}
	var total int64
	for from != to {
		if from < to {
			total += coverLegMs(from, from+1)
			from++
		} else {
			total += coverLegMs(from, from-1)
			from--
		}
	}
	return total
}

func coverLegMs(from, to CoverState) int64 {
	switch {
	case from == CoverNone && to == CoverPartial:
		return coverNoneToPartialMs
	case from == CoverPartial && to == CoverNone:
		return coverPartialToNoneMs
	case from == CoverPartial && to == CoverFull:
		return coverPartialToFullMs
	case from == CoverFull && to == CoverPartial:
		return coverFullToPartialMs
	default:
		return 0
	}
}

// CanEnterCoverFrom reports whether a cover transition may start from
// the given movement state. An operator mid-stride cannot settle behind
// cover; they have to stop (or already be crouched) first.
func CanEnterCoverFrom(m MovementState) bool {
	switch m {
	case MovementStationary, MovementIdle, MovementCrouching:
		return true
	default:
		return false
	}
}

// coverSuppressionMul scales suppression buildup by the target's cover.
// Full cover dampens but never eliminates it.
func coverSuppressionMul(c CoverState) float64 {
	switch c {
	case CoverPartial:
		return 0.85
	case CoverFull:
		return fullCoverSuppressionMul
	default:
		return 1.0
	}
}
