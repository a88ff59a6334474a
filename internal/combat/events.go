package combat

// EventKind enumerates every simulation event variant. The set is
// closed: the round executes events with an exhaustive switch, so a new
// kind that is not handled fails loudly instead of being dropped.
type EventKind int

const (
	EventCombatSessionStarted EventKind = iota
	EventShotFired
	EventDamageApplied
	EventMovementStarted
	EventMovementInterval
	EventMovementEnded
	EventMovementCancelled
	EventCoverEntered
	EventCoverExited
	EventReloadComplete
	EventSuppressionStarted
	EventSuppressionUpdated
	EventMicroReaction
)

func (k EventKind) String() string {
	switch k {
	case EventCombatSessionStarted:
		return "session_started"
	case EventShotFired:
		return "shot_fired"
	case EventDamageApplied:
		return "damage_applied"
	case EventMovementStarted:
		return "movement_started"
	case EventMovementInterval:
		return "movement_interval"
	case EventMovementEnded:
		return "movement_ended"
	case EventMovementCancelled:
		return "movement_cancelled"
	case EventCoverEntered:
		return "cover_entered"
	case EventCoverExited:
		return "cover_exited"
	case EventReloadComplete:
		return "reload_complete"
	case EventSuppressionStarted:
		return "suppression_started"
	case EventSuppressionUpdated:
		return "suppression_updated"
	case EventMicroReaction:
		return "micro_reaction"
	default:
		return "unknown"
	}
}

// SimulationEvent is one pending occurrence on the combat timeline.
// Every event carries a time, the ID of the operator it belongs to, and
// an insertion sequence number used as the final deterministic
// tie-break. Payload fields are only meaningful for their kind.
type SimulationEvent struct {
	Kind       EventKind
	TimeMs     int64
	OperatorID int
	Seq        uint64

	// EndsCommitment marks the event whose execution closes the current
	// commitment unit and opens a reaction window. Set on the last
	// element of a causal chain (e.g. the DamageApplied spawned by the
	// final shot of a burst) so the window never opens with unresolved
	// consequences still queued.
	EndsCommitment bool

	// ShotFired
	ShotIndex    int  // 0-based index within the committed burst
	ShotsInBurst int  // total rounds in the committed burst
	Suppressive  bool // aimed at a concealed target, damage not expected

	// DamageApplied
	Damage float64
	Part   BodyPart

	// Movement*
	Movement       MovementState
	DurationMs     int64   // MovementStarted: planned leg; MovementCancelled: remaining
	DistanceDeltaM float64 // signed distance change carried by this leg

	// CoverEntered / CoverExited
	Cover CoverState

	// SuppressionStarted / SuppressionUpdated
	Severity float64

	// MicroReaction
	Adjust MicroAdjust
}

// MicroAdjust identifies the small posture/aim settle a MicroReaction
// event applies when it fires.
type MicroAdjust int

const (
	AdjustNone MicroAdjust = iota
	AdjustCrouch
	AdjustStand
	AdjustSteadyAim
)
