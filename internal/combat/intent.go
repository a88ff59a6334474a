package combat

// WeaponAction is the primary-weapon channel of an intent.
type WeaponAction int

const (
	WeaponActionNone WeaponAction = iota
	WeaponActionFire
	WeaponActionSuppressiveFire
	WeaponActionReload
	WeaponActionAim
)

func (a WeaponAction) String() string {
	switch a {
	case WeaponActionNone:
		return "none"
	case WeaponActionFire:
		return "fire"
	case WeaponActionSuppressiveFire:
		return "suppressive fire"
	case WeaponActionReload:
		return "reload"
	case WeaponActionAim:
		return "aim"
	default:
		return "unknown"
	}
}

// MovementAction is the movement channel of an intent.
type MovementAction int

const (
	MovementActionNone MovementAction = iota
	MovementActionWalkToward
	MovementActionSprintToward
	MovementActionWalkAway
	MovementActionSprintAway
)

func (a MovementAction) String() string {
	switch a {
	case MovementActionNone:
		return "none"
	case MovementActionWalkToward:
		return "walk toward"
	case MovementActionSprintToward:
		return "sprint toward"
	case MovementActionWalkAway:
		return "walk away"
	case MovementActionSprintAway:
		return "sprint away"
	default:
		return "unknown"
	}
}

// toward reports whether the action closes distance.
func (a MovementAction) toward() bool {
	return a == MovementActionWalkToward || a == MovementActionSprintToward
}

// sprint reports whether the action is a sprint commitment.
func (a MovementAction) sprint() bool {
	return a == MovementActionSprintToward || a == MovementActionSprintAway
}

// StanceAction is the stance/posture channel of an intent.
type StanceAction int

const (
	StanceActionNone StanceAction = iota
	StanceActionStand
	StanceActionCrouch
	StanceActionEnterPartialCover
	StanceActionEnterFullCover
	StanceActionLeaveCover
)

func (a StanceAction) String() string {
	switch a {
	case StanceActionNone:
		return "none"
	case StanceActionStand:
		return "stand"
	case StanceActionCrouch:
		return "crouch"
	case StanceActionEnterPartialCover:
		return "enter partial cover"
	case StanceActionEnterFullCover:
		return "enter full cover"
	case StanceActionLeaveCover:
		return "leave cover"
	default:
		return "unknown"
	}
}

// Intent is one side's declared plan for a round: at most one action
// per channel, plus the tactical posture held through the round. An
// intent is purely declarative and never mutates operator state;
// validation happens against the declaring operator's current state at
// submit time.
type Intent struct {
	Weapon   WeaponAction
	Movement MovementAction
	Stance   StanceAction
	Posture  TacticalPosture
}

// IntentStatus classifies a submit result.
type IntentStatus int

const (
	// IntentAccepted means the intent was recorded for the next execution.
	IntentAccepted IntentStatus = iota
	// IntentRejected means a channel violates the operator's current state.
	IntentRejected
	// IntentInvalidState means the round is not accepting intents (Ended,
	// or mid-execution).
	IntentInvalidState
)

func (s IntentStatus) String() string {
	switch s {
	case IntentAccepted:
		return "accepted"
	case IntentRejected:
		return "rejected"
	case IntentInvalidState:
		return "invalid state"
	default:
		return "unknown"
	}
}

// IntentResult reports whether a submitted intent was recorded, with a
// human-readable reason when it was not. Rejection is a value, not an
// error; the caller re-plans and resubmits.
type IntentResult struct {
	Status IntentStatus
	Reason string
}

func accepted() IntentResult {
	return IntentResult{Status: IntentAccepted}
}

func rejected(reason string) IntentResult {
	return IntentResult{Status: IntentRejected, Reason: reason}
}

func invalidState(reason string) IntentResult {
	return IntentResult{Status: IntentInvalidState, Reason: reason}
}

// validateIntent checks every channel against the operator's current
// state. First violation wins; nothing is mutated.
func validateIntent(op *Operator, in Intent) IntentResult {
	switch in.Weapon {
	case WeaponActionFire, WeaponActionSuppressiveFire:
		if op.Cover == CoverFull {
			return rejected("cannot fire from full cover")
		}
		if op.Ammo <= 0 {
			return rejected("magazine empty")
		}
	case WeaponActionReload:
		if op.Ammo >= op.Weapon.MagazineSize {
			return rejected("magazine already full")
		}
	}

	if in.Movement.toward() && !op.CanAdvance() {
		return rejected("cannot advance from full cover")
	}

	switch in.Stance {
	case StanceActionEnterPartialCover, StanceActionEnterFullCover:
		if !CanEnterCoverFrom(op.Movement) {
			return rejected("cannot enter cover mid-movement")
		}
	case StanceActionLeaveCover:
		if op.Cover == CoverNone {
			return rejected("not in cover")
		}
	}

	// Retreating is always allowed; posture needs no gate.
	return accepted()
}
