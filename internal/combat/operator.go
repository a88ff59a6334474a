package combat

// Default operator build constants.
const (
	DefaultMaxHealth        = 100.0
	DefaultFlinchResistance = 50.0 // impulse an average operator shrugs off at ~0.5 severity
	minEngagementDistanceM  = 1.0  // operators never occupy the same spot
)

// Operator is one combatant's full combat-scoped state. It is a
// single-writer mutable aggregate: only the owning round's state
// machine and event execution touch it while a session runs.
type Operator struct {
	ID   int
	Name string

	Health    float64
	MaxHealth float64

	Accuracy            float64 // 0-1, innate weapon handling
	AccuracyProficiency float64 // 0-1, trained refinement on top of it
	FlinchResistance    float64

	Ammo   int
	Weapon *Weapon

	// DistanceM is the scalar distance to the opponent. Both operators'
	// values are reconciled to a single agreed number at every round
	// boundary, whatever asymmetric movement happened in between.
	DistanceM float64

	Movement          MovementState
	MovementEndTimeMs int64
	IsMoving          bool

	Posture TacticalPosture
	Cover   CoverState

	Suppression float64
	Flinch      FlinchState

	// LastVisibleAtMs is when the opponent last had eyes on this
	// operator; suppressive-fire doctrine keys off it.
	LastVisibleAtMs int64

	// AimSteadied is set by a completed aim action and cleared by any
	// movement. Grants a small hit-probability bonus.
	AimSteadied bool

	// In-progress cover transition, if any. Starting new movement
	// cancels it.
	coverTransitionEndMs int64
	pendingCover         CoverState
}

// NewOperator creates an operator with round-start defaults: full
// health, full magazine, stationary, holding, no cover.
func NewOperator(id int, name string, w *Weapon, distanceM float64) *Operator {
	return &Operator{
		ID:                  id,
		Name:                name,
		Health:              DefaultMaxHealth,
		MaxHealth:           DefaultMaxHealth,
		Accuracy:            0.75,
		AccuracyProficiency: 0.65,
		FlinchResistance:    DefaultFlinchResistance,
		Ammo:                w.MagazineSize,
		Weapon:              w,
		DistanceM:           distanceM,
		Movement:            MovementStationary,
		Posture:             PostureHold,
		Cover:               CoverNone,
	}
}

// Alive reports whether the operator is still in the fight.
func (o *Operator) Alive() bool {
	return o.Health > 0
}

// CanShoot reports whether a fire action is currently legal: anything
// but full cover, with rounds in the magazine.
func (o *Operator) CanShoot() bool {
	return o.Cover != CoverFull && o.Ammo > 0
}

// CanAdvance reports whether closing distance is currently legal. Full
// cover blocks it; everything else permits it.
func (o *Operator) CanAdvance() bool {
	return o.Cover != CoverFull
}

// CanRetreat is always true: nothing stops an operator from falling
// back, full cover included.
func (o *Operator) CanRetreat() bool {
	return true
}

// InterruptCommitments builds the cancellation event for whatever
// movement or cover entry is still in progress at nowMs, or returns nil
// when nothing would be interrupted. The event carries the duration
// that would still have elapsed; executing it performs the actual state
// reset.
func (o *Operator) InterruptCommitments(nowMs int64) *SimulationEvent {
	switch {
	case o.IsMoving && o.MovementEndTimeMs > nowMs:
		return &SimulationEvent{
			Kind:       EventMovementCancelled,
			TimeMs:     nowMs,
			OperatorID: o.ID,
			Movement:   o.Movement,
			DurationMs: o.MovementEndTimeMs - nowMs,
		}
	case o.coverTransitionEndMs > nowMs:
		return &SimulationEvent{
			Kind:       EventMovementCancelled,
			TimeMs:     nowMs,
			OperatorID: o.ID,
			Cover:      o.pendingCover,
			DurationMs: o.coverTransitionEndMs - nowMs,
		}
	default:
		return nil
	}
}

// CancelCommitments clears any in-progress movement and cover entry.
// Called when a MovementCancelled event executes.
func (o *Operator) CancelCommitments() {
	if o.IsMoving {
		o.FinishMovement()
	}
	o.coverTransitionEndMs = 0
}

// BeginMovement puts the operator into the given moving state for
// durationMs starting at nowMs. Moving spoils any steadied aim.
func (o *Operator) BeginMovement(nowMs int64, m MovementState, durationMs int64) {
	o.Movement = m
	o.IsMoving = true
	o.MovementEndTimeMs = nowMs + durationMs
	o.AimSteadied = false
}

// FinishMovement returns the operator to rest.
func (o *Operator) FinishMovement() {
	o.Movement = MovementStationary
	o.IsMoving = false
}

// BeginCoverTransition records a pending cover change completing at
// endMs. The actual Cover field flips when the CoverEntered/CoverExited
// event executes.
func (o *Operator) BeginCoverTransition(target CoverState, endMs int64) {
	o.pendingCover = target
	o.coverTransitionEndMs = endMs
}

// CompleteCoverTransition applies a finished cover change.
func (o *Operator) CompleteCoverTransition(target CoverState) {
	o.Cover = target
	o.coverTransitionEndMs = 0
}

// ApplyDamage subtracts health, clamping at zero, and returns whether
// this blow was fatal.
func (o *Operator) ApplyDamage(dmg float64) bool {
	if dmg <= 0 || !o.Alive() {
		return false
	}
	o.Health -= dmg
	if o.Health <= 0 {
		o.Health = 0
		return true
	}
	return false
}

// AdvanceTime decays suppression for elapsed quiet milliseconds.
func (o *Operator) AdvanceTime(elapsedMs int64) {
	o.Suppression = DecaySuppression(o.Suppression, elapsedMs, o.Movement)
}

// AddSuppression raises the suppression level, clamped to the cap.
func (o *Operator) AddSuppression(sev float64) {
	o.Suppression = clampSuppression(o.Suppression + sev)
}

// EffectiveProficiency is accuracy proficiency after the current flinch
// penalty.
func (o *Operator) EffectiveProficiency() float64 {
	return clamp01(o.AccuracyProficiency * o.Flinch.ProficiencyMul())
}
