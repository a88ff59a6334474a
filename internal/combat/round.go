package combat

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
)

// RoundPhase is the state of the combat round machine.
type RoundPhase int

const (
	// PhasePlanning accepts intents from both sides.
	PhasePlanning RoundPhase = iota
	// PhaseExecuting drains the event queue.
	PhaseExecuting
	// PhaseEnded is terminal: an operator died or the engagement broke off.
	PhaseEnded
)

func (p RoundPhase) String() string {
	switch p {
	case PhasePlanning:
		return "planning"
	case PhaseExecuting:
		return "executing"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// shotsPerCommitment is the fire commitment unit: a fire intent commits
// to this many trigger pulls before the next reaction window.
const shotsPerCommitment = 3

var (
	// ErrInvalidPhase is returned when an operation is attempted in the
	// wrong phase, including any operation on an ended round.
	ErrInvalidPhase = errors.New("combat: invalid phase")
	// ErrMissingIntent is returned when execution begins before both
	// sides have submitted.
	ErrMissingIntent = errors.New("combat: both sides must submit intents")
)

// CombatRound is the round state machine for a two-operator engagement.
// It exclusively owns both operators and the pseudo-random source for
// the whole session; nothing may mutate either from outside while a
// round is executing.
//
// RNG consumption order is pinned: AutoIntent draws happen at the
// planning boundary in call order; during execution only ShotFired
// consumes draws, hit roll first, location roll second. Reordering any
// of these breaks replay verification.
type CombatRound struct {
	ops    [2]*Operator
	queue  *EventQueue
	rng    *rand.Rand
	log    *BattleLog
	logger zerolog.Logger

	phase   RoundPhase
	clockMs int64
	turns   int

	pending       [2]*Intent
	distanceDelta [2]float64
}

// NewCombatRound creates the state machine for operators a and b. The
// operator with the lower ID must be passed first; IDs break event-time
// ties, so they are part of the deterministic contract. The RNG is
// seeded here, once, and never reseeded.
func NewCombatRound(a, b *Operator, seed int64) *CombatRound {
	if a.ID >= b.ID {
		a, b = b, a
	}
	r := &CombatRound{
		ops:    [2]*Operator{a, b},
		queue:  NewEventQueue(),
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- determinism is the point
		log:    NewBattleLog(),
		logger: zerolog.Nop(),
	}
	r.queue.Schedule(&SimulationEvent{Kind: EventCombatSessionStarted, TimeMs: 0, OperatorID: a.ID})
	return r
}

// SetLogger attaches an operational logger for diagnostics. The battle
// log is unaffected; determinism does not depend on this.
func (r *CombatRound) SetLogger(l zerolog.Logger) {
	r.logger = l
}

// Phase returns the current phase.
func (r *CombatRound) Phase() RoundPhase { return r.phase }

// ClockMs returns the simulation clock in milliseconds.
func (r *CombatRound) ClockMs() int64 { return r.clockMs }

// TurnsCompleted returns how many reaction windows have opened so far.
func (r *CombatRound) TurnsCompleted() int { return r.turns }

// Log returns the deterministic battle log.
func (r *CombatRound) Log() *BattleLog { return r.log }

// AutoIntentFor runs the tactical policy for the given operator against
// the round-owned RNG. Draw order across a planning phase is the call
// order, so callers must request intents in a fixed operator order.
func (r *CombatRound) AutoIntentFor(operatorID int) Intent {
	i := r.opIndex(operatorID)
	if i < 0 {
		return Intent{}
	}
	return AutoIntent(r.rng, r.ops[i], r.ops[1-i], r.clockMs)
}

// Operator returns the operator with the given ID, or nil.
func (r *CombatRound) Operator(id int) *Operator {
	if i := r.opIndex(id); i >= 0 {
		return r.ops[i]
	}
	return nil
}

func (r *CombatRound) opIndex(id int) int {
	for i, op := range r.ops {
		if op.ID == id {
			return i
		}
	}
	return -1
}

// SubmitIntents validates and records one side's intent for the next
// execution. It never mutates committed operator state; the only effect
// of an accepted submission is the recorded pending intent. Submitting
// to an ended round yields an invalid-state result, not an error.
func (r *CombatRound) SubmitIntents(operatorID int, in Intent) IntentResult {
	if r.phase == PhaseEnded {
		return invalidState("round has ended")
	}
	if r.phase != PhasePlanning {
		return invalidState("round is executing")
	}
	i := r.opIndex(operatorID)
	if i < 0 {
		return rejected(fmt.Sprintf("unknown operator %d", operatorID))
	}
	res := validateIntent(r.ops[i], in)
	if res.Status == IntentAccepted {
		committed := in
		r.pending[i] = &committed
	}
	return res
}

// BeginExecution translates both recorded intents into scheduled events
// and transitions to Executing. Scheduling runs in operator-index order
// so same-timestamp events always carry the same deterministic keys.
func (r *CombatRound) BeginExecution() error {
	if r.phase != PhasePlanning {
		return fmt.Errorf("%w: begin execution while %s", ErrInvalidPhase, r.phase)
	}
	if r.pending[0] == nil || r.pending[1] == nil {
		return ErrMissingIntent
	}
	for i := range r.ops {
		r.scheduleIntent(i, *r.pending[i])
	}
	r.pending[0], r.pending[1] = nil, nil
	r.phase = PhaseExecuting
	return nil
}

// Event kinds grouped by intent channel. A new action on a channel
// supersedes whatever that channel still had queued from the previous
// commitment; the other channels are left alone.
func movementChannelKind(k EventKind) bool {
	switch k {
	case EventMovementStarted, EventMovementInterval, EventMovementEnded,
		EventCoverEntered, EventCoverExited:
		return true
	default:
		return false
	}
}

func stanceChannelKind(k EventKind) bool {
	switch k {
	case EventCoverEntered, EventCoverExited, EventMicroReaction:
		return true
	default:
		return false
	}
}

func weaponChannelKind(k EventKind) bool {
	switch k {
	case EventShotFired, EventReloadComplete:
		return true
	default:
		return false
	}
}

func (r *CombatRound) purgeChannel(operatorID int, kindMatch func(EventKind) bool) {
	r.queue.RemoveMatching(func(ev *SimulationEvent) bool {
		return ev.OperatorID == operatorID && kindMatch(ev.Kind)
	})
}

// scheduleIntent turns one operator's intent into queue events.
// Channels are handled in order (movement, stance, weapon) so that a
// superseding movement purges stale commitments before anything new is
// queued.
func (r *CombatRound) scheduleIntent(i int, in Intent) {
	op := r.ops[i]
	foe := r.ops[1-i]
	op.Posture = in.Posture

	if in.Movement != MovementActionNone {
		r.purgeChannel(op.ID, movementChannelKind)
		if cancel := op.InterruptCommitments(r.clockMs); cancel != nil {
			r.queue.Schedule(cancel)
		}
		state := MovementWalking
		legMs := int64(movementIntervalMs)
		totalMs := legMs
		if in.Movement.sprint() {
			state = MovementSprinting
			legMs = sprintLegMs
			totalMs = 2 * sprintLegMs
		}
		r.queue.Schedule(&SimulationEvent{
			Kind:           EventMovementStarted,
			TimeMs:         r.clockMs,
			OperatorID:     op.ID,
			Movement:       state,
			DurationMs:     totalMs,
			DistanceDeltaM: MovementLegDeltaM(state, legMs, in.Movement.toward()),
		})
	}

	if in.Stance != StanceActionNone {
		r.purgeChannel(op.ID, stanceChannelKind)
	}
	switch in.Stance {
	case StanceActionCrouch:
		r.queue.Schedule(&SimulationEvent{
			Kind: EventMicroReaction, TimeMs: r.clockMs + stanceChangeMs,
			OperatorID: op.ID, Adjust: AdjustCrouch,
		})
	case StanceActionStand:
		r.queue.Schedule(&SimulationEvent{
			Kind: EventMicroReaction, TimeMs: r.clockMs + stanceChangeMs,
			OperatorID: op.ID, Adjust: AdjustStand,
		})
	case StanceActionEnterPartialCover, StanceActionEnterFullCover:
		target := CoverPartial
		if in.Stance == StanceActionEnterFullCover {
			target = CoverFull
		}
		if target != op.Cover {
			delay := CoverTransitionDelayMs(op.Cover, target)
			op.BeginCoverTransition(target, r.clockMs+delay)
			r.queue.Schedule(&SimulationEvent{
				Kind: EventCoverEntered, TimeMs: r.clockMs + delay,
				OperatorID: op.ID, Cover: target,
			})
		}
	case StanceActionLeaveCover:
		delay := CoverTransitionDelayMs(op.Cover, CoverNone)
		op.BeginCoverTransition(CoverNone, r.clockMs+delay)
		r.queue.Schedule(&SimulationEvent{
			Kind: EventCoverExited, TimeMs: r.clockMs + delay,
			OperatorID: op.ID, Cover: CoverNone,
		})
	}

	if in.Weapon != WeaponActionNone {
		r.purgeChannel(op.ID, weaponChannelKind)
	}
	switch in.Weapon {
	case WeaponActionFire:
		r.scheduleBurst(op, shotsPerCommitment, false, 0)
	case WeaponActionSuppressiveFire:
		if burst, ok := PlanSuppressiveBurst(op, foe, r.clockMs); ok {
			r.scheduleBurst(op, burst.Shots, true, burst.Severity)
		} else {
			// Doctrine refused the burst; fall back to aimed fire.
			r.scheduleBurst(op, shotsPerCommitment, false, 0)
		}
	case WeaponActionReload:
		r.queue.Schedule(&SimulationEvent{
			Kind: EventReloadComplete, TimeMs: r.clockMs + op.Weapon.ReloadTimeMs,
			OperatorID: op.ID, EndsCommitment: true,
		})
	case WeaponActionAim:
		settle := int64(float64(aimSettleBaseMs) * op.Movement.Profile().ADSTimeMul)
		r.queue.Schedule(&SimulationEvent{
			Kind: EventMicroReaction, TimeMs: r.clockMs + settle,
			OperatorID: op.ID, Adjust: AdjustSteadyAim,
		})
	}
}

// scheduleBurst queues a committed string of shots. The first round
// waits out the shooter's recognition delay; the rest follow at the
// weapon's inter-shot interval.
func (r *CombatRound) scheduleBurst(op *Operator, shots int, suppressive bool, severity float64) {
	if shots > op.Ammo {
		shots = op.Ammo
	}
	if shots <= 0 {
		return
	}
	first := r.clockMs + RecognitionDelayMs(op.AccuracyProficiency, op.Suppression)
	interval := op.Weapon.InterShotIntervalMs()
	for s := 0; s < shots; s++ {
		r.queue.Schedule(&SimulationEvent{
			Kind:         EventShotFired,
			TimeMs:       first + int64(s)*interval,
			OperatorID:   op.ID,
			ShotIndex:    s,
			ShotsInBurst: shots,
			Suppressive:  suppressive,
			Severity:     severity,
		})
	}
}

// ExecuteUntilReactionWindow drains the queue, advancing the clock to
// each event and executing it, until a commitment unit completes (a
// reaction window: phase returns to Planning and true is returned), an
// operator dies (phase Ended, false), or the queue empties with nothing
// further to do (round over without termination: Planning, false).
func (r *CombatRound) ExecuteUntilReactionWindow() (bool, error) {
	if r.phase != PhaseExecuting {
		return false, fmt.Errorf("%w: execute while %s", ErrInvalidPhase, r.phase)
	}

	for {
		ev, ok := r.queue.DequeueNext()
		if !ok {
			r.endRound()
			if !r.ops[0].Alive() || !r.ops[1].Alive() {
				r.phase = PhaseEnded
			} else {
				r.phase = PhasePlanning
			}
			return false, nil
		}

		r.advanceClock(ev.TimeMs)
		cont, window := r.execute(ev)
		if cont != nil {
			r.queue.Schedule(cont)
		}

		if !r.ops[0].Alive() || !r.ops[1].Alive() {
			r.queue.Clear()
			r.endRound()
			r.phase = PhaseEnded
			return false, nil
		}

		if window {
			r.endRound()
			r.turns++
			r.phase = PhasePlanning
			return true, nil
		}
	}
}

// advanceClock moves simulation time forward, decaying suppression over
// the elapsed quiet span and refreshing last-visible stamps.
func (r *CombatRound) advanceClock(toMs int64) {
	elapsed := toMs - r.clockMs
	if elapsed > 0 {
		for _, op := range r.ops {
			op.AdvanceTime(elapsed)
		}
	}
	r.clockMs = toMs
	for _, op := range r.ops {
		if IsVisible(op.Cover) {
			op.LastVisibleAtMs = toMs
		}
	}
}

// endRound reconciles both operators' distance to a single agreed value
// from the shared starting distance plus both sides' net movement this
// round. Movement may have resolved asymmetrically; the engagement
// range is one number.
func (r *CombatRound) endRound() {
	delta := r.distanceDelta[0] + r.distanceDelta[1]
	if delta != 0 {
		shared := r.ops[0].DistanceM + delta
		if shared < minEngagementDistanceM {
			shared = minEngagementDistanceM
		}
		r.ops[0].DistanceM = shared
		r.ops[1].DistanceM = shared
		r.log.Add(LogMovement, r.clockMs, "engagement range now %.1fm", shared)
	}
	r.distanceDelta[0], r.distanceDelta[1] = 0, 0
}

// execute runs one event against operator state. It returns zero or one
// continuation event plus whether a reaction window opens. The switch
// is exhaustive over the closed variant set; an unhandled kind is a
// programming error.
func (r *CombatRound) execute(ev *SimulationEvent) (*SimulationEvent, bool) {
	i := r.opIndex(ev.OperatorID)
	if i < 0 {
		panic(fmt.Sprintf("combat: event for unknown operator %d", ev.OperatorID))
	}
	op := r.ops[i]

	switch ev.Kind {
	case EventCombatSessionStarted:
		r.log.Add(LogInfo, ev.TimeMs, "combat joined at %.1fm", op.DistanceM)
		return nil, false

	case EventShotFired:
		return r.executeShot(ev, i)

	case EventDamageApplied:
		died := op.ApplyDamage(ev.Damage)
		op.Flinch.Apply(ev.Damage, op.FlinchResistance)
		r.log.Add(LogDamage, ev.TimeMs, "%s takes %.1f to the %s (hp %.1f)",
			op.Name, ev.Damage, ev.Part, op.Health)
		if died {
			r.log.Add(LogInfo, ev.TimeMs, "%s goes down", op.Name)
		}
		return nil, ev.EndsCommitment

	case EventMovementStarted:
		op.BeginMovement(ev.TimeMs, ev.Movement, ev.DurationMs)
		r.log.Add(LogMovement, ev.TimeMs, "%s starts %s", op.Name, ev.Movement)
		if ev.Movement == MovementSprinting {
			return &SimulationEvent{
				Kind:           EventMovementInterval,
				TimeMs:         ev.TimeMs + sprintLegMs,
				OperatorID:     op.ID,
				Movement:       ev.Movement,
				DistanceDeltaM: ev.DistanceDeltaM,
			}, false
		}
		return &SimulationEvent{
			Kind:           EventMovementEnded,
			TimeMs:         ev.TimeMs + ev.DurationMs,
			OperatorID:     op.ID,
			Movement:       ev.Movement,
			DistanceDeltaM: ev.DistanceDeltaM,
		}, false

	case EventMovementInterval:
		r.distanceDelta[i] += ev.DistanceDeltaM
		r.log.Add(LogMovement, ev.TimeMs, "%s sprint leg complete (%+.1fm)", op.Name, ev.DistanceDeltaM)
		return &SimulationEvent{
			Kind:           EventMovementEnded,
			TimeMs:         ev.TimeMs + sprintLegMs,
			OperatorID:     op.ID,
			Movement:       ev.Movement,
			DistanceDeltaM: ev.DistanceDeltaM,
		}, true

	case EventMovementEnded:
		op.FinishMovement()
		r.distanceDelta[i] += ev.DistanceDeltaM
		r.log.Add(LogMovement, ev.TimeMs, "%s stops (%+.1fm)", op.Name, ev.DistanceDeltaM)
		return nil, true

	case EventMovementCancelled:
		op.CancelCommitments()
		r.log.Add(LogMovement, ev.TimeMs, "%s aborts (%dms remaining)", op.Name, ev.DurationMs)
		return nil, false

	case EventCoverEntered:
		op.CompleteCoverTransition(ev.Cover)
		r.log.Add(LogMovement, ev.TimeMs, "%s settles into %s", op.Name, ev.Cover)
		return nil, false

	case EventCoverExited:
		op.CompleteCoverTransition(ev.Cover)
		r.log.Add(LogMovement, ev.TimeMs, "%s breaks cover", op.Name)
		return nil, false

	case EventReloadComplete:
		op.Ammo = op.Weapon.MagazineSize
		r.log.Add(LogInfo, ev.TimeMs, "%s reloads (%d rounds)", op.Name, op.Ammo)
		return nil, ev.EndsCommitment

	case EventSuppressionStarted, EventSuppressionUpdated:
		op.AddSuppression(ev.Severity)
		r.log.Add(LogSuppression, ev.TimeMs, "%s suppressed to %.2f", op.Name, op.Suppression)
		return nil, ev.EndsCommitment

	case EventMicroReaction:
		switch ev.Adjust {
		case AdjustCrouch:
			if !op.IsMoving {
				op.Movement = MovementCrouching
				r.log.Add(LogMovement, ev.TimeMs, "%s crouches", op.Name)
			}
		case AdjustStand:
			if !op.IsMoving {
				op.Movement = MovementStationary
				r.log.Add(LogMovement, ev.TimeMs, "%s stands", op.Name)
			}
		case AdjustSteadyAim:
			if !op.IsMoving {
				op.AimSteadied = true
				r.log.Add(LogInfo, ev.TimeMs, "%s steadies their aim", op.Name)
			}
		}
		return nil, false

	default:
		panic(fmt.Sprintf("combat: unhandled event kind %s", ev.Kind))
	}
}

// executeShot resolves one ShotFired event. Shots at a concealed target
// consume no RNG draws: they route straight to suppression; the
// hit/location draws only happen against a target that can be hit.
func (r *CombatRound) executeShot(ev *SimulationEvent, i int) (*SimulationEvent, bool) {
	shooter := r.ops[i]
	target := r.ops[1-i]
	lastShot := ev.ShotIndex == ev.ShotsInBurst-1

	if shooter.Ammo <= 0 {
		r.log.Add(LogInfo, ev.TimeMs, "%s's trigger clicks on an empty chamber", shooter.Name)
		return nil, lastShot
	}
	shooter.Ammo--

	if target.Cover == CoverFull {
		sev := ev.Severity
		if !ev.Suppressive {
			sev = SuppressionSeverity(shooter.Weapon, shooter.DistanceM, 0,
				target.Movement, target.Posture, target.Cover)
		}
		shooter.Flinch.ConsumeShot()
		r.log.Add(LogMiss, ev.TimeMs, "%s fires into %s's cover to no effect", shooter.Name, target.Name)
		if sev <= 0 {
			return nil, lastShot
		}
		return r.suppressionEvent(target, ev.TimeMs, sev, lastShot), false
	}

	res := ResolveShot(r.rng, shooter, target)
	shooter.Flinch.ConsumeShot()

	if res.Hit {
		cont := &SimulationEvent{
			Kind:           EventDamageApplied,
			TimeMs:         ev.TimeMs,
			OperatorID:     target.ID,
			Damage:         res.Damage,
			Part:           res.Part,
			EndsCommitment: lastShot,
		}
		// The impact itself rattles the target too, quietly.
		hitSev := SuppressionSeverity(shooter.Weapon, shooter.DistanceM, 0,
			target.Movement, target.Posture, target.Cover)
		target.AddSuppression(hitSev * 0.5)
		return cont, false
	}

	r.log.Add(LogMiss, ev.TimeMs, "%s misses %s", shooter.Name, target.Name)
	sev := SuppressionSeverity(shooter.Weapon, shooter.DistanceM, res.MissDeg,
		target.Movement, target.Posture, target.Cover)
	if sev <= 0 {
		return nil, lastShot
	}
	return r.suppressionEvent(target, ev.TimeMs, sev, lastShot), false
}

// suppressionEvent builds the SuppressionStarted/Updated continuation
// for the target, propagating the commitment-end marker.
func (r *CombatRound) suppressionEvent(target *Operator, timeMs int64, sev float64, endsCommitment bool) *SimulationEvent {
	kind := EventSuppressionUpdated
	if target.Suppression == 0 {
		kind = EventSuppressionStarted
	}
	return &SimulationEvent{
		Kind:           kind,
		TimeMs:         timeMs,
		OperatorID:     target.ID,
		Severity:       sev,
		EndsCommitment: endsCommitment,
	}
}
