package combat

// MovementState represents what an operator's body is doing right now.
type MovementState int

const (
	MovementStationary MovementState = iota
	MovementIdle
	MovementWalking
	MovementSprinting
	MovementCrouching
	MovementSliding
)

func (m MovementState) String() string {
	switch m {
	case MovementStationary:
		return "stationary"
	case MovementIdle:
		return "idle"
	case MovementWalking:
		return "walking"
	case MovementSprinting:
		return "sprinting"
	case MovementCrouching:
		return "crouching"
	case MovementSliding:
		return "sliding"
	default:
		return "unknown"
	}
}

// Covering reports whether the state actually moves the operator over
// ground. Crouching and the two rest states keep the operator in place.
func (m MovementState) Covering() bool {
	switch m {
	case MovementWalking, MovementSprinting, MovementSliding:
		return true
	default:
		return false
	}
}

// MovementProfile holds the gameplay modifiers for a movement state.
// All values are hand-tuned balance constants: accuracy multipliers
// follow the classic shooter curve (crouched beats standing beats
// moving, sprint is near-useless for shooting), sway tops out at 0.15°
// for the flat-out states, and crouching drains suppression noticeably
// faster than standing because the operator feels protected.
type MovementProfile struct {
	AccuracyMul           float64 // multiplier on hit probability
	SwayDeg               float64 // weapon sway in degrees
	ADSTimeMul            float64 // multiplier on aim-down-sights time
	SuppressionBuildupMul float64 // multiplier on incoming suppression
	SuppressionDecayMul   float64 // multiplier on suppression decay rate
	SpeedMPerS            float64 // ground covered per second
}

var movementProfiles = map[MovementState]MovementProfile{
	MovementStationary: {AccuracyMul: 1.0, SwayDeg: 0, ADSTimeMul: 1.0, SuppressionBuildupMul: 1.0, SuppressionDecayMul: 1.0, SpeedMPerS: 0},
	MovementIdle:       {AccuracyMul: 1.0, SwayDeg: 0.02, ADSTimeMul: 1.0, SuppressionBuildupMul: 1.0, SuppressionDecayMul: 1.0, SpeedMPerS: 0},
	MovementWalking:    {AccuracyMul: 0.85, SwayDeg: 0.06, ADSTimeMul: 1.15, SuppressionBuildupMul: 1.1, SuppressionDecayMul: 1.0, SpeedMPerS: 1.6},
	MovementSprinting:  {AccuracyMul: 0.45, SwayDeg: 0.15, ADSTimeMul: 1.6, SuppressionBuildupMul: 1.25, SuppressionDecayMul: 0.9, SpeedMPerS: 4.2},
	MovementCrouching:  {AccuracyMul: 1.1, SwayDeg: 0.03, ADSTimeMul: 1.05, SuppressionBuildupMul: 0.85, SuppressionDecayMul: 1.35, SpeedMPerS: 0},
	MovementSliding:    {AccuracyMul: 0.45, SwayDeg: 0.15, ADSTimeMul: 1.5, SuppressionBuildupMul: 0.9, SuppressionDecayMul: 1.0, SpeedMPerS: 3.0},
}

// Profile returns the gameplay modifiers for this movement state.
func (m MovementState) Profile() MovementProfile {
	return movementProfiles[m]
}

// movementIntervalMs is one movement commitment unit. A walking leg
// runs for a single interval; a sprint commits to two shorter legs with
// a reaction window between them.
const (
	movementIntervalMs = 500
	sprintLegMs        = 400
	stanceChangeMs     = 250 // crouch/stand settle time
	aimSettleBaseMs    = 350 // base aim-down-sights time, scaled by ADSTimeMul
)

// MovementLegDeltaM returns the signed distance-to-opponent change of
// one leg in the given state: negative toward the opponent, positive
// away.
func MovementLegDeltaM(m MovementState, legMs int64, toward bool) float64 {
	d := m.Profile().SpeedMPerS * float64(legMs) / 1000.0
	if toward {
		return -d
	}
	return d
}

// TacticalPosture is the operator's declared direction of intent. It is
// orthogonal to distance: posture never moves anyone, it only scales
// suppression buildup and hit probability.
type TacticalPosture int

const (
	PostureHold TacticalPosture = iota
	PostureAdvance
	PostureRetreat
)

func (p TacticalPosture) String() string {
	switch p {
	case PostureHold:
		return "holding"
	case PostureAdvance:
		return "advancing"
	case PostureRetreat:
		return "retreating"
	default:
		return "unknown"
	}
}

// PostureProfile holds the posture multipliers. An advancing operator
// is more exposed: easier to hit and easier to rattle. A retreating one
// presents a smaller target and reads incoming fire as less personal.
type PostureProfile struct {
	SuppressionMul    float64 // multiplier on incoming suppression buildup
	HitProbabilityMul float64 // multiplier on opponents' hit probability
}

var postureProfiles = map[TacticalPosture]PostureProfile{
	PostureHold:    {SuppressionMul: 1.0, HitProbabilityMul: 1.0},
	PostureAdvance: {SuppressionMul: 1.2, HitProbabilityMul: 1.15},
	PostureRetreat: {SuppressionMul: 0.85, HitProbabilityMul: 0.9},
}

// Profile returns the posture multipliers.
func (p TacticalPosture) Profile() PostureProfile {
	return postureProfiles[p]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
