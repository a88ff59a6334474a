package combat

// Flinch constants. A flinch lasts a fixed number of trigger pulls and
// can drag effective proficiency down to the floor fraction of baseline
// at full severity. The resistance knee marks where an unusually frail
// operator starts flinching harder than the plain impulse ratio alone
// would predict.
const (
	FlinchShotCount = 3

	flinchProficiencyFloor = 0.40
	flinchResistanceKnee   = 20.0
	flinchLowResAmp        = 0.5
)

// FlinchSeverity maps an incoming damage impulse against a resistance
// rating to a severity in [0, 1]. Severity strictly decreases as
// resistance grows at fixed impulse. Below the resistance knee the
// severity is amplified nonlinearly, as there is no composure left to
// absorb the blow.
func FlinchSeverity(impulse, resistance float64) float64 {
	if impulse <= 0 {
		return 0
	}
	if resistance < 1 {
		resistance = 1
	}
	ratio := impulse / resistance
	sev := ratio / (ratio + 1.0)
	if resistance < flinchResistanceKnee {
		short := (flinchResistanceKnee - resistance) / flinchResistanceKnee
		sev *= 1.0 + flinchLowResAmp*short*short
	}
	return clamp01(sev)
}

// FlinchState tracks a transient accuracy penalty on an operator who
// has just been hit. The penalty persists for a fixed number of
// subsequent shots and is consumed one trigger pull at a time.
type FlinchState struct {
	Severity       float64 // 0-1
	RemainingShots int
}

// Apply resets the flinch from a new qualifying hit. A fresh hit
// replaces whatever was left; severities never accumulate.
func (f *FlinchState) Apply(impulse, resistance float64) {
	sev := FlinchSeverity(impulse, resistance)
	if sev <= 0 {
		return
	}
	f.Severity = sev
	f.RemainingShots = FlinchShotCount
}

// ConsumeShot burns one flinched trigger pull. Consuming the last
// remaining shot clears the severity entirely.
func (f *FlinchState) ConsumeShot() {
	if f.RemainingShots <= 0 {
		return
	}
	f.RemainingShots--
	if f.RemainingShots == 0 {
		f.Severity = 0
	}
}

// ProficiencyMul returns the multiplier flinch applies to accuracy
// proficiency: 1.0 when calm, down to the floor fraction at severity 1.
func (f *FlinchState) ProficiencyMul() float64 {
	sev := clamp01(f.Severity)
	return 1.0 - (1.0-flinchProficiencyFloor)*sev
}

// Active reports whether a flinch is still in effect.
func (f *FlinchState) Active() bool {
	return f.RemainingShots > 0 && f.Severity > 0
}
