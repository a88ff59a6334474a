package combat

import "math"

// Suppression constants. All hand-tuned balance values: the reference
// range pins where gunfire stops being personally frightening, the
// per-shot base is sized so a committed burst at close range pushes a
// standing target most of the way to the cap, and decay returns a fully
// suppressed standing operator to calm in roughly eight seconds.
const (
	MaxSuppressionLevel = 1.0

	suppressionRefRangeM       = 45.0 // beyond this, passing fire barely registers
	suppressionRangeFloor      = 0.10 // even distant fire leaves a residue inside range
	suppressionDecayPerSec     = 0.12
	maxSuppressiveDeviationDeg = 12.0 // shots wider than this do not suppress
	fullCoverSuppressionMul    = 0.60

	// Suppressive-fire doctrine limits.
	SuppressiveBurstMin        = 3
	SuppressiveBurstMax        = 8
	suppressiveRecencyWindowMs = 4000
)

// SuppressionSeverity returns the suppression one passing shot adds to
// the target. Severity rises with closer range and higher volume of
// fire, falls off with the shot's angular deviation from the target,
// and is scaled multiplicatively by the target's movement state,
// posture and cover. The result is clamped to [0, MaxSuppressionLevel].
func SuppressionSeverity(w *Weapon, distM, angularDevDeg float64, targetMovement MovementState, targetPosture TacticalPosture, targetCover CoverState) float64 {
	if angularDevDeg < 0 {
		angularDevDeg = -angularDevDeg
	}
	if angularDevDeg >= maxSuppressiveDeviationDeg {
		return 0
	}

	rangeFactor := 1.0 - distM/suppressionRefRangeM
	if rangeFactor < suppressionRangeFloor {
		if distM >= suppressionRefRangeM*1.5 {
			return 0
		}
		rangeFactor = suppressionRangeFloor
	}

	// Volume of fire: a 900 RPM weapon saturates the factor.
	volume := clamp01(float64(w.RoundsPerMinute) / 900.0)
	angular := 1.0 - angularDevDeg/maxSuppressiveDeviationDeg

	sev := w.SuppressionFactor * (0.45 + 0.55*volume) * rangeFactor * angular
	sev *= targetMovement.Profile().SuppressionBuildupMul
	sev *= targetPosture.Profile().SuppressionMul
	sev *= coverSuppressionMul(targetCover)

	return math.Min(sev, MaxSuppressionLevel)
}

// DecaySuppression returns the suppression level after elapsedMs of
// calm. Crouching decays faster than standing; the result never leaves
// [0, MaxSuppressionLevel].
func DecaySuppression(level float64, elapsedMs int64, m MovementState) float64 {
	if elapsedMs <= 0 || level <= 0 {
		return clampSuppression(level)
	}
	rate := suppressionDecayPerSec * m.Profile().SuppressionDecayMul
	level -= rate * float64(elapsedMs) / 1000.0
	return clampSuppression(level)
}

func clampSuppression(level float64) float64 {
	if level < 0 {
		return 0
	}
	if level > MaxSuppressionLevel {
		return MaxSuppressionLevel
	}
	return level
}

// SuppressiveBurst is a planned volume-of-fire commitment against a
// concealed target.
type SuppressiveBurst struct {
	Shots    int
	Severity float64 // per-shot suppression applied to the concealed target
}

// PlanSuppressiveBurst sizes a suppressive burst from attacker against a
// target in full cover. Doctrine forbids one unless the target was
// visible within the recency window; hosing a position nobody has seen
// lately wastes ammunition. Burst severity rises with closer range and
// larger bursts, is damped by the full-cover multiplier, and caps at
// MaxSuppressionLevel. Returns false when no burst is justified.
func PlanSuppressiveBurst(attacker, target *Operator, nowMs int64) (SuppressiveBurst, bool) {
	if target.Cover != CoverFull {
		return SuppressiveBurst{}, false
	}
	if nowMs-target.LastVisibleAtMs > suppressiveRecencyWindowMs {
		return SuppressiveBurst{}, false
	}
	if attacker.Ammo < SuppressiveBurstMin {
		return SuppressiveBurst{}, false
	}

	// Closer targets justify longer bursts.
	closeness := clamp01(1.0 - attacker.DistanceM/suppressionRefRangeM)
	shots := SuppressiveBurstMin + int(math.Round(closeness*float64(SuppressiveBurstMax-SuppressiveBurstMin)))
	if shots > attacker.Ammo {
		shots = attacker.Ammo
	}
	if shots > SuppressiveBurstMax {
		shots = SuppressiveBurstMax
	}

	sizeFactor := float64(shots) / float64(SuppressiveBurstMax)
	sev := attacker.Weapon.SuppressionFactor * (0.5 + 0.5*closeness) * (0.6 + 0.4*sizeFactor)
	sev *= fullCoverSuppressionMul
	sev = math.Min(sev, MaxSuppressionLevel)

	return SuppressiveBurst{Shots: shots, Severity: sev}, true
}
