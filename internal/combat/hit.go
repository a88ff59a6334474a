package combat

import "math/rand"

// Hit resolution constants. Range falloff mirrors the usual rifle
// envelope: flat out to the accurate band, then a hard ramp into
// pot-shot territory with a floor instead of a cutoff.
const (
	accurateRangeM     = 12.0
	maxEffectiveRangeM = 60.0
	rangeAccuracyFloor = 0.25

	// Recoil and sway degrees are folded into hit probability through a
	// soft divisor rather than a hard geometric model.
	recoilSwayPenaltyPerDeg = 0.9

	suppressionAccuracyPenalty = 0.45
	aimSteadyBonus             = 1.15
)

// ShotResult is the outcome of resolving a single round.
type ShotResult struct {
	Hit      bool
	Part     BodyPart
	Damage   float64
	MissDeg  float64 // angular deviation of a miss, drives suppression
	HitRoll  float64 // the raw hit draw, kept for diagnostics
	HitP     float64 // the composed probability the draw was tested against
}

// HitProbability composes the shooter's chance of landing a round on
// the target. All modifiers stack multiplicatively in a fixed order:
// accuracy × effective proficiency × shooter movement × target posture
// × range falloff × recoil/sway divisor × suppression penalty × aim
// bonus, clamped to [0, 1].
func HitProbability(shooter, target *Operator) float64 {
	p := shooter.Accuracy * shooter.EffectiveProficiency()
	p *= shooter.Movement.Profile().AccuracyMul
	p *= target.Posture.Profile().HitProbabilityMul
	p *= rangeAccuracyFactor(shooter.DistanceM)

	deg := shooter.Weapon.VerticalRecoil + shooter.Movement.Profile().SwayDeg
	p /= 1.0 + deg*recoilSwayPenaltyPerDeg

	p *= 1.0 - clamp01(shooter.Suppression)*suppressionAccuracyPenalty
	if shooter.AimSteadied {
		p *= aimSteadyBonus
	}
	return clamp01(p)
}

func rangeAccuracyFactor(distM float64) float64 {
	if distM <= accurateRangeM {
		return 1.0
	}
	if distM >= maxEffectiveRangeM {
		return rangeAccuracyFloor
	}
	t := (distM - accurateRangeM) / (maxEffectiveRangeM - accurateRangeM)
	return 1.0 - (1.0-rangeAccuracyFloor)*t
}

// Body-part hit weights for an exposed target. Torso mass dominates;
// head and neck are the narrow high-value slivers.
var bodyPartWeights = []struct {
	part   BodyPart
	weight float64
}{
	{BodyPartUpperTorso, 0.55},
	{BodyPartLowerTorso, 0.25},
	{BodyPartHead, 0.12},
	{BodyPartNeck, 0.08},
}

// ResolveShot resolves one round from shooter at target.
//
// RNG consumption order is pinned and must never change: draw 1 is the
// hit/miss roll, draw 2 is the hit-location roll and happens only when
// draw 1 hits. A target in full cover is never passed here; the round
// routes those shots straight to suppression without consuming draws.
func ResolveShot(rng *rand.Rand, shooter, target *Operator) ShotResult {
	p := HitProbability(shooter, target)
	roll := rng.Float64() // draw 1: hit/miss

	if roll >= p {
		// Reuse the miss margin as the shot's angular deviation so a
		// near miss suppresses harder than a wild one, without
		// consuming an extra draw.
		margin := 1.0
		if p < 1.0 {
			margin = (roll - p) / (1.0 - p)
		}
		return ShotResult{
			Hit:     false,
			MissDeg: margin * maxSuppressiveDeviationDeg,
			HitRoll: roll,
			HitP:    p,
		}
	}

	part := drawBodyPart(rng, target.Cover) // draw 2: location
	dmg := shooter.Weapon.DamageFor(part, shooter.DistanceM)
	return ShotResult{
		Hit:     true,
		Part:    part,
		Damage:  dmg,
		HitRoll: roll,
		HitP:    p,
	}
}

// drawBodyPart picks a hit location from the weighted table with a
// single draw. A peeking target only exposes the upper body, so the
// lower torso is excluded and the remaining weights renormalized.
func drawBodyPart(rng *rand.Rand, cover CoverState) BodyPart {
	total := 0.0
	for _, e := range bodyPartWeights {
		if cover == CoverPartial && e.part == BodyPartLowerTorso {
			continue
		}
		total += e.weight
	}
	roll := rng.Float64() * total
	for _, e := range bodyPartWeights {
		if cover == CoverPartial && e.part == BodyPartLowerTorso {
			continue
		}
		if roll < e.weight {
			return e.part
		}
		roll -= e.weight
	}
	return BodyPartUpperTorso
}
