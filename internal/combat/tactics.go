package combat

import "math/rand"

// Tactical policy thresholds. Hand-tuned: an operator below a third of
// their health starts thinking about living through this, heavy
// suppression overrides everything else, and the aggression roll decides
// the close calls.
const (
	lowHealthFraction    = 0.35
	heavySuppressionLvl  = 0.6
	preferredRangeM      = 18.0 // inside this, hold and shoot; outside, close
	tacticAggressionBias = 0.55 // roll below this picks the aggressive branch
)

// AutoIntent picks one round's intent for self against foe. The policy
// is a fixed decision tree with a single aggression roll: every call
// consumes exactly one draw from rng, whatever branch it takes, so a
// replayed session sees the same stream offsets. Returned intents
// always pass validation against the state they were derived from.
func AutoIntent(rng *rand.Rand, self, foe *Operator, nowMs int64) Intent {
	aggressive := rng.Float64() < tacticAggressionBias

	// Dry magazine ends every debate.
	if self.Ammo <= 0 {
		in := Intent{Weapon: WeaponActionReload, Posture: PostureHold}
		if self.Cover == CoverNone && CanEnterCoverFrom(self.Movement) {
			in.Stance = StanceActionEnterPartialCover
		}
		return in
	}

	// Hurt and outgunned: break contact.
	if self.Health < self.MaxHealth*lowHealthFraction && foe.Health > self.Health {
		if self.Cover == CoverFull {
			return Intent{Posture: PostureRetreat}
		}
		in := Intent{Movement: MovementActionSprintAway, Posture: PostureRetreat}
		if aggressive && self.CanShoot() {
			in.Movement = MovementActionWalkAway
			in.Weapon = WeaponActionFire
		}
		return in
	}

	// Rattled: get small and ride it out, shooting back if possible.
	if self.Suppression >= heavySuppressionLvl {
		in := Intent{Posture: PostureHold}
		switch {
		case self.Cover != CoverNone:
			if self.CanShoot() && aggressive {
				in.Weapon = WeaponActionFire
			}
		case CanEnterCoverFrom(self.Movement):
			in.Stance = StanceActionEnterPartialCover
		default:
			in.Stance = StanceActionCrouch
		}
		return in
	}

	// Opponent gone to ground: suppress if doctrine allows, else wait
	// them out behind a steadied aim.
	if foe.Cover == CoverFull {
		if self.CanShoot() && nowMs-foe.LastVisibleAtMs <= suppressiveRecencyWindowMs && self.Ammo >= SuppressiveBurstMin {
			return Intent{Weapon: WeaponActionSuppressiveFire, Posture: PostureHold}
		}
		return Intent{Weapon: WeaponActionAim, Posture: PostureHold}
	}

	// Standard engagement: close to preferred range, then trade.
	if self.DistanceM > preferredRangeM {
		in := Intent{Posture: PostureAdvance}
		if aggressive {
			in.Movement = MovementActionSprintToward
		} else {
			in.Movement = MovementActionWalkToward
			if self.CanShoot() {
				in.Weapon = WeaponActionFire
			}
		}
		return in
	}

	in := Intent{Posture: PostureHold}
	if self.CanShoot() {
		in.Weapon = WeaponActionFire
	}
	if !aggressive && self.Movement != MovementCrouching && !self.IsMoving {
		in.Stance = StanceActionCrouch
	}
	return in
}
