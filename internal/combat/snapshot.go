package combat

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// OperatorSnapshot is the plain serializable form of an operator's
// combat-relevant state. It is the round boundary: a snapshot plus a
// seed is sufficient to re-run a session bit for bit. Fields are
// exported data only; a restored operator rebuilds the rest (flinch,
// suppression, cover) at round-start defaults.
type OperatorSnapshot struct {
	OperatorID          int     `json:"operatorId"`
	Name                string  `json:"name"`
	Health              float64 `json:"health"`
	MaxHealth           float64 `json:"maxHealth"`
	Accuracy            float64 `json:"accuracy"`
	AccuracyProficiency float64 `json:"accuracyProficiency"`
	FlinchResistance    float64 `json:"flinchResistance"`
	Ammo                int     `json:"ammo"`
	WeaponName          string  `json:"weaponName"`
	DistanceM           float64 `json:"distanceM"`
}

// CaptureSnapshot extracts the serializable state of op.
func CaptureSnapshot(op *Operator) OperatorSnapshot {
	return OperatorSnapshot{
		OperatorID:          op.ID,
		Name:                op.Name,
		Health:              op.Health,
		MaxHealth:           op.MaxHealth,
		Accuracy:            op.Accuracy,
		AccuracyProficiency: op.AccuracyProficiency,
		FlinchResistance:    op.FlinchResistance,
		Ammo:                op.Ammo,
		WeaponName:          op.Weapon.Name,
		DistanceM:           op.DistanceM,
	}
}

// Validate checks the snapshot's numeric ranges. A snapshot that fails
// here signals a caller bug, not a recoverable condition.
func (s OperatorSnapshot) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("snapshot: operator %d has no name", s.OperatorID)
	}
	if s.MaxHealth <= 0 {
		return fmt.Errorf("snapshot: %s: max health %.1f must be positive", s.Name, s.MaxHealth)
	}
	if s.Health < 0 || s.Health > s.MaxHealth {
		return fmt.Errorf("snapshot: %s: health %.1f outside [0, %.1f]", s.Name, s.Health, s.MaxHealth)
	}
	if s.Accuracy < 0 || s.Accuracy > 1 {
		return fmt.Errorf("snapshot: %s: accuracy %.2f outside [0, 1]", s.Name, s.Accuracy)
	}
	if s.AccuracyProficiency < 0 || s.AccuracyProficiency > 1 {
		return fmt.Errorf("snapshot: %s: proficiency %.2f outside [0, 1]", s.Name, s.AccuracyProficiency)
	}
	if s.FlinchResistance < 0 {
		return fmt.Errorf("snapshot: %s: flinch resistance %.1f negative", s.Name, s.FlinchResistance)
	}
	if s.Ammo < 0 {
		return fmt.Errorf("snapshot: %s: ammo %d negative", s.Name, s.Ammo)
	}
	return nil
}

// Restore builds a live operator from the snapshot. Unknown weapon
// names fall back to the default loadout; everything else must
// validate. Volatile state (suppression, flinch, cover, movement)
// restarts at round defaults.
func (s OperatorSnapshot) Restore() (*Operator, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	distanceM := s.DistanceM
	if distanceM < minEngagementDistanceM {
		distanceM = minEngagementDistanceM
	}
	w := WeaponByName(s.WeaponName)
	ammo := s.Ammo
	if ammo > w.MagazineSize {
		ammo = w.MagazineSize
	}
	return &Operator{
		ID:                  s.OperatorID,
		Name:                s.Name,
		Health:              s.Health,
		MaxHealth:           s.MaxHealth,
		Accuracy:            s.Accuracy,
		AccuracyProficiency: s.AccuracyProficiency,
		FlinchResistance:    s.FlinchResistance,
		Ammo:                ammo,
		Weapon:              w,
		DistanceM:           distanceM,
		Movement:            MovementStationary,
		Posture:             PostureHold,
		Cover:               CoverNone,
	}, nil
}

// canonical returns the stable string encoding hashed for replay
// verification. Field order is fixed, floats are rendered at four
// decimals, and nothing else may ever feed the digest: two semantically
// equal snapshots must always produce the same bytes.
func (s OperatorSnapshot) canonical() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "id=%d|", s.OperatorID)
	fmt.Fprintf(&sb, "name=%s|", s.Name)
	fmt.Fprintf(&sb, "hp=%.4f|", s.Health)
	fmt.Fprintf(&sb, "maxhp=%.4f|", s.MaxHealth)
	fmt.Fprintf(&sb, "acc=%.4f|", s.Accuracy)
	fmt.Fprintf(&sb, "prof=%.4f|", s.AccuracyProficiency)
	fmt.Fprintf(&sb, "flinchres=%.4f|", s.FlinchResistance)
	fmt.Fprintf(&sb, "ammo=%d|", s.Ammo)
	fmt.Fprintf(&sb, "weapon=%s|", s.WeaponName)
	fmt.Fprintf(&sb, "dist=%.4f", s.DistanceM)
	return sb.String()
}

// Hash returns the SHA-256 digest of the canonical encoding as 64
// uppercase hex characters.
func (s OperatorSnapshot) Hash() string {
	sum := sha256.Sum256([]byte(s.canonical()))
	return strings.ToUpper(fmt.Sprintf("%x", sum))
}
