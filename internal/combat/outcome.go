package combat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// XP awards for the three possible mission endings. The set is exact:
// no partial credit exists anywhere downstream.
const (
	XPDeath    = 0
	XPSurvival = 50
	XPVictory  = 100
)

// ErrInvalidOutcome is wrapped by every outcome construction failure.
// An invalid outcome is a caller bug, not a recoverable condition.
var ErrInvalidOutcome = errors.New("combat: invalid mission outcome")

// MissionOutcome is the record handed to downstream collaborators
// (progression, sync) when a session ends. It is immutable once built;
// NewMissionOutcome is the only way to get one, so an outcome in hand
// is always internally consistent.
type MissionOutcome struct {
	SessionID     uuid.UUID `json:"sessionId"`
	OperatorID    int       `json:"operatorId"`
	OperatorDied  bool      `json:"operatorDied"`
	IsVictory     bool      `json:"isVictory"`
	XPGained      int       `json:"xpGained"`
	GearLost      []string  `json:"gearLost"`
	TurnsSurvived int       `json:"turnsSurvived"`
	DamageTaken   float64   `json:"damageTaken"`
}

// NewMissionOutcome validates and builds a mission outcome. The gear
// list may be empty but never nil; XP must be exactly one of the three
// award values and must agree with the died/victory flags.
func NewMissionOutcome(sessionID uuid.UUID, operatorID int, died, victory bool, xp int, gearLost []string, turnsSurvived int, damageTaken float64) (MissionOutcome, error) {
	if victory && died {
		return MissionOutcome{}, fmt.Errorf("%w: victory and death cannot both be true", ErrInvalidOutcome)
	}
	if xp < 0 {
		return MissionOutcome{}, fmt.Errorf("%w: negative xp %d", ErrInvalidOutcome, xp)
	}
	if turnsSurvived < 0 {
		return MissionOutcome{}, fmt.Errorf("%w: negative turns survived %d", ErrInvalidOutcome, turnsSurvived)
	}
	if damageTaken < 0 {
		return MissionOutcome{}, fmt.Errorf("%w: negative damage taken %.1f", ErrInvalidOutcome, damageTaken)
	}
	if gearLost == nil {
		return MissionOutcome{}, fmt.Errorf("%w: gear-lost list must be present (may be empty)", ErrInvalidOutcome)
	}
	if xp != XPForResult(died, victory) {
		return MissionOutcome{}, fmt.Errorf("%w: xp %d does not match died=%t victory=%t", ErrInvalidOutcome, xp, died, victory)
	}
	return MissionOutcome{
		SessionID:     sessionID,
		OperatorID:    operatorID,
		OperatorDied:  died,
		IsVictory:     victory,
		XPGained:      xp,
		GearLost:      gearLost,
		TurnsSurvived: turnsSurvived,
		DamageTaken:   damageTaken,
	}, nil
}

// XPForResult maps the ending flags to the exact award: death pays
// nothing, surviving without the kill pays half, victory pays full.
func XPForResult(died, victory bool) int {
	switch {
	case died:
		return XPDeath
	case victory:
		return XPVictory
	default:
		return XPSurvival
	}
}
