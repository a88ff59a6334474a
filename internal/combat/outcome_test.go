package combat

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func mustOutcome(t *testing.T, died, victory bool, xp int) MissionOutcome {
	t.Helper()
	out, err := NewMissionOutcome(uuid.New(), 1, died, victory, xp, []string{}, 3, 40)
	if err != nil {
		t.Fatalf("outcome should be valid: %v", err)
	}
	return out
}

// --- XP mapping ---

func TestXPForResult(t *testing.T) {
	if XPForResult(true, false) != XPDeath {
		t.Fatal("death pays nothing")
	}
	if XPForResult(false, false) != XPSurvival {
		t.Fatal("survival without the kill pays half")
	}
	if XPForResult(false, true) != XPVictory {
		t.Fatal("victory pays full")
	}
}

// --- Construction ---

func TestNewMissionOutcome_Valid(t *testing.T) {
	out := mustOutcome(t, false, true, XPVictory)
	if !out.IsVictory || out.OperatorDied {
		t.Fatal("flags should survive construction")
	}
	if out.GearLost == nil {
		t.Fatal("gear list must be present even when empty")
	}
}

func TestNewMissionOutcome_VictoryAndDeathContradict(t *testing.T) {
	_, err := NewMissionOutcome(uuid.New(), 1, true, true, XPVictory, []string{}, 3, 40)
	if !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("victory plus death must be rejected, got %v", err)
	}
}

func TestNewMissionOutcome_RejectsNegatives(t *testing.T) {
	if _, err := NewMissionOutcome(uuid.New(), 1, false, false, -1, []string{}, 3, 40); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatal("negative xp must be rejected")
	}
	if _, err := NewMissionOutcome(uuid.New(), 1, false, false, XPSurvival, []string{}, -1, 40); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatal("negative turns must be rejected")
	}
	if _, err := NewMissionOutcome(uuid.New(), 1, false, false, XPSurvival, []string{}, 3, -0.5); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatal("negative damage must be rejected")
	}
}

func TestNewMissionOutcome_RejectsNilGearList(t *testing.T) {
	if _, err := NewMissionOutcome(uuid.New(), 1, false, false, XPSurvival, nil, 3, 40); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatal("a missing gear list must be rejected")
	}
}

func TestNewMissionOutcome_XPMustMatchFlags(t *testing.T) {
	// 50 XP with a victory flag is neither of the legal pairings.
	if _, err := NewMissionOutcome(uuid.New(), 1, false, true, XPSurvival, []string{}, 3, 40); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatal("xp that disagrees with the flags must be rejected")
	}
	if _, err := NewMissionOutcome(uuid.New(), 1, true, false, XPVictory, []string{}, 3, 40); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatal("a dead operator cannot collect victory xp")
	}
	// 75 is not one of the three awards at all.
	if _, err := NewMissionOutcome(uuid.New(), 1, false, false, 75, []string{}, 3, 40); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatal("xp outside {0, 50, 100} must be rejected")
	}
}

func TestNewMissionOutcome_AllThreeEndings(t *testing.T) {
	mustOutcome(t, true, false, XPDeath)
	mustOutcome(t, false, false, XPSurvival)
	mustOutcome(t, false, true, XPVictory)
}
