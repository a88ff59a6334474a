package combat

import (
	"strings"
	"testing"
)

func testSnapshot() OperatorSnapshot {
	return OperatorSnapshot{
		OperatorID:          1,
		Name:                "Reyes",
		Health:              100,
		MaxHealth:           100,
		Accuracy:            0.75,
		AccuracyProficiency: 0.65,
		FlinchResistance:    50,
		Ammo:                30,
		WeaponName:          "MK2 Carbine",
		DistanceM:           15,
	}
}

// --- Hashing ---

func TestSnapshotHash_Shape(t *testing.T) {
	h := testSnapshot().Hash()
	if len(h) != 64 {
		t.Fatalf("sha-256 digest should be 64 hex chars, got %d", len(h))
	}
	if h != strings.ToUpper(h) {
		t.Fatal("digest must be uppercase hex")
	}
	for _, c := range h {
		if !strings.ContainsRune("0123456789ABCDEF", c) {
			t.Fatalf("non-hex character %q in digest", c)
		}
	}
}

func TestSnapshotHash_EqualSnapshotsEqualHash(t *testing.T) {
	if testSnapshot().Hash() != testSnapshot().Hash() {
		t.Fatal("semantically equal snapshots must hash identically")
	}
}

func TestSnapshotHash_SensitiveToEveryField(t *testing.T) {
	base := testSnapshot().Hash()
	mutations := []func(*OperatorSnapshot){
		func(s *OperatorSnapshot) { s.OperatorID = 2 },
		func(s *OperatorSnapshot) { s.Name = "Vostok" },
		func(s *OperatorSnapshot) { s.Health = 99 },
		func(s *OperatorSnapshot) { s.MaxHealth = 120 },
		func(s *OperatorSnapshot) { s.Accuracy = 0.7 },
		func(s *OperatorSnapshot) { s.AccuracyProficiency = 0.6 },
		func(s *OperatorSnapshot) { s.FlinchResistance = 40 },
		func(s *OperatorSnapshot) { s.Ammo = 29 },
		func(s *OperatorSnapshot) { s.WeaponName = "C9 SMG" },
		func(s *OperatorSnapshot) { s.DistanceM = 16 },
	}
	for i, mutate := range mutations {
		s := testSnapshot()
		mutate(&s)
		if s.Hash() == base {
			t.Fatalf("mutation %d did not change the hash", i)
		}
	}
}

// --- Restore ---

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	op, err := testSnapshot().Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	got := CaptureSnapshot(op)
	if got != testSnapshot() {
		t.Fatalf("capture(restore(s)) should equal s:\n%+v\n%+v", got, testSnapshot())
	}
}

func TestSnapshotRestore_VolatileStateResets(t *testing.T) {
	op, err := testSnapshot().Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if op.Suppression != 0 || op.Flinch.Active() || op.Cover != CoverNone || op.IsMoving {
		t.Fatal("restored operators start calm, exposed and at rest")
	}
}

func TestSnapshotRestore_RejectsBadHealth(t *testing.T) {
	s := testSnapshot()
	s.Health = 150
	if _, err := s.Restore(); err == nil {
		t.Fatal("health above max must fail restore")
	}
	s = testSnapshot()
	s.Health = -1
	if _, err := s.Restore(); err == nil {
		t.Fatal("negative health must fail restore")
	}
}

func TestSnapshotRestore_RejectsBadRanges(t *testing.T) {
	bad := []func(*OperatorSnapshot){
		func(s *OperatorSnapshot) { s.Name = "" },
		func(s *OperatorSnapshot) { s.MaxHealth = 0 },
		func(s *OperatorSnapshot) { s.Accuracy = 1.5 },
		func(s *OperatorSnapshot) { s.AccuracyProficiency = -0.1 },
		func(s *OperatorSnapshot) { s.FlinchResistance = -5 },
		func(s *OperatorSnapshot) { s.Ammo = -1 },
	}
	for i, mutate := range bad {
		s := testSnapshot()
		mutate(&s)
		if _, err := s.Restore(); err == nil {
			t.Fatalf("mutation %d should have failed restore", i)
		}
	}
}

func TestSnapshotRestore_UnknownWeaponFallsBack(t *testing.T) {
	s := testSnapshot()
	s.WeaponName = "retired prototype"
	op, err := s.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if op.Weapon.Name != DefaultWeaponName {
		t.Fatalf("unknown weapon should restore as %s, got %s", DefaultWeaponName, op.Weapon.Name)
	}
}

func TestSnapshotRestore_ClampsAmmoToMagazine(t *testing.T) {
	s := testSnapshot()
	s.Ammo = 500
	op, err := s.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if op.Ammo != op.Weapon.MagazineSize {
		t.Fatalf("ammo should clamp to the magazine, got %d", op.Ammo)
	}
}

func TestSnapshotRestore_ClampsDistanceToMinimum(t *testing.T) {
	s := testSnapshot()
	s.DistanceM = 0
	op, err := s.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if op.DistanceM != minEngagementDistanceM {
		t.Fatalf("distance should clamp to %.1fm, got %.2f", minEngagementDistanceM, op.DistanceM)
	}
}
