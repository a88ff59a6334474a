package store

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/archanox/GUNRPG-sub001/internal/combat"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "battles.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	return s
}

func testSnapshot() combat.OperatorSnapshot {
	return combat.OperatorSnapshot{
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

func TestStore_SaveAndFetchSession(t *testing.T) {
	s := testStore(t)

	snap := testSnapshot()
	res, err := combat.Execute(snap, 42)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	id := uuid.New()
	if err := s.SaveSession(id, snap, 42, res); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec, err := s.BySession(id)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if rec.Seed != 42 || rec.OperatorName != "Reyes" {
		t.Fatalf("record fields mangled: %+v", rec)
	}
	if rec.SnapshotHash != snap.Hash() {
		t.Fatal("stored snapshot hash should match the input snapshot")
	}
	if rec.ResultHash != res.Result.Hash() {
		t.Fatal("stored result hash should match the execution result")
	}
	if rec.EventCount != len(res.BattleLog) {
		t.Fatalf("event count %d does not match log length %d", rec.EventCount, len(res.BattleLog))
	}
	if rec.XPGained != combat.XPForResult(res.OperatorDied, res.IsVictory) {
		t.Fatalf("stored xp %d disagrees with the result flags", rec.XPGained)
	}
}

func TestStore_RecentNewestFirst(t *testing.T) {
	s := testStore(t)
	snap := testSnapshot()

	for seed := int64(1); seed <= 3; seed++ {
		res, err := combat.Execute(snap, seed)
		if err != nil {
			t.Fatalf("execute seed %d: %v", seed, err)
		}
		if err := s.SaveSession(uuid.New(), snap, seed, res); err != nil {
			t.Fatalf("save seed %d: %v", seed, err)
		}
	}

	recs, err := s.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Seed != 3 || recs[1].Seed != 2 {
		t.Fatalf("records should come newest first, got seeds %d, %d", recs[0].Seed, recs[1].Seed)
	}
}

func TestStore_UnknownSessionFails(t *testing.T) {
	s := testStore(t)
	if _, err := s.BySession(uuid.New()); err == nil {
		t.Fatal("fetching a session that was never saved must fail")
	}
}
