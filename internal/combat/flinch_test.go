package combat

import "testing"

// --- Severity curve ---

func TestFlinchSeverity_StrictlyDecreasingInResistance(t *testing.T) {
	const impulse = 30.0
	prev := 2.0
	for _, res := range []float64{5, 10, 20, 40, 80, 160} {
		sev := FlinchSeverity(impulse, res)
		if sev >= prev {
			t.Fatalf("severity must strictly decrease with resistance: %.4f at res %.0f (prev %.4f)", sev, res, prev)
		}
		prev = sev
	}
}

func TestFlinchSeverity_LowResistanceAmplified(t *testing.T) {
	const impulse = 30.0
	frail := FlinchSeverity(impulse, 10)
	ratio := impulse / 10.0
	plain := ratio / (ratio + 1.0)
	if frail <= plain {
		t.Fatalf("below the knee severity should exceed the plain ratio curve: %.4f vs %.4f", frail, plain)
	}
}

func TestFlinchSeverity_NoImpulseNoFlinch(t *testing.T) {
	if FlinchSeverity(0, 50) != 0 {
		t.Fatal("zero impulse should not flinch")
	}
}

// --- Flinch lifecycle ---

func TestFlinchState_LastShotClearsSeverity(t *testing.T) {
	var f FlinchState
	f.Apply(30, 50)
	if !f.Active() {
		t.Fatal("a qualifying hit should start a flinch")
	}
	for i := 0; i < FlinchShotCount-1; i++ {
		f.ConsumeShot()
		if f.Severity <= 0 {
			t.Fatalf("severity should persist through shot %d", i+1)
		}
	}
	f.ConsumeShot()
	if f.Severity != 0 || f.Active() {
		t.Fatal("consuming the last shot must reset severity to 0")
	}
}

func TestFlinchState_NewHitResetsNotAccumulates(t *testing.T) {
	var f FlinchState
	f.Apply(30, 50)
	first := f.Severity
	f.ConsumeShot()
	f.Apply(30, 50)
	if f.Severity != first {
		t.Fatalf("a repeat hit resets severity, never stacks: %.4f vs %.4f", f.Severity, first)
	}
	if f.RemainingShots != FlinchShotCount {
		t.Fatalf("a repeat hit restarts the shot counter, got %d", f.RemainingShots)
	}
}

func TestFlinchState_ProficiencyFloor(t *testing.T) {
	f := FlinchState{Severity: 1.0, RemainingShots: FlinchShotCount}
	if got := f.ProficiencyMul(); got != flinchProficiencyFloor {
		t.Fatalf("full severity should bottom out at the floor %.2f, got %.4f", flinchProficiencyFloor, got)
	}
	calm := FlinchState{}
	if calm.ProficiencyMul() != 1.0 {
		t.Fatal("no flinch means no penalty")
	}
}
