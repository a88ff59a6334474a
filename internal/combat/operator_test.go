package combat

import "testing"

// --- Movement bookkeeping ---

func TestBeginMovement_EndTime(t *testing.T) {
	op := testOperator("Reyes", 1)
	op.BeginMovement(1000, MovementWalking, 500)
	if op.MovementEndTimeMs != 1500 {
		t.Fatalf("walking 500ms from t=1000 should end at 1500, got %d", op.MovementEndTimeMs)
	}
	if !op.IsMoving || op.Movement != MovementWalking {
		t.Fatal("operator should be walking until the leg completes")
	}
	op.FinishMovement()
	if op.IsMoving || op.Movement != MovementStationary {
		t.Fatal("finishing the leg reverts to stationary")
	}
}

func TestBeginMovement_SpoilsSteadiedAim(t *testing.T) {
	op := testOperator("Reyes", 1)
	op.AimSteadied = true
	op.BeginMovement(0, MovementWalking, 500)
	if op.AimSteadied {
		t.Fatal("moving must spoil a steadied aim")
	}
}

func TestInterruptCommitments_MidLeg(t *testing.T) {
	op := testOperator("Reyes", 1)
	op.BeginMovement(1000, MovementWalking, 500)
	ev := op.InterruptCommitments(1200)
	if ev == nil || ev.Kind != EventMovementCancelled {
		t.Fatal("interrupting mid-leg should produce a cancellation event")
	}
	if ev.DurationMs != 300 {
		t.Fatalf("cancellation should carry 300ms remaining, got %d", ev.DurationMs)
	}
}

func TestInterruptCommitments_NothingPending(t *testing.T) {
	op := testOperator("Reyes", 1)
	if ev := op.InterruptCommitments(0); ev != nil {
		t.Fatal("nothing in progress means nothing to cancel")
	}
}

// --- Damage ---

func TestApplyDamage_FatalClampsAtZero(t *testing.T) {
	op := testOperator("Reyes", 1)
	op.Health = 10
	if !op.ApplyDamage(25) {
		t.Fatal("the blow should be fatal")
	}
	if op.Health != 0 {
		t.Fatalf("health clamps at zero, got %.1f", op.Health)
	}
	if op.Alive() {
		t.Fatal("a dead operator is not alive")
	}
}

func TestApplyDamage_NonFatal(t *testing.T) {
	op := testOperator("Reyes", 1)
	if op.ApplyDamage(30) {
		t.Fatal("30 damage on full health is survivable")
	}
	if op.Health != 70 {
		t.Fatalf("expected 70 health, got %.1f", op.Health)
	}
}

// --- Suppression over time ---

func TestAdvanceTime_DecaysSuppression(t *testing.T) {
	op := testOperator("Reyes", 1)
	op.AddSuppression(0.8)
	op.AdvanceTime(2000)
	if op.Suppression >= 0.8 {
		t.Fatalf("suppression should decay over quiet time, got %.3f", op.Suppression)
	}
	if op.Suppression < 0 {
		t.Fatal("suppression never goes negative")
	}
}

func TestAddSuppression_Clamped(t *testing.T) {
	op := testOperator("Reyes", 1)
	op.AddSuppression(5)
	if op.Suppression != MaxSuppressionLevel {
		t.Fatalf("suppression clamps at %.1f, got %.3f", MaxSuppressionLevel, op.Suppression)
	}
}

// --- Proficiency under flinch ---

func TestEffectiveProficiency_FlinchDrags(t *testing.T) {
	op := testOperator("Reyes", 1)
	calm := op.EffectiveProficiency()
	op.Flinch.Apply(40, op.FlinchResistance)
	flinched := op.EffectiveProficiency()
	if flinched >= calm {
		t.Fatalf("flinch must drag proficiency down: %.3f vs %.3f", flinched, calm)
	}
}
