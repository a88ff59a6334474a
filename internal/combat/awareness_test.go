package combat

import "testing"

// --- Visibility ---

func TestVisibility_OnlyFullCoverConceals(t *testing.T) {
	if !IsVisible(CoverNone) || !IsVisible(CoverPartial) {
		t.Fatal("none and partial cover leave the target visible")
	}
	if IsVisible(CoverFull) {
		t.Fatal("full cover conceals")
	}
}

func TestVisibilityLevel(t *testing.T) {
	if VisibilityLevel(CoverNone) != 1.0 {
		t.Fatal("exposed target should read 1.0")
	}
	if VisibilityLevel(CoverPartial) != 0.5 {
		t.Fatal("peeking target should read 0.5")
	}
	if VisibilityLevel(CoverFull) != 0.0 {
		t.Fatal("concealed target should read 0.0")
	}
}

// --- Recognition delay ---

func TestRecognitionDelay_ProficiencyDrivesTowardFloor(t *testing.T) {
	sharp := RecognitionDelayMs(1.0, 0)
	dull := RecognitionDelayMs(0.1, 0)
	if sharp >= dull {
		t.Fatalf("sharper observer must recognize faster: %d vs %d", sharp, dull)
	}
	if sharp != MinRecognitionDelayMs {
		t.Fatalf("perfect proficiency should hit the floor %d, got %d", MinRecognitionDelayMs, sharp)
	}
}

func TestRecognitionDelay_SuppressionStretches(t *testing.T) {
	calm := RecognitionDelayMs(0.6, 0)
	rattled := RecognitionDelayMs(0.6, 1.0)
	if rattled <= calm {
		t.Fatalf("suppression must stretch recognition: %d vs %d", rattled, calm)
	}
}

func TestRecognitionDelay_Clamped(t *testing.T) {
	if d := RecognitionDelayMs(0, 1.0); d > MaxRecognitionDelayMs {
		t.Fatalf("delay must clamp at %d, got %d", MaxRecognitionDelayMs, d)
	}
	if d := RecognitionDelayMs(1.0, 0); d < MinRecognitionDelayMs {
		t.Fatalf("delay must clamp at %d, got %d", MinRecognitionDelayMs, d)
	}
}

// --- Recognition accuracy curve ---

func TestRecognitionAccuracyMul_LinearBetweenFloorAndOne(t *testing.T) {
	if RecognitionAccuracyMul(0) != recognitionAccuracyFloor {
		t.Fatal("zero progress should sit on the penalty floor")
	}
	if RecognitionAccuracyMul(1) != 1.0 {
		t.Fatal("full progress should carry no penalty")
	}
	mid := RecognitionAccuracyMul(0.5)
	want := recognitionAccuracyFloor + (1.0-recognitionAccuracyFloor)*0.5
	if mid != want {
		t.Fatalf("half progress should interpolate linearly: want %.3f, got %.3f", want, mid)
	}
}
