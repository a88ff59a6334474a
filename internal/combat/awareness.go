package combat

// Recognition constants. The floor is the time a trained observer needs
// to register and confirm a target no matter how sharp they are; the
// ceiling covers a rattled novice.
const (
	MinRecognitionDelayMs = 120
	MaxRecognitionDelayMs = 900

	// recognitionAccuracyFloor is the accuracy multiplier at zero
	// recognition progress, snapping a shot at a half-identified shape.
	recognitionAccuracyFloor = 0.55

	// Suppression stretches recognition: a fully suppressed observer
	// takes 80% longer to confirm a target.
	recognitionSuppressionStretch = 0.8
)

// IsVisible reports whether a target in the given cover state can be
// seen at all. Visibility is boolean: only full cover conceals.
func IsVisible(c CoverState) bool {
	return c != CoverFull
}

// VisibilityLevel returns the continuous visibility of a target in the
// given cover state: 1.0 exposed, 0.5 peeking, 0.0 concealed.
func VisibilityLevel(c CoverState) float64 {
	switch c {
	case CoverNone:
		return 1.0
	case CoverPartial:
		return 0.5
	default:
		return 0.0
	}
}

// RecognitionDelayMs returns how long an observer needs to pick up and
// confirm a freshly exposed target. Higher accuracy proficiency drives
// the delay toward the floor; suppression stretches it. Clamped to
// [MinRecognitionDelayMs, MaxRecognitionDelayMs].
func RecognitionDelayMs(proficiency, suppression float64) int64 {
	p := clamp01(proficiency)
	base := float64(MinRecognitionDelayMs) + (1.0-p)*float64(MaxRecognitionDelayMs-MinRecognitionDelayMs)
	base *= 1.0 + clamp01(suppression)*recognitionSuppressionStretch
	d := int64(base)
	if d < MinRecognitionDelayMs {
		d = MinRecognitionDelayMs
	}
	if d > MaxRecognitionDelayMs {
		d = MaxRecognitionDelayMs
	}
	return d
}

// RecognitionAccuracyMul converts recognition progress (0 = just
// noticed, 1 = fully confirmed) into an accuracy multiplier, linearly
// interpolating from the penalty floor to 1.0.
func RecognitionAccuracyMul(progress float64) float64 {
	p := clamp01(progress)
	return recognitionAccuracyFloor + (1.0-recognitionAccuracyFloor)*p
}
