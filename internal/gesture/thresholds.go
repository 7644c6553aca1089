package gesture

// Thresholds holds the geometric margins used by the classifier. All values
// are in normalized image units calibrated for a hand whose wrist to
// middle-MCP distance equals ScaleNorm; at run time each margin is scaled by
// the measured hand size so the rules behave the same near and far from the
// camera.
type Thresholds struct {
	// FingerUpStrict is how far above its PIP a fingertip must sit to
	// count the finger as extended outright.
	FingerUpStrict float64

	// ThumbYAboveMCP is how far above its own MCP the thumb tip must sit.
	ThumbYAboveMCP float64

	// ThumbXOutward is how far past its MCP, toward the outside of the
	// hand, the thumb tip must sit. The direction depends on handedness.
	ThumbXOutward float64

	// ThumbsUpCurl is how far below its PIP each non-thumb fingertip must
	// sit for a thumbs-up to be accepted.
	ThumbsUpCurl float64

	// PointingDown is how far below its PIP each idle fingertip must sit
	// for pointing and peace poses.
	PointingDown float64

	// PalmSpread is the minimum horizontal gap between neighboring
	// fingertips when only four fingers are up.
	PalmSpread float64

	// PointTuck and PeaceTuck bound the thumb tip's distance from the
	// index MCP when the thumb is raised alongside the active fingers.
	PointTuck float64
	PeaceTuck float64

	// ScaleNorm is the reference hand size the margins are calibrated
	// for. It also serves as the fallback when the measured size is
	// degenerate (below MinScaleRef).
	ScaleNorm   float64
	MinScaleRef float64
}

// DefaultThresholds returns the tuned margins.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FingerUpStrict: 0.02,
		ThumbYAboveMCP: 0.03,
		ThumbXOutward:  0.02,
		ThumbsUpCurl:   0.01,
		PointingDown:   0.02,
		PalmSpread:     0.03,
		PointTuck:      0.10,
		PeaceTuck:      0.12,
		ScaleNorm:      0.15,
		MinScaleRef:    0.01,
	}
}
