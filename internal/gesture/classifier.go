package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Classifier maps one hand's landmarks to a Symbol. It is stateless; callers
// that need temporal smoothing wrap it with a Stabilizer.
type Classifier struct {
	th Thresholds
}

// NewClassifier creates a classifier with the default thresholds.
func NewClassifier() *Classifier {
	return &Classifier{th: DefaultThresholds()}
}

// NewClassifierWithThresholds creates a classifier with custom margins.
func NewClassifierWithThresholds(th Thresholds) *Classifier {
	return &Classifier{th: th}
}

// Classify returns the symbol for a single hand, or NoHand when hand is nil.
// Rules are tried in priority order; the first match wins and an unmatched
// pose yields Unknown rather than a guess.
func (c *Classifier) Classify(hand *detector.Hand) Symbol {
	if hand == nil {
		return NoHand
	}

	ref := scaleRef(hand, c.th)
	scale := ref / c.th.ScaleNorm

	handedness := hand.Handedness
	if handedness == detector.UnknownHand {
		handedness = inferHandedness(hand)
	}

	up := fingersUp(hand, handedness, ref, c.th)
	total := countUp(up)

	if sym, ok := c.thumbsUp(hand, up, scale); ok {
		return sym
	}
	if c.openPalm(hand, up, total, scale) {
		return OpenPalm
	}
	if c.pointUp(hand, up, scale) {
		return PointUp
	}
	if c.peace(hand, up, scale) {
		return Peace
	}
	return Unknown
}

// inferHandedness guesses which hand this is from knuckle order when the
// model did not say. In the mirrored view a right hand has its index knuckle
// left of its pinky knuckle.
func inferHandedness(h *detector.Hand) detector.Handedness {
	if h.Points[detector.IndexMCP].X < h.Points[detector.PinkyMCP].X {
		return detector.RightHand
	}
	return detector.LeftHand
}

// thumbsUp matches a raised thumb with the other four fingers curled. The
// finger count alone is not trusted: each fingertip must additionally sit
// below its PIP, which rejects a half-open hand drifting past the counter.
func (c *Classifier) thumbsUp(h *detector.Hand, up [5]bool, scale float64) (Symbol, bool) {
	if !up[thumb] || up[index] || up[middle] || up[ring] || up[pinky] {
		return Unknown, false
	}

	curl := c.th.ThumbsUpCurl * scale
	for f := index; f <= pinky; f++ {
		if h.Points[tipIDs[f]].Y <= h.Points[pipIDs[f]].Y+curl {
			return Unknown, false
		}
	}

	switch h.Handedness {
	case detector.RightHand:
		return ThumbUpRight, true
	case detector.LeftHand:
		return ThumbUpLeft, true
	default:
		return ThumbUp, true
	}
}

// openPalm matches four or five extended fingers. With all five up the pose
// is unambiguous; with exactly four the fingertips must also be spread
// apart, so a bunched half-fist does not read as a palm.
func (c *Classifier) openPalm(h *detector.Hand, up [5]bool, total int, scale float64) bool {
	if total < 4 {
		return false
	}
	if total == 5 {
		return true
	}

	spread := c.th.PalmSpread * scale
	indexMiddle := math.Abs(h.Points[detector.IndexTip].X - h.Points[detector.MiddleTip].X)
	middleRing := math.Abs(h.Points[detector.MiddleTip].X - h.Points[detector.RingTip].X)
	return indexMiddle > spread && middleRing > spread
}

// pointUp matches a lone raised index finger. The thumb may ride along if
// its tip stays tucked near the index knuckle.
func (c *Classifier) pointUp(h *detector.Hand, up [5]bool, scale float64) bool {
	indexOnly := !up[thumb] && up[index] && !up[middle] && !up[ring] && !up[pinky]
	withThumb := up[thumb] && up[index] && !up[middle] && !up[ring] && !up[pinky]
	if !indexOnly && !withThumb {
		return false
	}

	down := c.th.PointingDown * scale
	for f := middle; f <= pinky; f++ {
		if h.Points[tipIDs[f]].Y <= h.Points[pipIDs[f]].Y+down {
			return false
		}
	}

	if withThumb {
		d := detector.Distance(h.Points[detector.ThumbTip], h.Points[detector.IndexMCP])
		if d >= c.th.PointTuck*scale {
			return false
		}
	}
	return true
}

// peace matches raised index and middle fingers with ring and pinky folded.
// As with pointing, a tucked thumb is tolerated.
func (c *Classifier) peace(h *detector.Hand, up [5]bool, scale float64) bool {
	twoFingers := !up[thumb] && up[index] && up[middle] && !up[ring] && !up[pinky]
	withThumb := up[thumb] && up[index] && up[middle] && !up[ring] && !up[pinky]
	if !twoFingers && !withThumb {
		return false
	}

	down := c.th.PointingDown * scale
	for f := ring; f <= pinky; f++ {
		if h.Points[tipIDs[f]].Y <= h.Points[pipIDs[f]].Y+down {
			return false
		}
	}

	if withThumb {
		d := detector.Distance(h.Points[detector.ThumbTip], h.Points[detector.IndexMCP])
		if d >= c.th.PeaceTuck*scale {
			return false
		}
	}
	return true
}
