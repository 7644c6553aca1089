package gesture

import (
	"github.com/ayusman/mudra/internal/detector"
)

// Finger order used throughout the package: thumb, index, middle, ring,
// pinky.
const (
	thumb = iota
	index
	middle
	ring
	pinky
)

var (
	tipIDs = [5]int{detector.ThumbTip, detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}
	pipIDs = [5]int{detector.ThumbIP, detector.IndexPIP, detector.MiddlePIP, detector.RingPIP, detector.PinkyPIP}
	mcpIDs = [5]int{detector.ThumbMCP, detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP}
)

// scaleRef measures the hand size as the wrist to middle-MCP distance. A
// degenerate measurement falls back to the calibration size so the scaled
// margins stay sane.
func scaleRef(h *detector.Hand, th Thresholds) float64 {
	d := detector.Distance(h.Points[detector.Wrist], h.Points[detector.MiddleMCP])
	if d <= th.MinScaleRef {
		return th.ScaleNorm
	}
	return d
}

// fingersUp decides, per finger, whether it is extended.
//
// The thumb is extended when its tip is clearly above its own MCP and sticks
// out sideways past the MCP, away from the palm. Which direction counts as
// outward depends on handedness; with unknown handedness the thumb is never
// counted.
//
// Any other finger is extended when its tip is clearly above its PIP, or
// when both tip and PIP are above the MCP (a finger held straight but tilted
// enough that the strict check misses it).
func fingersUp(h *detector.Hand, handedness detector.Handedness, ref float64, th Thresholds) [5]bool {
	var up [5]bool
	scale := ref / th.ScaleNorm

	thumbTip := h.Points[detector.ThumbTip]
	thumbMCP := h.Points[detector.ThumbMCP]

	yAbove := thumbTip.Y < thumbMCP.Y-th.ThumbYAboveMCP*scale
	xOutward := false
	switch handedness {
	case detector.RightHand:
		xOutward = thumbTip.X < thumbMCP.X-th.ThumbXOutward*scale
	case detector.LeftHand:
		xOutward = thumbTip.X > thumbMCP.X+th.ThumbXOutward*scale
	}
	up[thumb] = yAbove && xOutward

	for f := index; f <= pinky; f++ {
		tipY := h.Points[tipIDs[f]].Y
		pipY := h.Points[pipIDs[f]].Y
		mcpY := h.Points[mcpIDs[f]].Y

		extended := tipY < pipY-th.FingerUpStrict*scale
		generallyUp := tipY < mcpY && pipY < mcpY
		up[f] = extended || generallyUp
	}

	return up
}

func countUp(up [5]bool) int {
	n := 0
	for _, u := range up {
		if u {
			n++
		}
	}
	return n
}
