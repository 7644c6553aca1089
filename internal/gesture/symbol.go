// Package gesture classifies hand landmark sets into a small vocabulary of
// control symbols and stabilizes the per-frame stream against flicker.
package gesture

// Symbol identifies a recognized hand pose. The string values double as the
// keys in the action binding config, so they are part of the wire surface.
type Symbol string

const (
	NoHand   Symbol = "NO_HAND"
	Unknown  Symbol = "UNKNOWN_GESTURE"
	OpenPalm Symbol = "OPEN_PALM"
	PointUp  Symbol = "POINT_UP"
	Peace    Symbol = "PEACE"

	// Thumbs-up is reported per hand so left and right can bind to
	// different actions. The plain variant appears only when the model
	// could not decide handedness.
	ThumbUp      Symbol = "THUMB_UP"
	ThumbUpLeft  Symbol = "THUMB_UP_LEFT"
	ThumbUpRight Symbol = "THUMB_UP_RIGHT"
)

func (s Symbol) String() string {
	return string(s)
}

// IsThumbUp reports whether s is any thumbs-up variant.
func (s Symbol) IsThumbUp() bool {
	return s == ThumbUp || s == ThumbUpLeft || s == ThumbUpRight
}

// Recognized reports whether s names an actual pose, as opposed to the
// NO_HAND and UNKNOWN_GESTURE sentinels.
func (s Symbol) Recognized() bool {
	return s != NoHand && s != Unknown
}
