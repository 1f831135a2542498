package ratings

import "math"

const (
	// RawScale is the top of the stored review scale.
	RawScale = 10
	// DisplayScale is the top of the scale shown to users.
	DisplayScale = 5
)

// ToDisplayRating converts a 0-10 average into the 0-5 display scale.
// A nil or non-finite input yields nil, never zero.
func ToDisplayRating(raw *float64) *float64 {
	if raw == nil || math.IsNaN(*raw) || math.IsInf(*raw, 0) {
		return nil
	}
	v := *raw * DisplayScale / RawScale
	v = math.Max(0, math.Min(DisplayScale, v))
	return &v
}
