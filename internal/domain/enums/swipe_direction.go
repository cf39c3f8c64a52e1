package enums

import "strings"

type SwipeDirection string

const (
	DirectionInterested SwipeDirection = "interested"
	DirectionPassed     SwipeDirection = "passed"
)

// ParseSwipeDirection accepts both stored values and the client wire values
// ("right" is interest, "left" is a pass).
func ParseSwipeDirection(raw string) (SwipeDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "right", string(DirectionInterested):
		return DirectionInterested, true
	case "left", string(DirectionPassed):
		return DirectionPassed, true
	default:
		return "", false
	}
}
