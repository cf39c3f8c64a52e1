package rules

import "strings"

// CompletionPercentage scores how filled-in a profile is. Bio carries more
// weight than the list sections since it is what counterparts actually read.
func CompletionPercentage(bio string, education, experience []string, interestCount int) int {
	score := 0
	if strings.TrimSpace(bio) != "" {
		score += 40
	}
	if len(education) > 0 {
		score += 20
	}
	if len(experience) > 0 {
		score += 20
	}
	if interestCount > 0 {
		score += 20
	}
	return score
}
