package readiness

import (
	"strings"
	"unicode/utf8"
)

const (
	baseScore          = 35
	perCategoryPoints  = 5
	maxCategoryPoints  = 30
	completenessPoints = 10
	longJDThreshold    = 800
	confidenceStep     = 2
	maxScore           = 100
)

// CalculateReadinessScore scores breadth of detected skills and completeness of the inputs.
func CalculateReadinessScore(skills ExtractedSkills, company, role, jdText string) int {
	score := baseScore
	score += min(skills.CategoriesPresent()*perCategoryPoints, maxCategoryPoints)
	if strings.TrimSpace(company) != "" {
		score += completenessPoints
	}
	if strings.TrimSpace(role) != "" {
		score += completenessPoints
	}
	if utf8.RuneCountInString(jdText) > longJDThreshold {
		score += completenessPoints
	}
	return min(score, maxScore)
}

// CalculateAdjustedScore applies the confidence map to a base score. It is
// always computed from the full map, never from a running delta.
func CalculateAdjustedScore(base int, confidence ConfidenceMap) int {
	adjustment := 0
	for _, state := range confidence {
		if state == ConfidenceKnow {
			adjustment += confidenceStep
		} else {
			adjustment -= confidenceStep
		}
	}
	return clamp(base+adjustment, 0, maxScore)
}

// ReadinessBand returns the headline shown next to a score.
func ReadinessBand(score int) string {
	switch {
	case score >= 80:
		return "Excellent! You are well prepared."
	case score >= 60:
		return "Good progress. Keep practicing!"
	default:
		return "Needs improvement. Follow the plan below."
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
