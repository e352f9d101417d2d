package skills

import "fmt"

// MatchResult is the overlap between a candidate's skills and the required ones.
type MatchResult struct {
	Matched       SkillSet `json:"matched"`
	Missing       SkillSet `json:"missing"`
	TotalRequired int      `json:"total_required"`
	// Percentage is in [0, 100]. It is 0 when nothing is required.
	Percentage float64 `json:"percentage"`
}

// Match intersects the two sets and scores the share of required skills found.
func Match(candidate, required SkillSet) MatchResult {
	if candidate == nil {
		candidate = SkillSet{}
	}
	if required == nil {
		required = SkillSet{}
	}

	matched := candidate.Intersect(required)
	result := MatchResult{
		Matched:       matched,
		Missing:       required.Difference(candidate),
		TotalRequired: required.Len(),
	}

	if result.TotalRequired > 0 {
		result.Percentage = float64(matched.Len()) / float64(result.TotalRequired) * 100
	}

	return result
}

// FormatPercentage renders a percentage with one decimal place.
func FormatPercentage(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
