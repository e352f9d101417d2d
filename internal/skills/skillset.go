package skills

import (
	"encoding/json"
	"sort"
)

// SkillSet is a deduplicated collection of skills. It records presence, not
// frequency, and has no ordering; use Sorted for display.
type SkillSet map[string]struct{}

func NewSkillSet(skills ...string) SkillSet {
	set := make(SkillSet, len(skills))
	for _, skill := range skills {
		set.Add(skill)
	}
	return set
}

func (s SkillSet) Add(skill string) {
	s[skill] = struct{}{}
}

func (s SkillSet) Has(skill string) bool {
	_, ok := s[skill]
	return ok
}

func (s SkillSet) Len() int {
	return len(s)
}

// Sorted returns the members in alphabetical order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// Intersect returns the skills present in both sets.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}

	out := make(SkillSet)
	for skill := range small {
		if large.Has(skill) {
			out.Add(skill)
		}
	}
	return out
}

// Difference returns the skills of s missing from other.
func (s SkillSet) Difference(other SkillSet) SkillSet {
	out := make(SkillSet)
	for skill := range s {
		if !other.Has(skill) {
			out.Add(skill)
		}
	}
	return out
}

// Equal reports whether both sets hold the same members.
func (s SkillSet) Equal(other SkillSet) bool {
	if len(s) != len(other) {
		return false
	}
	for skill := range s {
		if !other.Has(skill) {
			return false
		}
	}
	return true
}

func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = NewSkillSet(list...)
	return nil
}
