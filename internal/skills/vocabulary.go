package skills

import (
	"sort"
	"strings"
)

// DefaultSkills is the reference list shipped with the screener.
var DefaultSkills = []string{
	"python", "java", "javascript", "sql", "html", "css", "react",
	"machine learning", "data analysis", "project management",
	"communication", "leadership", "problem solving",
}

// Vocabulary is an immutable set of canonical skills. Entries are lowercase
// and whitespace-normalized; multi-word entries are matched as phrases.
type Vocabulary struct {
	// words per entry, keyed by the canonical entry
	phrases  map[string][]string
	maxWords int
}

// NewVocabulary normalizes the given entries. Blank entries and duplicates
// after normalization are dropped.
func NewVocabulary(entries ...string) *Vocabulary {
	v := &Vocabulary{phrases: make(map[string][]string, len(entries))}

	for _, entry := range entries {
		words := strings.Fields(Normalize(entry))
		if len(words) == 0 {
			continue
		}

		canonical := strings.Join(words, " ")
		if _, ok := v.phrases[canonical]; ok {
			continue
		}

		v.phrases[canonical] = words
		if len(words) > v.maxWords {
			v.maxWords = len(words)
		}
	}

	return v
}

// DefaultVocabulary returns a vocabulary built from DefaultSkills.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(DefaultSkills...)
}

func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.phrases)
}

// Contains reports whether skill is a canonical entry.
func (v *Vocabulary) Contains(skill string) bool {
	if v == nil {
		return false
	}
	_, ok := v.phrases[skill]
	return ok
}

// MaxWords is the word count of the longest entry.
func (v *Vocabulary) MaxWords() int {
	if v == nil {
		return 0
	}
	return v.maxWords
}

// Entries returns the canonical entries sorted alphabetically.
func (v *Vocabulary) Entries() []string {
	if v == nil {
		return []string{}
	}

	entries := make([]string, 0, len(v.phrases))
	for entry := range v.phrases {
		entries = append(entries, entry)
	}
	sort.Strings(entries)

	return entries
}

func (v *Vocabulary) words(entry string) []string {
	return v.phrases[entry]
}
