package skills

import (
	"strings"
	"testing"
)

func TestExtractSkills(t *testing.T) {
	t.Parallel()

	vocabulary := NewVocabulary("python", "sql", "machine learning", "java", "project management")

	tests := []struct {
		name   string
		text   string
		expect []string
	}{
		{
			name:   "single words and phrases",
			text:   "I know Python and have experience in Machine Learning and SQL",
			expect: []string{"machine learning", "python", "sql"},
		},
		{
			name:   "mixed case phrase",
			text:   "Led Project Management for three teams",
			expect: []string{"project management"},
		},
		{
			name:   "phrase words not adjacent",
			text:   "machine operators, learning quickly",
			expect: []string{},
		},
		{
			name:   "phrase words in wrong order",
			text:   "learning machine",
			expect: []string{},
		},
		{
			name:   "repeated skill counted once",
			text:   "python python PYTHON",
			expect: []string{"python"},
		},
		{
			name:   "partial word is not a match",
			text:   "javascript developer",
			expect: []string{},
		},
		{
			name:   "phrase at end of text",
			text:   "strong in machine",
			expect: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractSkills(Tokenize(tt.text, SimpleTokenizer{}), vocabulary)
			if strings.Join(got.Sorted(), ",") != strings.Join(tt.expect, ",") {
				t.Fatalf("expected %q, got %q", tt.expect, got.Sorted())
			}
		})
	}
}

func TestExtractSkillsIsSubsetOfVocabulary(t *testing.T) {
	vocabulary := DefaultVocabulary()
	text := "Python, Java, JavaScript, Rust, Go, data analysis, problem solving and more leadership"

	got := ExtractSkills(Tokenize(text, SimpleTokenizer{}), vocabulary)
	if got.Len() == 0 {
		t.Fatalf("expected some skills to be found")
	}
	for skill := range got {
		if !vocabulary.Contains(skill) {
			t.Fatalf("extracted skill %q is not in the vocabulary", skill)
		}
	}
}

func TestExtractSkillsDeterministic(t *testing.T) {
	vocabulary := DefaultVocabulary()
	text := "React, HTML and CSS with strong communication and data analysis"

	first := ExtractSkills(Tokenize(text, SimpleTokenizer{}), vocabulary)
	for i := 0; i < 20; i++ {
		again := ExtractSkills(Tokenize(text, SimpleTokenizer{}), vocabulary)
		if !again.Equal(first) {
			t.Fatalf("run %d: expected %q, got %q", i, first.Sorted(), again.Sorted())
		}
	}
}

func TestExtractSkillsEmptyInputs(t *testing.T) {
	if got := ExtractSkills(nil, DefaultVocabulary()); got.Len() != 0 {
		t.Fatalf("expected empty set for no tokens, got %q", got.Sorted())
	}
	if got := ExtractSkills([]string{"python"}, NewVocabulary()); got.Len() != 0 {
		t.Fatalf("expected empty set for empty vocabulary, got %q", got.Sorted())
	}
	if got := ExtractSkills([]string{"python"}, nil); got.Len() != 0 {
		t.Fatalf("expected empty set for nil vocabulary, got %q", got.Sorted())
	}
}

func TestNewVocabularyNormalizes(t *testing.T) {
	v := NewVocabulary("  Machine   Learning ", "machine learning", "", "   ", "SQL")

	if v.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d: %q", v.Len(), v.Entries())
	}
	if !v.Contains("machine learning") || !v.Contains("sql") {
		t.Fatalf("unexpected entries: %q", v.Entries())
	}
	if v.MaxWords() != 2 {
		t.Fatalf("expected max words 2, got %d", v.MaxWords())
	}
}
