package analyzer

import (
	"reflect"
	"sync"
	"testing"

	"github.com/spigell/hr-screener/internal/skills"
)

func TestTokenize(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("building analyzer: %v", err)
	}

	got := tok.Tokenize("experience in machine learning, sql and python.")
	want := []string{"experience", "in", "machine", "learning", "sql", "and", "python"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: %q", got)
	}

	if empty := tok.Tokenize(""); len(empty) != 0 {
		t.Fatalf("expected no tokens for empty text, got %q", empty)
	}
}

func TestScreenerWithAnalyzer(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("building analyzer: %v", err)
	}

	screener := skills.NewScreener(tok, skills.DefaultVocabulary())
	found := screener.Extract("I know Python and have experience in Machine Learning and SQL")

	want := skills.NewSkillSet("python", "sql", "machine learning")
	if !found.Equal(want) {
		t.Fatalf("expected %v, got %v", want.Sorted(), found.Sorted())
	}
}

func TestTokenizeConcurrent(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("building analyzer: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := tok.Tokenize("project management"); len(got) != 2 {
				t.Errorf("expected 2 tokens, got %q", got)
			}
		}()
	}
	wg.Wait()
}

func TestTokenizeStripsPossessives(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("building analyzer: %v", err)
	}

	got := tok.Tokenize("python's ecosystem and the team’s leadership")
	want := []string{"python", "ecosystem", "and", "the", "team", "leadership"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: %q", got)
	}

	found := skills.NewScreener(tok, nil).Extract("Deep knowledge of Python's standard library")
	if !found.Equal(skills.NewSkillSet("python")) {
		t.Fatalf("expected python to be detected, got %v", found.Sorted())
	}
}

func TestScreenerWithInvalidUTF8(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("building analyzer: %v", err)
	}

	tokens := skills.Tokenize("python \xff java sql", tok)
	if want := []string{"python", "java", "sql"}; !reflect.DeepEqual(tokens, want) {
		t.Fatalf("unexpected tokens: %q", tokens)
	}

	found := skills.NewScreener(tok, nil).Extract("Skills: \x93Python\x94, SQL, machine learning, project management")
	want := skills.NewSkillSet("python", "sql", "machine learning", "project management")
	if !found.Equal(want) {
		t.Fatalf("expected %v, got %v", want.Sorted(), found.Sorted())
	}
}
