package candidates

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spigell/hr-screener/internal/skills"
)

func TestScreenAll(t *testing.T) {
	list := &Candidates{Items: []*Candidate{
		{ID: "1", Text: "Python, SQL and Java"},
		{ID: "2", Text: "React and CSS"},
		{ID: "3", Text: ""},
	}}
	for i := 0; i < 20; i++ {
		list.Items = append(list.Items, &Candidate{ID: fmt.Sprintf("x%d", i), Text: "python"})
	}

	screener := skills.NewScreener(skills.SimpleTokenizer{}, nil)
	if err := ScreenAll(context.Background(), list, screener, "Python, SQL, Java and Project Management", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := list.FindByID("1").Percentage(); got != 75 {
		t.Fatalf("expected 75%%, got %v", got)
	}
	if got := list.FindByID("2").Percentage(); got != 0 {
		t.Fatalf("expected 0%%, got %v", got)
	}
	if got := list.FindByID("x7").Percentage(); got != 25 {
		t.Fatalf("expected 25%%, got %v", got)
	}
	for _, c := range list.Items {
		if c.Report == nil || c.Report.RequiredSkills.Len() != 4 {
			t.Fatalf("candidate %s was not screened: %+v", c.ID, c.Report)
		}
	}
}

func TestScreenAllDegraded(t *testing.T) {
	list := &Candidates{Items: []*Candidate{{ID: "1", Text: "Python"}}}

	if err := ScreenAll(context.Background(), list, skills.NewScreener(nil, nil), "Python", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !list.Items[0].Report.Degraded {
		t.Fatalf("expected degraded report")
	}
}

func TestScreenAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	list := &Candidates{Items: []*Candidate{{ID: "1", Text: "Python"}}}
	err := ScreenAll(ctx, list, skills.NewScreener(skills.SimpleTokenizer{}, nil), "Python", 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
