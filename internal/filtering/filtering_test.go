package filtering

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/candidates"
	"github.com/spigell/hr-screener/internal/skills"
)

func scored(id string, percentage float64) *candidates.Candidate {
	return &candidates.Candidate{
		ID:   id,
		Name: "candidate " + id,
		Text: "resume " + id,
		Report: &skills.Report{
			Result: skills.MatchResult{Percentage: percentage},
		},
	}
}

func list(items ...*candidates.Candidate) *candidates.Candidates {
	return &candidates.Candidates{Items: items}
}

type stubReviewer struct {
	calls []ai.ReviewRequest
	err   error
}

func (s *stubReviewer) Review(_ context.Context, req ai.ReviewRequest) (*ai.Review, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	return &ai.Review{Recommendation: "interview", Summary: "ok"}, nil
}

func TestMinMatchDropsBelowThreshold(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	excludeFile := filepath.Join(t.TempDir(), "excluded.json")

	f := NewMinMatch(&MinMatchConfig{Threshold: 50, ExcludeFile: excludeFile}, zap.New(core))
	c := list(scored("a", 75), scored("b", 50), scored("c", 49.9), &candidates.Candidate{ID: "d"})

	got, step, err := f.Apply(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Len() != 2 || got.Items[0].ID != "a" || got.Items[1].ID != "b" {
		t.Fatalf("unexpected candidates left: %v", got.IDs())
	}
	if step != (Step{Initial: 4, Dropped: 2, Left: 2}) {
		t.Fatalf("unexpected step: %+v", step)
	}

	excluded, err := candidates.GetExcludedFromFile(excludeFile)
	if err != nil {
		t.Fatalf("read exclude file: %v", err)
	}
	ids := excluded.IDs()
	if len(ids) != 1 || ids[0] != "c" {
		t.Fatalf("expected only c in exclude file, got %v", ids)
	}
	if excluded.Items[0].Actor != candidates.ExcludeActorMinMatch {
		t.Fatalf("unexpected actor %q", excluded.Items[0].Actor)
	}

	if logs.FilterMessage("candidate below minimum match").Len() != 1 {
		t.Fatalf("expected one below-threshold log entry, got %d", logs.FilterMessage("candidate below minimum match").Len())
	}
}

func TestMinMatchDisabledWithoutThreshold(t *testing.T) {
	f := NewMinMatch(&MinMatchConfig{}, nil)
	if f.IsEnabled() {
		t.Fatalf("expected min_match to be disabled with zero threshold")
	}

	invalid := NewMinMatch(&MinMatchConfig{Threshold: 150}, nil)
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected validation error for threshold above 100")
	}
}

func TestExcludeFileFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")
	excluded := list(scored("b", 10)).ToExcluded(candidates.ExcludeActorUser, "")
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	f := NewExcludeFile(path, nil)
	got, step, err := f.Apply(context.Background(), list(scored("a", 10), scored("b", 20), scored("c", 30)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 2 || got.FindByID("b") != nil {
		t.Fatalf("expected b to be excluded, got %v", got.IDs())
	}
	if step.Dropped != 1 {
		t.Fatalf("expected one dropped candidate, got %+v", step)
	}
}

func TestExcludeFileMissingFile(t *testing.T) {
	f := NewExcludeFile(filepath.Join(t.TempDir(), "missing.json"), nil)
	got, step, err := f.Apply(context.Background(), list(scored("a", 10)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 1 || step.Dropped != 0 {
		t.Fatalf("expected nothing dropped, got %v %+v", got.IDs(), step)
	}
}

func TestAIReviewAnnotatesWithoutChangingScores(t *testing.T) {
	reviewer := &stubReviewer{}
	f := NewAIReview(&AIReviewConfig{Enabled: true, Provider: "gemini", Model: "m"}, &AIReviewDeps{
		Reviewer: reviewer,
		JobText:  "Python",
	})
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	got, step, err := f.Apply(context.Background(), list(scored("a", 75), scored("b", 0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step.Dropped != 0 || got.Len() != 2 {
		t.Fatalf("AI review must not drop candidates: %+v", step)
	}
	if got.Items[0].Percentage() != 75 || got.Items[1].Percentage() != 0 {
		t.Fatalf("AI review must not change scores")
	}
	for _, c := range got.Items {
		if c.Review == nil || c.Review.Recommendation != "interview" {
			t.Fatalf("candidate %s was not reviewed: %+v", c.ID, c.Review)
		}
	}
	if len(reviewer.calls) != 2 || reviewer.calls[0].JobText != "Python" || reviewer.calls[0].ResumeText != "resume a" {
		t.Fatalf("unexpected reviewer calls: %+v", reviewer.calls)
	}
}

func TestAIReviewRecordsErrors(t *testing.T) {
	f := NewAIReview(&AIReviewConfig{Enabled: true}, &AIReviewDeps{
		Reviewer: &stubReviewer{err: errors.New("quota")},
		JobText:  "Python",
	})

	got, _, err := f.Apply(context.Background(), list(scored("a", 75)))
	if err != nil {
		t.Fatalf("review errors must not fail the step: %v", err)
	}
	if got.Items[0].Review == nil || got.Items[0].Review.Error != "quota" {
		t.Fatalf("expected review error to be recorded, got %+v", got.Items[0].Review)
	}
}

func TestAIReviewValidate(t *testing.T) {
	f := NewAIReview(&AIReviewConfig{Enabled: true}, &AIReviewDeps{JobText: "Python"})
	if err := f.Validate(); err == nil {
		t.Fatalf("expected error without reviewer")
	}

	f = NewAIReview(&AIReviewConfig{Enabled: true}, &AIReviewDeps{Reviewer: &stubReviewer{}})
	if err := f.Validate(); err == nil {
		t.Fatalf("expected error without job text")
	}
}

func TestRunFilters(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reviewer := &stubReviewer{}

	filters := New([]Filter{
		NewMinMatch(&MinMatchConfig{Threshold: 50}, nil),
		NewAIReview(&AIReviewConfig{Enabled: true}, &AIReviewDeps{Reviewer: reviewer, JobText: "Python"}),
	}, zap.New(core))

	got, err := filters.RunFilters(context.Background(), list(scored("a", 75), scored("b", 25)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 1 || got.Items[0].ID != "a" {
		t.Fatalf("unexpected candidates left: %v", got.IDs())
	}
	if len(reviewer.calls) != 1 {
		t.Fatalf("expected AI review only for remaining candidates, got %d calls", len(reviewer.calls))
	}
	if logs.FilterMessage("filter step").Len() != 2 {
		t.Fatalf("expected two filter step logs, got %d", logs.FilterMessage("filter step").Len())
	}
}

func TestRunFiltersSkipsDisabled(t *testing.T) {
	reviewer := &stubReviewer{}
	filters := New([]Filter{
		NewAIReview(&AIReviewConfig{Enabled: true}, &AIReviewDeps{Reviewer: reviewer, JobText: "Python"}),
	}, nil)
	filters.DisableByName("ai_review", "no api key")

	if _, err := filters.RunFilters(context.Background(), list(scored("a", 75))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviewer.calls) != 0 {
		t.Fatalf("disabled filter must not run")
	}

	statuses := filters.Describe()
	if len(statuses) != 1 || statuses[0].Enabled || statuses[0].Reason != "no api key" {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}
}

func TestRunFiltersValidationError(t *testing.T) {
	filters := New([]Filter{
		NewAIReview(&AIReviewConfig{Enabled: true}, &AIReviewDeps{}),
	}, nil)

	if _, err := filters.RunFilters(context.Background(), list(scored("a", 75))); err == nil {
		t.Fatalf("expected validation error")
	}
}
