package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/candidates"
	"github.com/spigell/hr-screener/internal/logger"
)

type aiReviewFilter struct {
	enabled bool
	reason  string
	config  *AIReviewConfig
	deps    *AIReviewDeps
}

type AIReviewDeps struct {
	Logger   *zap.Logger
	Reviewer ai.Reviewer
	JobText  string
}

type AIReviewConfig struct {
	Enabled  bool
	Provider string
	Model    string
}

// NewAIReview creates a step that attaches an advisory AI review to every
// candidate. It never drops candidates and never touches their scores.
func NewAIReview(cfg *AIReviewConfig, deps *AIReviewDeps) Filter {
	if cfg == nil {
		cfg = &AIReviewConfig{}
	}
	f := &aiReviewFilter{
		enabled: cfg.Enabled,
		config:  cfg,
		deps:    deps,
	}
	if !cfg.Enabled {
		f.reason = "disabled in configuration"
	}
	return f
}

func (f *aiReviewFilter) Name() string { return "ai_review" }

func (f *aiReviewFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *aiReviewFilter) IsEnabled() bool { return f.enabled }

func (f *aiReviewFilter) Validate() error {
	if f.deps == nil || f.deps.Reviewer == nil {
		return fmt.Errorf("reviewer is not initialized: filter is not usable")
	}
	if strings.TrimSpace(f.deps.JobText) == "" {
		return fmt.Errorf("job description is required for AI review")
	}
	return nil
}

func (f *aiReviewFilter) Apply(ctx context.Context, c *candidates.Candidates) (*candidates.Candidates, Step, error) {
	log := logger.WithAIFields(f.deps.Logger, f.config.Provider, f.config.Model)

	reviewed := 0
	for _, candidate := range c.Items {
		if err := ctx.Err(); err != nil {
			return c, Step{}, err
		}
		if candidate.Report == nil {
			continue
		}

		review, err := f.deps.Reviewer.Review(ctx, ai.ReviewRequest{
			CandidateID: candidate.ID,
			ResumeText:  candidate.Text,
			JobText:     f.deps.JobText,
			Report:      *candidate.Report,
		})
		if err != nil {
			log.Warn("AI review failed",
				zap.String("candidate_id", candidate.ID),
				zap.Error(err),
			)
			candidate.Review = &ai.Review{Error: err.Error()}
			continue
		}

		candidate.Review = review
		reviewed++

		log.Info("candidate reviewed by AI",
			zap.String("candidate_id", candidate.ID),
			zap.String("recommendation", review.Recommendation),
		)
	}

	log.Info("AI review completed",
		zap.Int("candidates", c.Len()),
		zap.Int("reviewed", reviewed),
	)

	return c, Step{Initial: c.Len(), Dropped: 0, Left: c.Len()}, nil
}

func (f *aiReviewFilter) Status() Status {
	details := map[string]string{}
	if f.config.Provider != "" {
		details["provider"] = f.config.Provider
	}
	if f.config.Model != "" {
		details["model"] = f.config.Model
	}
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason, Details: details}
}
