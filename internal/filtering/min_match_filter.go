package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/candidates"
	"github.com/spigell/hr-screener/internal/logger"
	"github.com/spigell/hr-screener/internal/skills"
)

type minMatchFilter struct {
	config  *MinMatchConfig
	logger  *zap.Logger
	enabled bool
	reason  string
}

type MinMatchConfig struct {
	// Threshold is a percentage in [0, 100]. Candidates below it are dropped.
	Threshold float64
	// ExcludeFile, when set, receives the dropped candidates.
	ExcludeFile string
}

// NewMinMatch creates a filter that drops candidates scoring below the threshold.
func NewMinMatch(cfg *MinMatchConfig, log *zap.Logger) Filter {
	if cfg == nil {
		cfg = &MinMatchConfig{}
	}
	return &minMatchFilter{
		config:  cfg,
		logger:  logger.OrNop(log),
		enabled: cfg.Threshold > 0,
		reason:  "threshold is not set",
	}
}

func (f *minMatchFilter) Name() string { return "min_match" }

func (f *minMatchFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *minMatchFilter) IsEnabled() bool { return f.enabled }

func (f *minMatchFilter) Validate() error {
	if f.config.Threshold < 0 || f.config.Threshold > 100 {
		return fmt.Errorf("threshold must be within [0, 100], got %v", f.config.Threshold)
	}
	return nil
}

func (f *minMatchFilter) Apply(_ context.Context, c *candidates.Candidates) (*candidates.Candidates, Step, error) {
	initial := c.Len()

	rejected := &candidates.Candidates{}
	c.Keep(func(candidate *candidates.Candidate) bool {
		if candidate.Report == nil {
			return false
		}
		if candidate.Percentage() >= f.config.Threshold {
			return true
		}
		rejected.Items = append(rejected.Items, candidate)
		return false
	})

	for _, candidate := range rejected.Items {
		f.logger.Info("candidate below minimum match",
			zap.String("candidate_id", candidate.ID),
			zap.String("name", candidate.Name),
			zap.String("percentage", skills.FormatPercentage(candidate.Percentage())),
		)
	}

	if rejected.Len() > 0 {
		if err := f.appendToExcludeFile(rejected); err != nil {
			f.logger.Warn("failed to append candidates to exclude file", zap.Error(err))
		}
	}

	return c, Step{Initial: initial, Dropped: initial - c.Len(), Left: c.Len()}, nil
}

func (f *minMatchFilter) appendToExcludeFile(rejected *candidates.Candidates) error {
	path := strings.TrimSpace(f.config.ExcludeFile)
	if path == "" {
		return nil
	}

	excluded, err := candidates.GetExcludedFromFile(path)
	if err != nil {
		return fmt.Errorf("load excluded candidates: %w", err)
	}

	reason := fmt.Sprintf("below %s match", skills.FormatPercentage(f.config.Threshold))
	excluded.Append(rejected.ToExcluded(candidates.ExcludeActorMinMatch, reason))

	if err := excluded.ToFile(path); err != nil {
		return fmt.Errorf("write excluded candidates: %w", err)
	}

	f.logger.Info("candidates appended to exclude file",
		zap.Int("count", rejected.Len()),
		zap.String("exclude_file", path),
	)
	return nil
}

func (f *minMatchFilter) Status() Status {
	details := map[string]string{
		"threshold": skills.FormatPercentage(f.config.Threshold),
	}
	if f.config.ExcludeFile != "" {
		details["exclude_file"] = f.config.ExcludeFile
	}
	reason := ""
	if !f.enabled {
		reason = f.reason
	}
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: reason, Details: details}
}
