package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/candidates"
	"github.com/spigell/hr-screener/internal/logger"
)

type excludeFileFilter struct {
	path    string
	logger  *zap.Logger
	enabled bool
	reason  string
}

// NewExcludeFile creates a filter that removes candidates listed in the exclude file.
func NewExcludeFile(path string, log *zap.Logger) Filter {
	return &excludeFileFilter{
		path:    strings.TrimSpace(path),
		logger:  logger.OrNop(log),
		enabled: true,
	}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *excludeFileFilter) IsEnabled() bool { return f.enabled }

func (f *excludeFileFilter) Validate() error { return nil }

func (f *excludeFileFilter) Apply(_ context.Context, c *candidates.Candidates) (*candidates.Candidates, Step, error) {
	initial := c.Len()
	if f.path == "" {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded, err := candidates.GetExcludedFromFile(f.path)
	if err != nil {
		return c, Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	removed := c.Exclude(excluded.IDs())
	if len(removed) > 0 {
		f.logger.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(removed), Left: c.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason, Details: details}
}
