package candidates

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/hr-screener/internal/skills"
)

const defaultConcurrency = 4

// ScreenAll screens every candidate against the job description. The job's
// required skills are extracted once; candidates are processed concurrently
// with at most concurrency workers.
func ScreenAll(ctx context.Context, list *Candidates, screener *skills.Screener, jobText string, concurrency int) error {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	required := screener.Extract(jobText)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, candidate := range list.Items {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			resume := screener.Extract(candidate.Text)
			candidate.Report = &skills.Report{
				ResumeSkills:   resume,
				RequiredSkills: required,
				Result:         skills.Match(resume, required),
				Degraded:       screener.Degraded(),
			}
			return nil
		})
	}

	return g.Wait()
}
