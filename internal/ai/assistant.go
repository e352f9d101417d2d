package ai

import (
	"context"

	"github.com/spigell/hr-screener/internal/skills"
)

// Review is an advisory note produced for a finished screening. It never
// changes the skill sets or the match score it was given.
type Review struct {
	Recommendation string   `json:"recommendation,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
	Gaps           []string `json:"gaps,omitempty"`
	Raw            string   `json:"-"`
	Error          string   `json:"error,omitempty"`
}

// ReviewRequest carries the documents and the deterministic report.
type ReviewRequest struct {
	CandidateID string
	ResumeText  string
	JobText     string
	Report      skills.Report
}

type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (*Review, error)
}
