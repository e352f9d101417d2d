package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/logger"
	"github.com/spigell/hr-screener/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Reviewer asks Gemini for an advisory note on a finished screening.
type Reviewer struct {
	generator    contentGenerator
	logger       *zap.Logger
	maxLogLen    int
	maxTextRunes int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	// Documents are cut to keep prompts within a sane size.
	defaultMaxTextRunes = 12000
)

var recommendations = map[string]bool{
	"interview": true,
	"maybe":     true,
	"reject":    true,
}

func NewReviewer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Reviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Reviewer{
		generator:    generator,
		logger:       logger.OrNop(log),
		maxLogLen:    maxLogLength,
		maxTextRunes: defaultMaxTextRunes,
	}
}

func (r *Reviewer) Review(ctx context.Context, req ai.ReviewRequest) (*ai.Review, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, fmt.Errorf("resume text is required")
	}
	if strings.TrimSpace(req.JobText) == "" {
		return nil, fmt.Errorf("job description is required")
	}

	reportJSON, err := json.MarshalIndent(req.Report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal screening report: %w", err)
	}

	prompt := buildPrompt(string(reportJSON), clip(req.JobText, r.maxTextRunes), clip(req.ResumeText, r.maxTextRunes))

	r.logger.Debug("gemini review request",
		zap.String("candidate_id", req.CandidateID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini review response",
		zap.String("candidate_id", req.CandidateID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	review, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	review.Raw = raw
	return review, nil
}

func buildPrompt(reportJSON, jobText, resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Report:\n{{REPORT_JSON}}\n\nJob:\n{{JOB_TEXT}}\n\nResume:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{REPORT_JSON}}", reportJSON)
	prompt = strings.ReplaceAll(prompt, "{{JOB_TEXT}}", strings.TrimSpace(jobText))
	prompt = strings.ReplaceAll(prompt, "{{RESUME_TEXT}}", strings.TrimSpace(resumeText))
	return prompt
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

type reviewPayload struct {
	Recommendation string   `mapstructure:"recommendation"`
	Summary        string   `mapstructure:"summary"`
	Strengths      []string `mapstructure:"strengths"`
	Gaps           []string `mapstructure:"gaps"`
}

func parseResponse(raw string) (*ai.Review, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	var payload reviewPayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &payload,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	recommendation := strings.ToLower(strings.TrimSpace(payload.Recommendation))
	if !recommendations[recommendation] {
		recommendation = "maybe"
	}

	return &ai.Review{
		Recommendation: recommendation,
		Summary:        strings.TrimSpace(payload.Summary),
		Strengths:      compact(payload.Strengths),
		Gaps:           compact(payload.Gaps),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)

	// Tolerate prose around the object.
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start > 0 && end > start {
		raw = raw[start : end+1]
	}
	return raw
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
