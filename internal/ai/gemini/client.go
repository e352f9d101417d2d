package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/hr-screener/internal/logger"
	"github.com/spigell/hr-screener/internal/utils"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultMaxRetries = 2
	retryBaseDelay    = 2 * time.Second
)

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	generate   generateFunc
	modelName  string
	maxRetries int
	logger     *zap.Logger
	wait       func(ctx context.Context, d time.Duration) error
}

// NewGenerator creates a Generator for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	generate := func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return client.Models.GenerateContent(ctx, model, contents, config)
	}

	return newGenerator(generate, model, maxRetries, log), nil
}

func newGenerator(generate generateFunc, model string, maxRetries int, log *zap.Logger) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}

	return &Generator{
		generate:   generate,
		modelName:  model,
		maxRetries: maxRetries,
		logger:     logger.OrNop(log),
		wait:       utils.WaitFor,
	}
}

// GenerateContent sends the prompt to Gemini and returns the textual response.
// Rate limits and server errors are retried with a linear backoff.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.generate == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	config := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * retryBaseDelay
			g.logger.Debug("retrying gemini request",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := g.wait(ctx, delay); err != nil {
				return "", err
			}
		}

		resp, err := g.generate(ctx, g.modelName, genai.Text(prompt), config)
		if err != nil {
			lastErr = err
			if isTemporary(err) {
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		return responseText(resp)
	}

	return "", fmt.Errorf("generate content after %d attempts: %w", g.maxRetries+1, lastErr)
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func isTemporary(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned no response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}
