package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/ai/gemini"
	"github.com/spigell/hr-screener/internal/config"
	"github.com/spigell/hr-screener/internal/fetch"
	"github.com/spigell/hr-screener/internal/logger"
	"github.com/spigell/hr-screener/internal/records"
	"github.com/spigell/hr-screener/internal/skills"
	"github.com/spigell/hr-screener/internal/skills/analyzer"
)

var errExit = errors.New("exit requested")

// The tokenizer is built once per process and shared by every screening.
var (
	tokenizerOnce sync.Once
	tokenizer     skills.Tokenizer
	tokenizerKind string
)

func sharedTokenizer(cfg config.TokenizerConfig, log *zap.Logger) (skills.Tokenizer, string) {
	tokenizerOnce.Do(func() {
		tokenizer, tokenizerKind = buildTokenizer(cfg, log)
	})
	return tokenizer, tokenizerKind
}

func buildTokenizer(cfg config.TokenizerConfig, log *zap.Logger) (skills.Tokenizer, string) {
	switch cfg.Kind {
	case config.TokenizerNone:
		return nil, config.TokenizerNone
	case config.TokenizerSimple:
		return skills.SimpleTokenizer{}, config.TokenizerSimple
	}

	t, err := analyzer.New()
	if err == nil {
		return t, config.TokenizerAnalyzer
	}

	if cfg.Strict {
		log.Warn("linguistic tokenizer is unavailable, skills will not be detected (degraded mode)", zap.Error(err))
		return nil, config.TokenizerNone
	}

	log.Warn("linguistic tokenizer is unavailable, falling back to the simple tokenizer", zap.Error(err))
	return skills.SimpleTokenizer{}, config.TokenizerSimple
}

// setup builds the logger and loads the configuration the way every command needs them.
func setup() (*zap.Logger, *config.Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cfg, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	return l, cfg
}

func newScreener(cfg *config.Config, l *zap.Logger) (*skills.Screener, *zap.Logger) {
	vocabulary, err := cfg.Vocabulary()
	if err != nil {
		l.Fatal("loading skills vocabulary", zap.Error(err))
	}

	t, kind := sharedTokenizer(cfg.Tokenizer, l)
	l = logger.WithFields(l, logger.ScreeningFields(kind, vocabulary.Len())...)

	if t == nil {
		l.Warn("no tokenizer available, running in degraded mode")
	}

	return skills.NewScreener(t, vocabulary), l
}

func addJobFlags(cmd *cobra.Command) {
	cmd.Flags().String("job", "", "file with the job description")
	cmd.Flags().String("job-url", "", "URL of the job posting")
	cmd.MarkFlagsMutuallyExclusive("job", "job-url")
	cmd.MarkFlagsOneRequired("job", "job-url")
}

// loadJob reads the job description from --job or fetches it from --job-url.
func loadJob(ctx context.Context, cmd *cobra.Command, l *zap.Logger) (text, source string, err error) {
	if path, _ := cmd.Flags().GetString("job"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("read job description: %w", err)
		}
		return string(data), path, nil
	}

	url, _ := cmd.Flags().GetString("job-url")
	text, err = fetch.New(l).JobDescription(ctx, url)
	if err != nil {
		return "", "", err
	}
	return text, url, nil
}

func openStore(cfg *config.Config, l *zap.Logger) records.Store {
	store, err := records.Open(cfg.Records.Backend, cfg.Records.Path)
	if err != nil {
		l.Fatal("opening records store", zap.Error(err))
	}
	return store
}

func newAIReviewer(ctx context.Context, cfg *config.Config, l *zap.Logger) (ai.Reviewer, error) {
	if cfg.AI.Provider != "" && cfg.AI.Provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.AI.Provider)
	}

	apiKey, err := cfg.GeminiAPIKey()
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	gemCfg := cfg.AI.Gemini
	aiLogger := logger.WithAIFields(l, "gemini", gemCfg.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, gemCfg.Model, gemCfg.MaxRetries,
		aiLogger.With(zap.Int("ai_retry_attempts", gemCfg.MaxRetries)))
	if err != nil {
		return nil, err
	}

	return gemini.NewReviewer(generator, gemCfg.MaxLogLength, aiLogger), nil
}

func confirm(label string) (bool, error) {
	p := promptui.Prompt{Label: label, IsConfirm: true}
	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func printReport(report skills.Report) {
	fmt.Printf("Resume Skills:   %s\n", joinSkills(report.ResumeSkills))
	fmt.Printf("Required Skills: %s\n", joinSkills(report.RequiredSkills))
	fmt.Printf("Matched Skills:  %s\n", joinSkills(report.Result.Matched))
	fmt.Printf("Missing Skills:  %s\n", joinSkills(report.Result.Missing))
	fmt.Printf("Match Percentage: %s\n", skills.FormatPercentage(report.Result.Percentage))
	if report.Degraded {
		fmt.Println("Note: running without a tokenizer, no skills can be detected.")
	}
}

func printReview(review *ai.Review) {
	if review == nil {
		return
	}
	if review.Error != "" {
		fmt.Printf("AI Review: unavailable (%s)\n", review.Error)
		return
	}
	fmt.Printf("AI Recommendation: %s\n", review.Recommendation)
	if review.Summary != "" {
		fmt.Printf("AI Summary: %s\n", review.Summary)
	}
	if len(review.Strengths) > 0 {
		fmt.Printf("AI Strengths: %s\n", strings.Join(review.Strengths, "; "))
	}
	if len(review.Gaps) > 0 {
		fmt.Printf("AI Gaps: %s\n", strings.Join(review.Gaps, "; "))
	}
}

func joinSkills(set skills.SkillSet) string {
	if set.Len() == 0 {
		return "-"
	}
	return strings.Join(set.Sorted(), ", ")
}
