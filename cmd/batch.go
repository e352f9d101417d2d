package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/candidates"
	"github.com/spigell/hr-screener/internal/config"
	"github.com/spigell/hr-screener/internal/filtering"
	"github.com/spigell/hr-screener/internal/skills"
)

const (
	PromptSave                = "Save results"
	PromptExit                = "Exit"
	PromptReportByScore       = "Report by score"
	PromptCandidatesToFile    = "Dump candidates to file"
	PromptAppendToExcludeFile = "Append all candidates to exclude file"
)

var batchPrompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptSave, PromptExit, PromptReportByScore, PromptCandidatesToFile, PromptAppendToExcludeFile},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Screen every resume in a directory against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		batch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("resumes", "", "directory with resumes (txt, md or html)")
	batchCmd.Flags().BoolP("yes", "y", false, "save results without asking for confirmation")
	batchCmd.Flags().Float64("min-match", 0, "drop candidates below this match percentage")
	batchCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")
	batchCmd.MarkFlagRequired("resumes")
	addJobFlags(batchCmd)

	viper.BindPFlag("batch.min-match", batchCmd.Flags().Lookup("min-match"))
	viper.BindPFlag("batch.exclude-file", batchCmd.Flags().Lookup("exclude-file"))
}

func batch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := setup()

	logger.Info("starting the hr-screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	dir, _ := cmd.Flags().GetString("resumes")
	list, err := candidates.LoadDir(dir)
	if err != nil {
		logger.Fatal("loading resumes", zap.Error(err))
	}

	logger.Info("loaded resumes", zap.String("dir", dir), zap.Int("count", list.Len()))

	if list.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes found"))
		return
	}

	jobText, source, err := loadJob(ctx, cmd, logger)
	if err != nil {
		logger.Fatal("loading job description", zap.Error(err))
	}

	screener, logger := newScreener(config, logger)

	if err := candidates.ScreenAll(ctx, list, screener, jobText, config.Batch.Concurrency); err != nil {
		logger.Fatal("screening candidates", zap.Error(err))
	}

	filters := prepareFilters(ctx, config, jobText, logger)

	filtered, err := filters.RunFilters(ctx, list)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}
	list = filtered
	list.SortByScore()

	if list.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	printRanking(list)

	action := PromptSave
	for {
		var err error
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			_, action, err = batchPrompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of candidates", zap.Int("count", list.Len()))

		if err := handleAction(ctx, action, logger, config, list, source); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, logger *zap.Logger, cfg *config.Config, list *candidates.Candidates, source string) error {
	switch action {
	case PromptSave:
		if err := saveCandidates(ctx, cfg, logger, list, source); err != nil {
			return err
		}
		return errExit
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportByScore:
		pretty, _ := json.MarshalIndent(list.ReportByScore(), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", list.Len()))
		return nil
	case PromptCandidatesToFile:
		filename, err := list.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(cfg.Batch.ExcludeFile, logger, list)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func saveCandidates(ctx context.Context, cfg *config.Config, logger *zap.Logger, list *candidates.Candidates, source string) error {
	store := openStore(cfg, logger)
	defer store.Close()

	for _, candidate := range list.Items {
		record := screeningRecord(candidate, source)
		if err := store.SaveScreening(ctx, record); err != nil {
			return fmt.Errorf("save screening for %s: %w", candidate.ID, err)
		}
	}

	logger.Info("screenings saved", zap.Int("count", list.Len()), zap.String("backend", cfg.Records.Backend))
	return nil
}

func appendToExcludeFile(excludeFile string, logger *zap.Logger, list *candidates.Candidates) error {
	if excludeFile == "" {
		logger.Warn("exclude file is not configured", zap.String("hint", "set batch.exclude-file or --exclude-file"))
		return nil
	}

	excluded, err := candidates.GetExcludedFromFile(excludeFile)
	if err != nil {
		return err
	}

	excluded.Append(list.ToExcluded(candidates.ExcludeActorUser, "appended from batch prompt"))

	if err = excluded.ToFile(excludeFile); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", excludeFile))

	list.Exclude(excluded.IDs())
	if list.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left"))
		return errExit
	}
	return nil
}

func printRanking(list *candidates.Candidates) {
	for i, candidate := range list.Items {
		line := fmt.Sprintf("%2d. %-30s %7s", i+1, candidate.Name, skills.FormatPercentage(candidate.Percentage()))
		if candidate.Review != nil && candidate.Review.Recommendation != "" {
			line += "  ai: " + candidate.Review.Recommendation
		}
		fmt.Println(line)
	}
}

func prepareFilters(ctx context.Context, cfg *config.Config, jobText string, logger *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewExcludeFile(cfg.Batch.ExcludeFile, logger),
		filtering.NewMinMatch(&filtering.MinMatchConfig{
			Threshold:   cfg.Batch.MinMatch,
			ExcludeFile: cfg.Batch.ExcludeFile,
		}, logger),
		prepareAIFilter(ctx, cfg, jobText, logger),
	}

	f := filtering.New(steps, logger)
	for _, status := range f.Describe() {
		logger.Debug("filter configured",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}
	return f
}

func prepareAIFilter(ctx context.Context, cfg *config.Config, jobText string, logger *zap.Logger) filtering.Filter {
	aiConfig := &filtering.AIReviewConfig{
		Enabled:  cfg.AI.Enabled,
		Provider: cfg.AI.Provider,
		Model:    cfg.AI.Gemini.Model,
	}
	if !cfg.AI.Enabled {
		return filtering.NewAIReview(aiConfig, nil)
	}

	reviewer, err := newAIReviewer(ctx, cfg, logger)
	if err != nil {
		logger.Warn("skipping AI review", zap.Error(err))
		f := filtering.NewAIReview(aiConfig, nil)
		f.Disable(err.Error())
		return f
	}

	return filtering.NewAIReview(aiConfig, &filtering.AIReviewDeps{
		Logger:   logger,
		Reviewer: reviewer,
		JobText:  jobText,
	})
}
