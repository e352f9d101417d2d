package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/candidates"
	"github.com/spigell/hr-screener/internal/config"
	"github.com/spigell/hr-screener/internal/records"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen one resume against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		screen(cmd)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().String("resume", "", "file with the resume (txt, md or html)")
	screenCmd.Flags().StringP("output", "o", "text", "output format: text or json")
	screenCmd.Flags().Bool("save", false, "save the screening to the records store")
	screenCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before saving")
	screenCmd.Flags().Bool("ai", false, "ask the AI provider for an advisory review")
	screenCmd.MarkFlagRequired("resume")
	addJobFlags(screenCmd)
}

func screen(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := setup()

	output, _ := cmd.Flags().GetString("output")
	if output != "text" && output != "json" {
		logger.Fatal("unsupported output format", zap.String("output", output))
	}

	resumePath, _ := cmd.Flags().GetString("resume")
	candidate, err := candidates.LoadFile(resumePath)
	if err != nil {
		logger.Fatal("loading resume", zap.Error(err))
	}

	jobText, source, err := loadJob(ctx, cmd, logger)
	if err != nil {
		logger.Fatal("loading job description", zap.Error(err))
	}

	screener, logger := newScreener(config, logger)

	report := screener.Screen(candidate.Text, jobText)
	candidate.Report = &report

	logger.Debug("screening finished",
		zap.String("candidate_id", candidate.ID),
		zap.Float64("percentage", report.Result.Percentage),
	)

	if withAI, _ := cmd.Flags().GetBool("ai"); withAI || config.AI.Enabled {
		candidate.Review = reviewCandidate(ctx, config, logger, candidate, jobText)
	}

	if output == "json" {
		pretty, _ := json.MarshalIndent(candidate, "", "  ")
		fmt.Println(string(pretty))
	} else {
		fmt.Printf("Candidate: %s (%s)\n", candidate.Name, filepath.Base(candidate.Path))
		printReport(report)
		printReview(candidate.Review)
	}

	save, _ := cmd.Flags().GetBool("save")
	if !save {
		return
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		ok, err := confirm("Save the screening")
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if !ok {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	store := openStore(config, logger)
	defer store.Close()

	record := screeningRecord(candidate, source)
	if err := store.SaveScreening(ctx, record); err != nil {
		logger.Fatal("saving screening", zap.Error(err))
	}

	logger.Info("screening saved", zap.String("id", record.ID), zap.String("date", record.DateProcessed))
}

func reviewCandidate(ctx context.Context, cfg *config.Config, logger *zap.Logger, candidate *candidates.Candidate, jobText string) *ai.Review {
	reviewer, err := newAIReviewer(ctx, cfg, logger)
	if err != nil {
		logger.Warn("skipping AI review", zap.Error(err))
		return nil
	}

	review, err := reviewer.Review(ctx, ai.ReviewRequest{
		CandidateID: candidate.ID,
		ResumeText:  candidate.Text,
		JobText:     jobText,
		Report:      *candidate.Report,
	})
	if err != nil {
		logger.Warn("AI review failed", zap.Error(err))
		return &ai.Review{Error: err.Error()}
	}
	return review
}

func screeningRecord(candidate *candidates.Candidate, source string) *records.ScreeningRecord {
	return &records.ScreeningRecord{
		CandidateID: candidate.ID,
		Name:        candidate.Name,
		Source:      source,
		Report:      *candidate.Report,
		Review:      candidate.Review,
	}
}
