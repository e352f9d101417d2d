package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/skills"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List saved screenings, or show one by id",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		history(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringP("output", "o", "text", "output format: text or json")
}

func history(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger, config := setup()

	store := openStore(config, logger)
	defer store.Close()

	output, _ := cmd.Flags().GetString("output")

	if len(args) == 1 {
		record, err := store.GetScreening(ctx, args[0])
		if err != nil {
			logger.Fatal("getting screening", zap.Error(err))
		}

		if output == "json" {
			pretty, _ := json.MarshalIndent(record, "", "  ")
			fmt.Println(string(pretty))
			return
		}

		fmt.Printf("%s (%s) - %s\n", record.Name, record.Source, record.DateProcessed)
		printReport(record.Report)
		printReview(record.Review)
		return
	}

	list, err := store.ListScreenings(ctx)
	if err != nil {
		logger.Fatal("listing screenings", zap.Error(err))
	}

	if output == "json" {
		pretty, _ := json.MarshalIndent(list, "", "  ")
		fmt.Println(string(pretty))
		return
	}

	if len(list) == 0 {
		fmt.Println("No screenings found")
		return
	}
	for _, record := range list {
		fmt.Printf("%s  %s  %-30s %7s\n", record.ID, record.DateProcessed, record.Name,
			skills.FormatPercentage(record.Report.Result.Percentage))
	}
}
