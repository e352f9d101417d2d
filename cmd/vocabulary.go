package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var vocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "Print the skills vocabulary used for screening",
	Run: func(_ *cobra.Command, _ []string) {
		logger, config := setup()

		vocabulary, err := config.Vocabulary()
		if err != nil {
			logger.Fatal("loading skills vocabulary", zap.Error(err))
		}

		for _, entry := range vocabulary.Entries() {
			fmt.Println(entry)
		}
	},
}

func init() {
	rootCmd.AddCommand(vocabularyCmd)
}
