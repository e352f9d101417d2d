package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/payroll"
	"github.com/spigell/hr-screener/internal/records"
)

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Process and list payroll records",
}

var payrollAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Compute the net salary for an employee and store the record",
	Run: func(cmd *cobra.Command, _ []string) {
		payrollAdd(cmd)
	},
}

var payrollListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored payroll records",
	Run: func(cmd *cobra.Command, _ []string) {
		payrollList(cmd)
	},
}

func init() {
	rootCmd.AddCommand(payrollCmd)
	payrollCmd.AddCommand(payrollAddCmd, payrollListCmd)

	payrollAddCmd.Flags().String("name", "", "employee name")
	payrollAddCmd.Flags().Float64("salary", 0, "base salary")
	payrollAddCmd.Flags().Float64("deductions", 0, "deductions")
	payrollAddCmd.Flags().Float64("taxes", 0, "taxes")
	payrollAddCmd.Flags().Float64("benefits", 0, "benefits")
	payrollAddCmd.MarkFlagRequired("name")

	payrollListCmd.Flags().StringP("output", "o", "text", "output format: text or json")
}

func payrollAdd(cmd *cobra.Command) {
	logger, config := setup()

	flags := cmd.Flags()
	entry := payroll.Entry{}
	entry.Name, _ = flags.GetString("name")
	entry.Salary, _ = flags.GetFloat64("salary")
	entry.Deductions, _ = flags.GetFloat64("deductions")
	entry.Taxes, _ = flags.GetFloat64("taxes")
	entry.Benefits, _ = flags.GetFloat64("benefits")

	store := openStore(config, logger)
	defer store.Close()

	record, err := payroll.NewProcessor(store, logger).Process(context.Background(), entry)
	if err != nil {
		logger.Fatal("processing payroll", zap.Error(err))
	}

	printPayroll(record)
}

func payrollList(cmd *cobra.Command) {
	logger, config := setup()

	store := openStore(config, logger)
	defer store.Close()

	list, err := payroll.NewProcessor(store, logger).Records(context.Background())
	if err != nil {
		logger.Fatal("listing payroll records", zap.Error(err))
	}

	if output, _ := cmd.Flags().GetString("output"); output == "json" {
		pretty, _ := json.MarshalIndent(list, "", "  ")
		fmt.Println(string(pretty))
		return
	}

	if len(list) == 0 {
		fmt.Println("No payroll records found")
		return
	}
	for _, record := range list {
		printPayroll(record)
		fmt.Println()
	}
}

func printPayroll(record *records.PayrollRecord) {
	fmt.Printf("%s - %s\n", record.Name, record.DateProcessed)
	fmt.Printf("  Base Salary: %s\n", payroll.FormatAmount(record.Salary))
	fmt.Printf("  Deductions:  %s\n", payroll.FormatAmount(record.Deductions))
	fmt.Printf("  Taxes:       %s\n", payroll.FormatAmount(record.Taxes))
	fmt.Printf("  Benefits:    %s\n", payroll.FormatAmount(record.Benefits))
	fmt.Printf("  Net Salary:  %s\n", payroll.FormatAmount(record.NetSalary))
}
