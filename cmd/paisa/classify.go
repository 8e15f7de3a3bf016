package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkhattak/paisa/internal/classify"
	"github.com/mkhattak/paisa/internal/cli"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <description>",
		Short: "Predict a category for a transaction description",
		Long: `Predict a category for a transaction description and signed amount.

Negative amounts are expenses, zero or positive amounts are income.

Examples:
  paisa classify "Starbucks coffee" --amount -12.50
  paisa classify "Monthly salary deposit" --amount 250000`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().Float64("amount", -1, "signed amount (negative = expense)")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	amount, err := cmd.Flags().GetFloat64("amount")
	if err != nil {
		return fmt.Errorf("failed to read amount flag: %w", err)
	}

	description := strings.Join(args, " ")
	prediction := classify.NewClassifier().Classify(description, amount)

	kind := "expense"
	if amount >= 0 {
		kind = "income"
	}

	fmt.Println(cli.FormatTitle("Category Prediction"))
	fmt.Println(cli.FormatField("Description", description))
	fmt.Println(cli.FormatField("Type", kind))
	fmt.Println(cli.FormatField("Category", prediction.Category))
	fmt.Println(cli.FormatField("Confidence", fmt.Sprintf("%.0f%%", prediction.Confidence*100)))

	return nil
}
