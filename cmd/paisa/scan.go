package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkhattak/paisa/internal/classify"
	"github.com/mkhattak/paisa/internal/cli"
	"github.com/mkhattak/paisa/internal/ocr"
	"github.com/mkhattak/paisa/internal/receipt"
)

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <image>",
		Short: "Extract a structured receipt from a photo",
		Long: `Run text recognition on a receipt image and parse the result into a
structured receipt: amount, merchant, date, category, and line items.

Without recognition credentials (ocr.endpoint / ocr.api_key, or
PAISA_OCR_ENDPOINT / PAISA_OCR_API_KEY), a canned sample receipt is used
so the parsing pipeline can still be exercised.`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	image, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	gateway := ocr.NewGateway(ocr.Config{
		Endpoint: viper.GetString("ocr.endpoint"),
		APIKey:   viper.GetString("ocr.api_key"),
	})

	if !gateway.Configured() {
		fmt.Println(cli.FormatWarning("no recognition credentials configured, using a sample receipt"))
	}

	text := gateway.ExtractText(cmd.Context(), image)
	parsed := receipt.NewParser().Parse(text)

	details := strings.Join([]string{
		cli.FormatField("Merchant", parsed.Merchant),
		cli.FormatField("Amount", fmt.Sprintf("%.2f", parsed.Amount)),
		cli.FormatField("Date", parsed.DateString()),
		cli.FormatField("Category", parsed.Category),
		cli.FormatField("Items", strings.Join(parsed.Items, ", ")),
		cli.FormatField("Confidence", fmt.Sprintf("%d/100", parsed.Confidence)),
	}, "\n")
	fmt.Println(cli.RenderBox(cli.ReceiptIcon+" Receipt", details))

	// Re-confirm the category the way a transaction built from this receipt
	// would be classified.
	description := parsed.Merchant + " " + strings.Join(parsed.Items, " ")
	prediction := classify.NewClassifier().Classify(description, -parsed.Amount)
	if prediction.Category != parsed.Category {
		fmt.Println(cli.FormatWarning(fmt.Sprintf(
			"classifier suggests %q (%.0f%%) instead of %q",
			prediction.Category, prediction.Confidence*100, parsed.Category)))
	} else {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf(
			"classifier agrees: %s (%.0f%%)",
			prediction.Category, prediction.Confidence*100)))
	}

	if parsed.Confidence <= 70 {
		fmt.Println(cli.SubtleStyle.Render("low confidence result, review before saving"))
	}

	return nil
}
