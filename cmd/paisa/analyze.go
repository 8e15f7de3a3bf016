package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/mkhattak/paisa/internal/analytics"
	"github.com/mkhattak/paisa/internal/classify"
	"github.com/mkhattak/paisa/internal/cli"
	"github.com/mkhattak/paisa/internal/model"
	"github.com/mkhattak/paisa/internal/ofx"
	"github.com/mkhattak/paisa/internal/rates"
)

// anomalyWindow is how many prior expenses feed the outlier check for each
// transaction.
const anomalyWindow = 10

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <files...>",
		Short: "Categorize and analyze transaction history from OFX files",
		Long: `Import transactions from bank-exported OFX/QFX statements, categorize
them, flag statistical outliers, and forecast next month's expenses.

Amounts in other currencies are converted to the base currency
(--base, or currency.base in config) before aggregation.

Examples:
  paisa analyze ~/Downloads/statement_jan.qfx
  paisa analyze ~/Downloads/*.qfx --base PKR`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().String("base", "", "base currency for aggregation (default: currency.base)")
	cmd.Flags().Int("workers", 4, "concurrent classification workers")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	base, _ := cmd.Flags().GetString("base")
	if base == "" {
		base = viper.GetString("currency.base")
	}
	workers, _ := cmd.Flags().GetInt("workers")
	if workers < 1 {
		workers = 1
	}

	ctx := cmd.Context()

	transactions, err := loadStatements(ctx, args)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		return fmt.Errorf("no transactions found in %d file(s)", len(args))
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})

	cache := rates.NewCache(rates.NewClient(viper.GetString("rates.url")))
	for i := range transactions {
		if transactions[i].Currency != "" && transactions[i].Currency != base {
			transactions[i].Amount = cache.Convert(ctx, transactions[i].Amount, transactions[i].Currency, base)
			transactions[i].Currency = base
		}
	}

	categories, err := classifyAll(ctx, transactions, workers)
	if err != nil {
		return err
	}

	printCategoryTotals(categories, transactions, base)
	printAnomalies(transactions, base)
	printForecast(transactions, base)

	return nil
}

// loadStatements parses every OFX file and deduplicates transactions across
// files by hash.
func loadStatements(ctx context.Context, paths []string) ([]model.Transaction, error) {
	parser := ofx.NewParser()
	seen := make(map[string]bool)

	var transactions []model.Transaction
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}

		parsed, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		for _, tx := range parsed {
			hash := tx.GenerateHash()
			if seen[hash] {
				continue
			}
			seen[hash] = true
			transactions = append(transactions, tx)
		}
	}
	return transactions, nil
}

// classifyAll predicts a category for every transaction using a bounded
// worker pool. Results are indexed to match the input order.
func classifyAll(ctx context.Context, transactions []model.Transaction, workers int) ([]model.CategoryPrediction, error) {
	classifier := classify.NewClassifier()
	predictions := make([]model.CategoryPrediction, len(transactions))

	bar := progressbar.Default(int64(len(transactions)), "classifying")

	g := &errgroup.Group{}
	g.SetLimit(workers)

	for i := range transactions {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			tx := transactions[i]
			predictions[i] = classifier.Classify(tx.Description, tx.Amount)
			_ = bar.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("classification interrupted: %w", err)
	}
	_ = bar.Finish()

	return predictions, nil
}

func printCategoryTotals(predictions []model.CategoryPrediction, transactions []model.Transaction, base string) {
	totals := make(map[string]float64)
	counts := make(map[string]int)
	for i, tx := range transactions {
		totals[predictions[i].Category] += math.Abs(tx.Amount)
		counts[predictions[i].Category]++
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return totals[names[i]] > totals[names[j]] })

	fmt.Println(cli.FormatTitle("Spending by Category"))
	for _, name := range names {
		fmt.Printf("  %-20s %3d txns  %s%.2f\n", name, counts[name], rates.Symbol(base), totals[name])
	}
}

// printAnomalies flags expenses that are two-sigma outliers against their
// trailing window.
func printAnomalies(transactions []model.Transaction, base string) {
	var flagged []model.Transaction
	var recent []float64

	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		amount := math.Abs(tx.Amount)
		if analytics.DetectAnomaly(amount, recent) {
			flagged = append(flagged, tx)
		}
		recent = append(recent, amount)
		if len(recent) > anomalyWindow {
			recent = recent[1:]
		}
	}

	fmt.Println(cli.FormatTitle("Unusual Transactions"))
	if len(flagged) == 0 {
		fmt.Println(cli.SubtleStyle.Render("  none detected"))
		return
	}
	for _, tx := range flagged {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%s  %s%.2f  %s",
			tx.Date.Format("2006-01-02"), rates.Symbol(base), math.Abs(tx.Amount), tx.Description)))
	}
}

func printForecast(transactions []model.Transaction, base string) {
	months := analytics.MonthlyExpenseSeries(transactions)

	fmt.Println(cli.FormatTitle("Monthly Expenses"))
	for _, month := range months {
		fmt.Printf("  %s  %s%.2f\n", month.Month, rates.Symbol(base), month.Total)
	}

	forecast := analytics.ForecastNextPeriod(analytics.Series(months))
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("next month forecast: %s%.2f", rates.Symbol(base), forecast)))
}
