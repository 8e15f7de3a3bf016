package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkhattak/paisa/internal/cli"
	"github.com/mkhattak/paisa/internal/rates"
)

func newRateCache() *rates.Cache {
	return rates.NewCache(rates.NewClient(viper.GetString("rates.url")))
}

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show exchange rates for a base currency",
		Args:  cobra.NoArgs,
		RunE:  runRates,
	}

	cmd.Flags().String("base", "", "base currency (default: currency.base)")

	return cmd
}

func runRates(cmd *cobra.Command, _ []string) error {
	base, _ := cmd.Flags().GetString("base")
	if base == "" {
		base = viper.GetString("currency.base")
	}

	snapshot := newRateCache().GetRates(cmd.Context(), base)

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Exchange Rates (base %s, as of %s)", snapshot.BaseCurrency, snapshot.AsOfDate)))

	codes := make([]string, 0, len(snapshot.Rates))
	for code := range snapshot.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		fmt.Printf("  1 %s = %.4f %s (%s)\n", base, snapshot.Rates[code], code, rates.Symbol(code))
	}

	return nil
}

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <amount> <from> <to>",
		Short: "Convert an amount between currencies",
		Long: `Convert an amount between currencies using cached exchange rates.

Conversion is best effort: identical currencies or an unknown target
currency return the amount unchanged.

Example:
  paisa convert 100 USD PKR`,
		Args: cobra.ExactArgs(3),
		RunE: runConvert,
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}
	from, to := args[1], args[2]

	converted := newRateCache().Convert(cmd.Context(), amount, from, to)

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s%.2f %s = %s%.2f %s",
		rates.Symbol(from), amount, from,
		rates.Symbol(to), converted, to)))

	return nil
}
