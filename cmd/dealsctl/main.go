// Command dealsctl inspects a deal feed offline: the storefront order,
// similar-deal rankings and the products each buying guide would feature.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"deals-service/internal/catalog/feed"
	"deals-service/internal/catalog/model"
)

var (
	amazonFile    string
	cabelasFile   string
	pairThreshold float64
)

var rootCmd = &cobra.Command{
	Use:           "dealsctl",
	Short:         "Inspect a deal feed without running the server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&amazonFile, "amazon", "", "Amazon feed (csv, xls, xlsx); sample deals when empty")
	rootCmd.PersistentFlags().StringVar(&cabelasFile, "cabelas", "", "Cabela's feed; defaults to the second sheet of --amazon")
	rootCmd.PersistentFlags().Float64Var(&pairThreshold, "pair-threshold", 0, "fuzzy pairing threshold (0 uses the default)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadDeals builds the catalog the server would serve from the given files.
func loadDeals(ctx context.Context) ([]model.Deal, feed.Stats, error) {
	if amazonFile == "" {
		return feed.SampleDeals(), feed.Stats{}, nil
	}
	src, err := feed.NewFileSource(amazonFile, cabelasFile)
	if err != nil {
		return nil, feed.Stats{}, err
	}
	sheets, err := src.Fetch(ctx)
	if err != nil {
		return nil, feed.Stats{}, fmt.Errorf("read feed: %w", err)
	}
	if sheets.Empty() {
		return feed.SampleDeals(), feed.Stats{}, nil
	}
	deals, st := feed.Build(sheets, pairThreshold)
	return deals, st, nil
}

func formatPrice(p float64) string {
	if p <= 0 {
		return "-"
	}
	return fmt.Sprintf("$%.2f", p)
}
