package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"deals-service/internal/catalog/model"
	"deals-service/internal/config"
	"deals-service/internal/similarity"
)

var (
	similarID       string
	similarName     string
	similarCategory string
	similarPrice    float64
	similarLimit    int
	similarMinScore float64
	similarJSON     bool
)

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "Rank the catalog against one deal or an ad-hoc product name",
	Args:  cobra.NoArgs,
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().StringVar(&similarID, "id", "", "reference deal id")
	similarCmd.Flags().StringVar(&similarName, "name", "", "ad-hoc reference product name")
	similarCmd.Flags().StringVar(&similarCategory, "category", "", "category of the ad-hoc product")
	similarCmd.Flags().Float64Var(&similarPrice, "price", 0, "price of the ad-hoc product")
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "n", -1, "maximum number of results (-1 uses the configured default)")
	similarCmd.Flags().Float64Var(&similarMinScore, "min-score", -1, "similarity floor (-1 uses the configured value)")
	similarCmd.Flags().BoolVar(&similarJSON, "json", false, "output results as JSON")
	similarCmd.MarkFlagsMutuallyExclusive("id", "name")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, _ []string) error {
	if similarID == "" && strings.TrimSpace(similarName) == "" {
		return errors.New("one of --id or --name is required")
	}

	// MATCHER_CONFIG and MATCH_* from the environment apply, as for the server.
	mc, err := config.MatcherConfig(config.Load())
	if err != nil {
		return err
	}
	if similarMinScore >= 0 {
		mc.MinScore = similarMinScore
	}
	m, err := similarity.New(mc)
	if err != nil {
		return err
	}

	deals, _, err := loadDeals(cmd.Context())
	if err != nil {
		return err
	}
	ref, err := reference(deals)
	if err != nil {
		return err
	}

	limit := similarLimit
	if limit < 0 {
		limit = mc.DefaultLimit
	}
	matches, err := m.Match(ref, model.Products(deals), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if similarJSON {
		data, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "%s %s\n", color.New(color.Bold).Sprint("Reference:"), ref.Name)
	if len(matches) == 0 {
		fmt.Fprintln(out, "No similar deals found.")
		return nil
	}
	for i, mt := range matches {
		fmt.Fprintf(out, "[%d] %s %s\n", i+1, color.GreenString("%.3f", mt.Score), mt.Product.Name)
		fmt.Fprintf(out, "    %s\n", color.HiBlackString("tokens=%.2f category=%.0f brand=%.0f price=%.2f",
			mt.Signals.TokenOverlap, mt.Signals.Category, mt.Signals.Brand, mt.Signals.Price))
	}
	return nil
}

func reference(deals []model.Deal) (model.Product, error) {
	if similarID == "" {
		return model.Product{
			Name:     similarName,
			Category: model.ParseCategory(similarCategory),
			Price:    similarPrice,
		}, nil
	}
	for _, d := range deals {
		if d.ID == similarID {
			return d.Product(), nil
		}
	}
	return model.Product{}, fmt.Errorf("no deal with id %q", similarID)
}
