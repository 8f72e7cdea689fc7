package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"deals-service/internal/catalog/model"
	"deals-service/internal/storefront"
)

var (
	dealsSeed       uint64
	dealsHidePrices bool
	dealsCategory   string
)

var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "Print the catalog in storefront order",
	Args:  cobra.NoArgs,
	RunE:  runDeals,
}

func init() {
	dealsCmd.Flags().Uint64Var(&dealsSeed, "seed", 0, "display seed")
	dealsCmd.Flags().BoolVar(&dealsHidePrices, "hide-prices", false, "apply the click-for-price policy")
	dealsCmd.Flags().StringVarP(&dealsCategory, "category", "c", "", "only this category")
	rootCmd.AddCommand(dealsCmd)
}

func runDeals(cmd *cobra.Command, _ []string) error {
	deals, st, err := loadDeals(cmd.Context())
	if err != nil {
		return err
	}

	gray := color.New(color.FgHiBlack)
	gray.Fprintf(cmd.OutOrStdout(), "rows=%d skipped=%d comparisons=%d paired=%d singles=%d\n",
		st.Rows, st.Skipped, st.Comparisons, st.Paired, st.Singles)

	policy := storefront.PricePolicy{Enabled: dealsHidePrices, Seed: dealsSeed}
	want := model.ParseCategory(dealsCategory)
	for _, v := range policy.Apply(storefront.Arrange(deals, dealsSeed)) {
		if dealsCategory != "" && v.Category != want {
			continue
		}
		printDeal(cmd, v)
	}
	return nil
}

func printDeal(cmd *cobra.Command, v storefront.DealView) {
	out := cmd.OutOrStdout()
	name := color.New(color.Bold).Sprint(v.Name)
	if v.Featured {
		name = color.New(color.FgYellow, color.Bold).Sprint("★ " + v.Name)
	}

	if v.CardType == model.CardComparison {
		fmt.Fprintf(out, "%s  [%s]\n    Amazon %s  Cabela's %s  best: %s\n", name, v.Category,
			formatPrice(v.AmazonPrice), formatPrice(v.CabelasPrice), color.GreenString(string(v.BestRetailer)))
		return
	}
	price := formatPrice(v.SalePrice)
	if v.PriceHidden {
		price = color.CyanString("click for price")
	}
	fmt.Fprintf(out, "%s  [%s]\n    %s %s", name, v.Category, v.DisplayRetailer(), price)
	if v.DiscountPercent > 0 && !v.PriceHidden {
		fmt.Fprint(out, color.GreenString("  -%d%%", v.DiscountPercent))
	}
	fmt.Fprintln(out)
}
