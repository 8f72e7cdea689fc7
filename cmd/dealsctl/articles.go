package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"deals-service/internal/articles"
)

var articlesFile string

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Show the deals each buying guide would feature",
	Args:  cobra.NoArgs,
	RunE:  runArticles,
}

func init() {
	articlesCmd.Flags().StringVarP(&articlesFile, "file", "f", "", "articles YAML file; built-in articles when empty")
	rootCmd.AddCommand(articlesCmd)
}

func runArticles(cmd *cobra.Command, _ []string) error {
	lib, err := articles.Load(articlesFile)
	if err != nil {
		return err
	}
	deals, _, err := loadDeals(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	title := color.New(color.FgCyan, color.Bold)
	for _, a := range lib.All() {
		fmt.Fprintln(out, title.Sprint(a.Title))
		fmt.Fprintf(out, "  /%s  sort=%s max=%d\n", a.Slug, a.Products.SortBy, a.Products.MaxResults)
		products := articles.SelectProducts(a, deals)
		if len(products) == 0 {
			fmt.Fprintln(out, color.HiBlackString("  no matching deals"))
		}
		for _, d := range products {
			fmt.Fprintf(out, "  - %s %s\n", d.Name, formatPrice(d.CurrentPrice()))
		}
		fmt.Fprintln(out)
	}
	return nil
}
