package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gwyndows/bidcalc/internal/catalog"
	"github.com/gwyndows/bidcalc/internal/domain"
	"github.com/gwyndows/bidcalc/internal/quote"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the price table",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), renderCatalog(catalog.NewMemory(log)))
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// renderCatalog lays the catalog out as a table, one row per item, with a
// section column that is only filled on the first row of each section.
func renderCatalog(c domain.Catalog) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Section", "ID", "Label", "Price", "Names").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	items := c.Items()
	for _, sec := range c.Sections() {
		first := true
		for _, it := range items {
			if it.Section != sec {
				continue
			}
			label := ""
			if first {
				label = sec.String()
				first = false
			}
			price := quote.FormatUSD(it.UnitPrice)
			if unit := it.Category.Unit(); unit != "" {
				price += "/" + unit
			}
			t.Row(label, string(it.ID), it.Label, price, strings.Join(it.Aliases, ", "))
		}
	}
	return t.String()
}
