package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"eudash.dev/internal/catalog"
	"eudash.dev/internal/derived"
)

func newCatalogCmd() *cobra.Command {
	var countries bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the catalog indicators, or the country set with --countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			w := cmd.OutOrStdout()

			table := tablewriter.NewWriter(w)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetAutoWrapText(false)
			if countries {
				table.SetHeader([]string{"Code", "Name"})
				for _, c := range cat.CountryList() {
					table.Append([]string{c.Code, c.Name()})
				}
			} else {
				table.SetHeader([]string{"Code", "Name", "Chart", "Top N"})
				for _, ind := range cat.IndicatorList() {
					table.Append([]string{
						ind.Code,
						ind.Name,
						string(derived.ChartKindFor(ind.Name)),
						strconv.Itoa(derived.TopNFor(ind.Name)),
					})
				}
			}
			table.Render()

			_, err := fmt.Fprintf(w, "%s, %d-%d\n", cat.Source, cat.StartYear, cat.EndYear)
			return err
		},
	}

	cmd.Flags().BoolVar(&countries, "countries", false, "List countries instead of indicators")

	return cmd
}
