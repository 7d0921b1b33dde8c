package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"eudash.dev/internal/catalog"
	"eudash.dev/internal/dataset"
	"eudash.dev/internal/derived"
)

type selectionFlags struct {
	indicator string
	year      int
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.indicator, "indicator", "i", "", "Indicator name or code (default: first catalog indicator)")
	cmd.Flags().IntVarP(&f.year, "year", "y", 0, "Year (default: first year with data)")
}

// view builds the derived view, filling unset flags from the default selection.
func (f *selectionFlags) view(snapshot *dataset.Snapshot, cat *catalog.Catalog) (derived.View, error) {
	sel := derived.DefaultSelection(snapshot, cat)
	if f.indicator != "" {
		sel.Indicator = f.indicator
	}
	if f.year != 0 {
		sel.Year = f.year
	}
	return derived.BuildView(snapshot, cat, sel)
}

func newViewCmd(opts *rootOptions) *cobra.Command {
	var sel selectionFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print the metrics and top countries for an indicator and year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, cat, err := opts.load(cmd)
			if err != nil {
				return err
			}
			view, err := sel.view(snapshot, cat)
			if err != nil {
				return err
			}
			if !snapshot.HasYear(view.Selection.Year) {
				opts.logger(cmd).Warn("no observations for year", "year", view.Selection.Year)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			printView(cmd.OutOrStdout(), view)
			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full view as JSON")

	return cmd
}

func printView(w io.Writer, view derived.View) {
	year := view.Selection.Year
	_, _ = fmt.Fprintf(w, "%s (%s), %d\n\n", view.Selection.Indicator, view.IndicatorCode, year)

	metrics := tablewriter.NewWriter(w)
	metrics.SetHeader([]string{"Metric", "Value"})
	metrics.SetAlignment(tablewriter.ALIGN_LEFT)
	metrics.SetAutoWrapText(false)
	metrics.Append([]string{fmt.Sprintf("Average in %d", year), view.MeanDisplay})
	metrics.Append([]string{fmt.Sprintf("Average change from %d to %d", view.PreviousYear, year), view.ChangeDisplay})
	metrics.Render()

	_, _ = fmt.Fprintln(w)

	if len(view.Table) == 0 {
		_, _ = fmt.Fprintf(w, "No data for %d\n", year)
		return
	}

	top := tablewriter.NewWriter(w)
	top.SetHeader([]string{"Rank", "Country", view.Selection.Indicator})
	top.SetAutoWrapText(false)
	top.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, row := range view.Table {
		top.Append([]string{
			strconv.Itoa(row.Rank),
			row.CountryName,
			strconv.FormatFloat(row.Value, 'f', 2, 64),
		})
	}
	top.Render()
}
