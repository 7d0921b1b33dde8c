// Package export writes a derived view as an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"eudash.dev/internal/derived"
)

const (
	SheetTop          = "Top Countries"
	SheetDistribution = "Distribution"
	SheetSummary      = "Summary"
)

// Workbook builds a workbook with the top table, the distribution shares and
// a summary of the selection.
func Workbook(view derived.View) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetTop); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetDistribution); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, err
	}

	top := [][]any{{"Rank", "Country", "Name", view.Selection.Indicator}}
	for _, row := range view.Table {
		top = append(top, []any{row.Rank, row.Country, row.CountryName, row.Value})
	}
	if err := writeRows(f, SheetTop, top); err != nil {
		return nil, err
	}

	dist := [][]any{{"Country", view.Selection.Indicator, "Percent"}}
	for _, s := range view.Top {
		dist = append(dist, []any{s.Country, s.Value, cell(s.Percent)})
	}
	if err := writeRows(f, SheetDistribution, dist); err != nil {
		return nil, err
	}

	summary := [][]any{
		{"Indicator", view.Selection.Indicator},
		{"Indicator code", view.IndicatorCode},
		{"Year", view.Selection.Year},
		{"Chart", string(view.Chart)},
		{fmt.Sprintf("Average in %d", view.Selection.Year), cell(view.Mean)},
		{fmt.Sprintf("Average change from %d to %d", view.PreviousYear, view.Selection.Year), view.ChangeDisplay},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write streams the workbook for view to w.
func Write(w io.Writer, view derived.View) error {
	f, err := Workbook(view)
	if err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}
	defer f.Close() // nolint

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", sheet, i+1, err)
		}
	}
	return f.SetColWidth(sheet, "A", "D", 18)
}

// cell leaves undefined numbers empty.
func cell(n derived.Number) any {
	if !n.Valid() {
		return ""
	}
	return n.Float64()
}
