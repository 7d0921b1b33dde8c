package app

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"eudash.dev/internal/derived"
	"eudash.dev/internal/utils"
)

// SelectionFromRequest reads the indicator and year query parameters.
// Missing parameters fall back to the default selection. The returned field
// errors are nil when the selection is valid.
func (app *Application) SelectionFromRequest(r *http.Request) (derived.Selection, map[string][]string) {
	sel := derived.DefaultSelection(app.Snapshot, app.Catalog)
	fieldErrors := make(map[string][]string)

	query := r.URL.Query()
	if raw := query.Get("indicator"); raw != "" {
		indicator, err := utils.ValidateAndSanitizeQuery(raw)
		if err != nil {
			fieldErrors["indicator"] = append(fieldErrors["indicator"], err.Error())
		} else if indicator != "" {
			sel.Indicator = indicator
		}
	}
	if raw := strings.TrimSpace(query.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors["year"] = append(fieldErrors["year"], "year must be an integer")
		} else {
			sel.Year = year
		}
	}

	if len(fieldErrors["indicator"]) == 0 {
		if _, ok := app.Catalog.Lookup(sel.Indicator); !ok {
			fieldErrors["indicator"] = append(fieldErrors["indicator"], derived.ErrUnknownIndicator.Error()+": "+sel.Indicator)
		}
	}
	if len(fieldErrors["year"]) == 0 {
		if err := utils.ValidateYear(sel.Year, app.Catalog.StartYear, app.Catalog.EndYear); err != nil {
			fieldErrors["year"] = append(fieldErrors["year"], err.Error())
		}
	}

	if len(fieldErrors) > 0 {
		return sel, fieldErrors
	}
	return sel, nil
}

// BuildView computes the derived view for sel from the loaded snapshot.
func (app *Application) BuildView(sel derived.Selection) (derived.View, error) {
	return derived.BuildView(app.Snapshot, app.Catalog, sel)
}

// IsSelectionError reports whether err comes from an invalid selection
// rather than a failure to compute the view.
func IsSelectionError(err error) bool {
	return errors.Is(err, derived.ErrUnknownIndicator) || errors.Is(err, derived.ErrYearOutOfRange)
}
