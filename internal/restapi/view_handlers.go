package restapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"eudash.dev/internal/app"
	"eudash.dev/internal/dataset"
	"eudash.dev/internal/derived"
	"eudash.dev/internal/export"
	"eudash.dev/internal/models"
	"eudash.dev/internal/render"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// selectedView parses the selection and builds its view. It writes the error
// response itself and reports false when the request cannot continue.
func (api *RestAPI) selectedView(w http.ResponseWriter, r *http.Request) (derived.View, bool) {
	sel, fieldErrors := api.SelectionFromRequest(r)
	if fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return derived.View{}, false
	}

	view, err := api.BuildView(sel)
	if err != nil {
		if app.IsSelectionError(err) {
			api.validationErrorResponse(w, r, map[string][]string{"selection": {err.Error()}})
		} else {
			api.serverErrorResponse(w, r, err)
		}
		return derived.View{}, false
	}
	return view, true
}

func (api *RestAPI) viewHandler(w http.ResponseWriter, r *http.Request) {
	view, ok := api.selectedView(w, r)
	if !ok {
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(view))
}

func (api *RestAPI) viewWorkbookHandler(w http.ResponseWriter, r *http.Request) {
	view, ok := api.selectedView(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, view); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendBody(w, xlsxContentType, fmt.Sprintf("%s-%d.xlsx", slug(view.IndicatorCode), view.Selection.Year), &buf)
}

func (api *RestAPI) observationsCSVHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, api.Snapshot, api.Catalog); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendBody(w, "text/csv; charset=utf-8", "observations.csv", &buf)
}

func (api *RestAPI) distributionChartHandler(w http.ResponseWriter, r *http.Request) {
	view, ok := api.selectedView(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.Distribution(&buf, view); err != nil {
		if errors.Is(err, render.ErrNoData) {
			api.sendNotFound(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendBody(w, "image/png", "", &buf)
}

func slug(code string) string {
	return strings.ToLower(strings.ReplaceAll(code, ".", "-"))
}
