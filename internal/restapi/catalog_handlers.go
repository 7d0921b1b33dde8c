package restapi

import (
	"net/http"

	"eudash.dev/internal/catalog"
	"eudash.dev/internal/derived"
	"eudash.dev/internal/models"
	"eudash.dev/internal/utils"
)

func indicatorEntry(ind catalog.Indicator) models.IndicatorEntry {
	return models.IndicatorEntry{
		Code:  ind.Code,
		Name:  ind.Name,
		Stock: derived.IsStock(ind.Name),
		Chart: string(derived.ChartKindFor(ind.Name)),
		TopN:  derived.TopNFor(ind.Name),
	}
}

func (api *RestAPI) indicatorsHandler(w http.ResponseWriter, r *http.Request) {
	indicators := api.Catalog.IndicatorList()
	entries := make([]models.IndicatorEntry, 0, len(indicators))
	for _, ind := range indicators {
		entries = append(entries, indicatorEntry(ind))
	}

	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) indicatorHandler(w http.ResponseWriter, r *http.Request) {
	code := utils.ExtractIDFromParams(r, "code")

	if err := utils.ValidateCode(code); err != nil {
		fieldErrors := map[string][]string{
			"code": {err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	name, ok := api.Catalog.NameFor(code)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(indicatorEntry(catalog.Indicator{Code: code, Name: name})))
}

func (api *RestAPI) countriesHandler(w http.ResponseWriter, r *http.Request) {
	countries := api.Catalog.CountryList()
	entries := make([]models.CountryEntry, 0, len(countries))
	for _, c := range countries {
		entries = append(entries, models.CountryEntry{
			Code:    c.Code,
			Name:    c.Name(),
			MapName: c.MapLabel(),
		})
	}

	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) yearsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewOKResponse(models.YearsData{
		Years:     api.Snapshot.Years(),
		FirstYear: api.Catalog.StartYear,
		LastYear:  api.Catalog.EndYear,
	}))
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewOKResponse(models.HealthData{
		Status:       "ok",
		Environment:  api.Config.Env.String(),
		Source:       api.Snapshot.Source(),
		LoadedAt:     api.Snapshot.LoadedAt(),
		Observations: api.Snapshot.Len(),
		Countries:    len(api.Snapshot.Countries()),
		Years:        len(api.Snapshot.Years()),
	}))
}
