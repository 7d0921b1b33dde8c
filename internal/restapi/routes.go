package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"eudash.dev/internal/webui"
)

// SetRoutes registers the JSON API, export and health endpoints. Every API
// route goes through the rate limiter.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	limited := func(h http.HandlerFunc) http.Handler {
		if api.rateLimiter == nil {
			return h
		}
		return api.rateLimiter.Handler(h)
	}

	router.Handler(http.MethodGet, "/api/indicators", limited(api.indicatorsHandler))
	router.Handler(http.MethodGet, "/api/indicators/:code", limited(api.indicatorHandler))
	router.Handler(http.MethodGet, "/api/countries", limited(api.countriesHandler))
	router.Handler(http.MethodGet, "/api/years", limited(api.yearsHandler))
	router.Handler(http.MethodGet, "/api/view", limited(api.viewHandler))
	router.Handler(http.MethodGet, "/api/view.xlsx", limited(api.viewWorkbookHandler))
	router.Handler(http.MethodGet, "/api/observations.csv", limited(api.observationsCSVHandler))
	router.Handler(http.MethodGet, "/api/charts/distribution.png", limited(api.distributionChartHandler))
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.HandleMethodNotAllowed = false
}

// Handler builds the complete server handler: API routes, the dashboard and
// the middleware chain.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)
	webui.NewWebUI(api.Application).SetWebUIRoutes(router)

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}
