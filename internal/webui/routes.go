package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"eudash.dev/internal/app"
	"eudash.dev/internal/appconf"
)

type WebUI struct {
	*app.Application
}

func NewWebUI(app *app.Application) *WebUI {
	return &WebUI{Application: app}
}

// SetWebUIRoutes registers the dashboard and, outside production, the debug
// page.
func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", webUI.dashboardHandler)
	if webUI.Config.Env != appconf.Production {
		router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
	}
}
