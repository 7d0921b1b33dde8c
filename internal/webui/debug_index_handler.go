package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

//go:embed debug_index.html
var templateFS embed.FS

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(templateFS, "debug_index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	err = tmpl.Execute(w, dataStruct)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "observations":
		data = webUI.Snapshot.Observations()
		title = "Snapshot - Observations"
	case "catalog":
		data = webUI.Catalog
		title = "Indicator Catalog"
	case "years":
		data = webUI.Snapshot.Years()
		title = "Snapshot - Years"
	case "view":
		sel, fieldErrors := webUI.SelectionFromRequest(r)
		if fieldErrors != nil {
			data = fieldErrors
			title = "Derived View - Invalid Selection"
			break
		}
		view, err := webUI.BuildView(sel)
		if err != nil {
			data = map[string]string{"error": err.Error()}
		} else {
			data = view
		}
		title = "Derived View"
	default:
		data = map[string]string{
			"error": "Please use one of the following: observations, catalog, years, view.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
