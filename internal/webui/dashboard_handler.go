package webui

import (
	"bytes"
	"net/http"
	"sort"
	"strings"

	"eudash.dev/internal/dashboard"
	"eudash.dev/internal/logging"
)

func (webUI *WebUI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	sel, fieldErrors := webUI.SelectionFromRequest(r)
	if fieldErrors != nil {
		http.Error(w, formatFieldErrors(fieldErrors), http.StatusBadRequest)
		return
	}

	view, err := webUI.BuildView(sel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := dashboard.NewPage(webUI.Snapshot, webUI.Catalog, view)
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to build dashboard", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Render into a buffer so a template failure can still produce a 500.
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to render dashboard", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func formatFieldErrors(fieldErrors map[string][]string) string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	for _, field := range fields {
		b.WriteString(field + ": " + strings.Join(fieldErrors[field], "; ") + "\n")
	}
	return b.String()
}
