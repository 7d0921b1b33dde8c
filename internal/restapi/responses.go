package restapi

import (
	"bytes"
	"encoding/json"
	"net/http"

	"eudash.dev/internal/models"
)

// sendResponse encodes before writing so an encoding failure still turns
// into a 500.
func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(response); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	setJSONResponseType(&w)
	if response.Code != 0 && response.Code != http.StatusOK {
		w.WriteHeader(response.Code)
	}
	_, _ = buf.WriteTo(w)
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewResponse(http.StatusNotFound, nil, "resource not found"))
}

// sendBody writes an already rendered file download.
func (api *RestAPI) sendBody(w http.ResponseWriter, contentType, filename string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	_, _ = body.WriteTo(w)
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
