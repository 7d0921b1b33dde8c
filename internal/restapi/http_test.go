package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eudash.dev/internal/app"
	"eudash.dev/internal/appconf"
	"eudash.dev/internal/catalog"
	"eudash.dev/internal/dataset"
	"eudash.dev/internal/logging"
	"eudash.dev/internal/models"
)

// createTestApi creates a RestAPI over the CSV fixture snapshot with the
// given rate limit; a negative limit disables limiting.
func createTestApi(t *testing.T, rateLimit int) *RestAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.Default()

	src := dataset.NewSource(models.GetFixturePath(t, "observations.csv"), 0, logger)
	snapshot, err := dataset.Load(context.Background(), src, cat, logger)
	require.NoError(t, err)

	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.EnvFlagToEnvironment("test"),
			RateLimit: rateLimit,
		},
		Logger:   logger,
		Catalog:  cat,
		Snapshot: snapshot,
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Close)
	return api
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t, -1)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	resp, body := serveApiAndRetrieveRaw(t, api, endpoint)

	var response models.ResponseModel
	require.NoError(t, json.Unmarshal(body, &response), string(body))

	return resp, response
}

func serveApiAndRetrieveRaw(t *testing.T, api *RestAPI, endpoint string) (*http.Response, []byte) {
	t.Helper()

	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}
