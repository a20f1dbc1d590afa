package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jinsol-dev/busango/internal/app"
	"github.com/jinsol-dev/busango/internal/appconf"
	"github.com/jinsol-dev/busango/internal/favorites"
	"github.com/jinsol-dev/busango/internal/models"
	"github.com/jinsol-dev/busango/internal/opendata"
	"github.com/jinsol-dev/busango/internal/sessionstate"
)

// upstreamBodies is the canned XML a test's fake open data service returns,
// keyed by endpoint path.
type upstreamBodies map[string]string

func createTestApi(t *testing.T, bodies upstreamBodies) *RestAPI {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(upstream.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := opendata.NewClient(opendata.Config{
		ServiceKey:  "TESTKEY",
		BIMSBaseURL: upstream.URL,
		TAGOBaseURL: upstream.URL,
		Timeout:     2 * time.Second,
	}, logger, nil)

	favs, err := favorites.NewStore(":memory:", favorites.StaticIdentity("owner-1"), logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = favs.Close() })

	sessions := sessionstate.NewStore(time.Minute)
	t.Cleanup(sessions.Close)

	application := &app.Application{
		Config: appconf.Config{
			Env:     appconf.EnvFlagToEnvironment("test"),
			ApiKeys: []string{"TEST"},
		},
		Logger:       logger,
		OpenData:     client,
		Favorites:    favs,
		SessionState: sessions,
	}

	return NewRestAPI(application)
}

// serveApiAndRetrieveEndpoint sets up a test server, makes a request to the
// specified endpoint, and returns the response and decoded model.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := httptest.NewServer(api.Router())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	return resp, model
}

// doRequest issues an arbitrary request against a server running the api.
func doRequest(t *testing.T, api *RestAPI, method, endpoint, body string) *http.Response {
	t.Helper()

	server := httptest.NewServer(api.Router())
	defer server.Close()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+endpoint, reader)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeModel(t *testing.T, resp *http.Response) models.ResponseModel {
	t.Helper()
	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	return model
}

// listFromModel digs the list payload out of a decoded response.
func listFromModel(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "expected a data object, got %T", model.Data)
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "expected a list payload, got %T", data["list"])
	return list
}

// entryFromModel digs the entry payload out of a decoded response.
func entryFromModel(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "expected a data object, got %T", model.Data)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "expected an entry payload, got %T", data["entry"])
	return entry
}
