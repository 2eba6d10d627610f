package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	mem "household-illness-tracker/internal/adapters/storage/memory"
	"household-illness-tracker/internal/domain/persons"
	"household-illness-tracker/internal/platform/httpclient"
	"household-illness-tracker/internal/ports/auth"
	"household-illness-tracker/internal/ports/store"
	"household-illness-tracker/internal/router"
	"household-illness-tracker/internal/views"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, verifier auth.AuthVerifier) *httptest.Server {
	t.Helper()

	st := mem.New()
	_, err := persons.Seed(context.Background(), st, []persons.Person{
		{ID: "ana", Name: "Ana"},
		{ID: "leo", Name: "Leo"},
	})
	require.NoError(t, err)

	h, err := router.NewRouter(router.Options{
		Store:        st,
		AuthVerifier: verifier,
		Views:        views.Config{SessionSecret: "test-secret"},
		Gatherer:     prometheus.NewRegistry(),
	})
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_EpisodeLifecycle(t *testing.T) {
	ts := newServer(t, nil)

	// 1) Alta de episodio activo
	var ep map[string]any
	{
		st, body := doReq(t, ts.URL, "POST", "/api/episodes", "", map[string]any{
			"person":   "ana",
			"name":     "Gripe de otoño",
			"sickness": "flu",
			"start":    "2024-03-01T08:00:00Z",
		})
		require.Equal(t, http.StatusCreated, st, string(body))
		require.NoError(t, json.Unmarshal(body, &ep))
	}
	epID := ep["id"].(string)
	require.NotEmpty(t, epID)

	// 2) Aparece en activos, no en pasados
	assert.Len(t, listEpisodes(t, ts.URL, "?personId=ana&status=active"), 1)
	assert.Len(t, listEpisodes(t, ts.URL, "?personId=ana&status=past"), 0)
	assert.Len(t, listEpisodes(t, ts.URL, "?personId=leo&status=active"), 0)

	// 3) Lista de eventos vacía (queda cacheada)
	assert.Len(t, listEvents(t, ts.URL, epID, ""), 0)

	// 4) Alta de evento: la lista cacheada se refresca
	{
		st, body := doReq(t, ts.URL, "POST", "/api/episodes/"+epID+"/events", "", map[string]any{
			"what":       "Temperature",
			"when":       "2024-03-01T09:30:00Z",
			"where":      "home",
			"recordedBy": "Leo",
			"data":       []map[string]string{{"thing": "Temp", "detail": "38.5"}},
		})
		require.Equal(t, http.StatusCreated, st, string(body))
	}
	evs := listEvents(t, ts.URL, epID, "")
	require.Len(t, evs, 1)
	assert.Equal(t, "Temperature", evs[0]["what"])
	assert.Len(t, listEvents(t, ts.URL, epID, "?what=Medication"), 0)

	{
		st, body := doReq(t, ts.URL, "GET", "/api/episodes/"+epID+"/whats", "", nil)
		require.Equal(t, http.StatusOK, st)
		var whats []string
		require.NoError(t, json.Unmarshal(body, &whats))
		assert.Equal(t, []string{"Temperature"}, whats)
	}

	// 5) Recuperado: pasa a pasados
	{
		st, body := doReq(t, ts.URL, "POST", "/api/episodes/"+epID+"/recover", "", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		assert.NotEmpty(t, got["end"])
	}
	assert.Len(t, listEpisodes(t, ts.URL, "?personId=ana&status=active"), 0)
	assert.Len(t, listEpisodes(t, ts.URL, "?personId=ana&status=past"), 1)
}

func TestHTTP_CreateEpisode_ValidationFields(t *testing.T) {
	ts := newServer(t, nil)

	st, body := doReq(t, ts.URL, "POST", "/api/episodes", "", map[string]any{
		"start": "2024-03-01T08:00:00Z",
	})
	require.Equal(t, http.StatusBadRequest, st)

	var res struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Contains(t, res.Fields, "person")
	assert.Contains(t, res.Fields, "name")
	assert.Contains(t, res.Fields, "sickness")

	st, body = doReq(t, ts.URL, "POST", "/api/episodes", "", map[string]any{
		"person":   "nadie",
		"name":     "x",
		"sickness": "y",
		"start":    "2024-03-01T08:00:00Z",
	})
	require.Equal(t, http.StatusBadRequest, st)
	assert.Contains(t, string(body), "unknown person")
}

func TestHTTP_NotFound(t *testing.T) {
	ts := newServer(t, nil)

	st, body := doReq(t, ts.URL, "GET", "/api/episodes/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, st)
	assert.JSONEq(t, `{"error":"not found"}`, string(body))

	st, _ = doReq(t, ts.URL, "GET", "/api/persons/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHTTP_HealthMetricsAndPage(t *testing.T) {
	ts := newServer(t, nil)

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))

	st, _ = doReq(t, ts.URL, "GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, st)

	st, body = doReq(t, ts.URL, "GET", "/", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "Ana")
}

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, errors.New("bad token")
	}
	return auth.Claims{UserID: "u1"}, nil
}

func TestHTTP_RequireAuthWithVerifier(t *testing.T) {
	ts := newServer(t, stubVerifier{})

	st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, st)

	st, _ = doReq(t, ts.URL, "GET", "/api/persons", "", nil)
	assert.Equal(t, http.StatusUnauthorized, st)

	st, _ = doReq(t, ts.URL, "GET", "/api/persons", "bad", nil)
	assert.Equal(t, http.StatusUnauthorized, st)

	st, body := doReq(t, ts.URL, "GET", "/api/persons", "good", nil)
	require.Equal(t, http.StatusOK, st)
	var people []map[string]any
	require.NoError(t, json.Unmarshal(body, &people))
	assert.Len(t, people, 2)
}

func TestShouldRetry(t *testing.T) {
	assert.False(t, router.ShouldRetry(store.ErrNotFound))
	assert.False(t, router.ShouldRetry(context.Canceled))
	assert.False(t, router.ShouldRetry(&httpclient.HTTPError{StatusCode: http.StatusBadRequest}))
	assert.True(t, router.ShouldRetry(&httpclient.HTTPError{StatusCode: http.StatusTooManyRequests}))
	assert.True(t, router.ShouldRetry(&httpclient.HTTPError{StatusCode: http.StatusBadGateway}))
	assert.True(t, router.ShouldRetry(errors.New("connection refused")))
}

func listEpisodes(t *testing.T, baseURL, query string) []map[string]any {
	t.Helper()
	st, body := doReq(t, baseURL, "GET", "/api/episodes"+query, "", nil)
	require.Equal(t, http.StatusOK, st, string(body))
	var out []map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func listEvents(t *testing.T, baseURL, episodeID, query string) []map[string]any {
	t.Helper()
	st, body := doReq(t, baseURL, "GET", "/api/episodes/"+episodeID+"/events"+query, "", nil)
	require.Equal(t, http.StatusOK, st, string(body))
	var out []map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}
