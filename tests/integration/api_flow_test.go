package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vesseldocs-backend/application/search"
	"vesseldocs-backend/application/status"
	"vesseldocs-backend/infrastructure/config"
	"vesseldocs-backend/infrastructure/corpus"
	"vesseldocs-backend/interfaces/http/rest"
	"vesseldocs-backend/pkg/auth"
	"vesseldocs-backend/pkg/faults"
	"vesseldocs-backend/pkg/observability"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// newTestServer generates a corpus into a temp directory and stands up the
// full HTTP surface against it, with latency injection disabled.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	root := t.TempDir()

	gen := corpus.NewGenerator(root, 7, logger)
	_, err := gen.Generate()
	require.NoError(t, err)

	index, err := corpus.LoadIndex(filepath.Join(root, "index.json"), logger)
	require.NoError(t, err)

	cfg := &config.Config{
		ServerAddress:       ":0",
		Environment:         "development",
		ModeOverride:        "local",
		LocalEndpoint:       "http://localhost:9999",
		LocalDocumentRoot:   root,
		SessionTTLSeconds:   3600,
		MaxLatencyMs:        0,
		ProbeTimeoutSeconds: 1,
	}
	require.NoError(t, cfg.Validate())

	resolver, err := config.NewResolver(cfg, logger)
	require.NoError(t, err)

	accounts, err := config.LoadAccounts(cfg)
	require.NoError(t, err)

	store := auth.NewMemorySessionStore()
	authenticator := auth.NewAuthenticator(accounts, store, resolver, time.Hour, logger)

	prober := config.NewProber(time.Second, logger)
	gate := faults.NewOutageGate()
	injector := faults.NewInjector(0)
	metrics := observability.NewCollector("test")

	router := rest.NewRouter(
		cfg,
		resolver,
		authenticator,
		index,
		search.NewService(index, logger),
		status.NewReporter(resolver, prober, index, store, gate, logger),
		injector,
		gate,
		metrics,
		logger,
	)

	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server, principal, secret string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"principal": principal, "secret": secret})
	resp, err := http.Post(srv.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.True(t, env.Success)

	var data struct {
		SessionID string `json:"session_id"`
		Role      string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.SessionID)
	return data.SessionID
}

func doGet(t *testing.T, srv *httptest.Server, path, sessionID string) (*http.Response, envelope) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	if sessionID != "" {
		req.Header.Set("Authorization", "Bearer "+sessionID)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func doPost(t *testing.T, srv *httptest.Server, path, sessionID string, payload interface{}) (*http.Response, envelope) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("Authorization", "Bearer "+sessionID)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestLoginSearchRetrieveFlow(t *testing.T) {
	srv := newTestServer(t)
	sessionID := login(t, srv, "admin_user", "local-admin")

	resp, env := doGet(t, srv, "/api/v1/search?q=voltage", sessionID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	var result struct {
		Total   int `json:"total"`
		Results []struct {
			DocumentID  string  `json:"document_id"`
			Score       float64 `json:"score"`
			BodyExcerpt string  `json:"body_excerpt"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotZero(t, result.Total)
	require.NotEmpty(t, result.Results[0].DocumentID)
	assert.NotEmpty(t, result.Results[0].BodyExcerpt)

	resp, env = doGet(t, srv, "/api/v1/documents/"+result.Results[0].DocumentID, sessionID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		ID       string `json:"id"`
		BodyText string `json:"body_text"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, result.Results[0].DocumentID, doc.ID)
	assert.NotEmpty(t, doc.BodyText)
}

func TestBrowseListing(t *testing.T) {
	srv := newTestServer(t)
	sessionID := login(t, srv, "readonly_user", "local-readonly")

	resp, env := doGet(t, srv, "/api/v1/browse", sessionID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Entries []struct {
			Kind string `json:"kind"`
			Name string `json:"name"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.NotEmpty(t, listing.Entries)
	for _, e := range listing.Entries {
		assert.Equal(t, "folder", e.Kind)
	}

	folder := listing.Entries[0].Name
	resp, env = doGet(t, srv, "/api/v1/browse?folder="+folder, sessionID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.NotEmpty(t, listing.Entries)
	assert.Equal(t, "file", listing.Entries[0].Kind)
}

func TestSearchRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doGet(t, srv, "/api/v1/search?q=voltage", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestInvalidSessionRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doGet(t, srv, "/api/v1/search?q=voltage", "not-a-session")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SESSION_NOT_FOUND", env.Error.Type)
}

func TestReadonlyCannotTriggerOutage(t *testing.T) {
	srv := newTestServer(t)
	sessionID := login(t, srv, "readonly_user", "local-readonly")

	resp, env := doPost(t, srv, "/api/v1/admin/outage", sessionID, map[string]int{"duration_ms": 1000})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Type)
}

func TestOutageLifecycle(t *testing.T) {
	srv := newTestServer(t)
	adminSession := login(t, srv, "admin_user", "local-admin")

	resp, _ := doPost(t, srv, "/api/v1/admin/outage", adminSession, map[string]int{"duration_ms": 250})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// API requests are shed while the window is open.
	resp, env := doGet(t, srv, "/api/v1/search?q=voltage", adminSession)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NETWORK_UNREACHABLE", env.Error.Code)

	// Health reports offline but stays reachable.
	resp, env = doGet(t, srv, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var health struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "offline", health.Status)
	assert.Equal(t, "NETWORK_UNREACHABLE", health.Reason)

	// The window self-clears.
	time.Sleep(300 * time.Millisecond)
	resp, _ = doGet(t, srv, "/api/v1/search?q=voltage", adminSession)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestModeSwitch(t *testing.T) {
	srv := newTestServer(t)
	adminSession := login(t, srv, "admin_user", "local-admin")

	resp, env := doPost(t, srv, "/api/v1/admin/mode", adminSession, map[string]string{"mode": "cloud"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var switched struct {
		Mode string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &switched))
	assert.Equal(t, "cloud", switched.Mode)

	resp, env = doGet(t, srv, "/status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st struct {
		Mode string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, "cloud", st.Mode)

	// Bad mode leaves the current profile untouched.
	resp, _ = doPost(t, srv, "/api/v1/admin/mode", adminSession, map[string]string{"mode": "satellite"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthReportsCorpusAndSessions(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv, "admin_user", "local-admin")

	resp, env := doGet(t, srv, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status             string `json:"status"`
		DocumentCount      int    `json:"document_count"`
		ActiveSessionCount int    `json:"active_session_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "online", health.Status)
	assert.NotZero(t, health.DocumentCount)
	assert.Equal(t, 1, health.ActiveSessionCount)
}

func TestMetricsEndpointExposed(t *testing.T) {
	srv := newTestServer(t)

	// Prime the request counter; a counter vec with no observations
	// exposes no series.
	doGet(t, srv, "/health", "")

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "test_http_requests_total")
}

func TestLatencyInjectionDelaysRequests(t *testing.T) {
	injector := faults.NewInjector(20 * time.Millisecond)
	for i := 0; i < 50; i++ {
		d := injector.Delay()
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, 20*time.Millisecond)
	}
}
