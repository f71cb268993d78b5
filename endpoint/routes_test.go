package endpoint

import (
	"net/http"
	"testing"

	"github.com/ariebrainware/medical-forum/config"
	"github.com/ariebrainware/medical-forum/model"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter_Routes(t *testing.T) {
	r, _ := setupForumTest(t)

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /",
		"GET /metrics",
		"GET /medical_forum/api/diagnoses/",
		"POST /medical_forum/api/diagnoses/",
		"GET /medical_forum/api/diagnoses/:id/",
		"GET /medical_forum/api/messages/",
		"POST /medical_forum/api/messages/",
		"GET /medical_forum/api/messages/:id/",
		"GET /medical_forum/api/users/",
		"GET /medical_forum/api/users/:id/",
	} {
		assert.Truef(t, registered[want], "route %s not registered", want)
	}
}

func TestNewRouter_Welcome(t *testing.T) {
	r, _ := setupForumTest(t)

	w, resp := performRequest(t, r, requestSpec{method: http.MethodGet, path: "/"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp["message"], "Welcome to")
}

func TestNewRouter_Metrics(t *testing.T) {
	r, _ := setupForumTest(t)
	performRequest(t, r, requestSpec{method: http.MethodGet, path: DiagnosesURL})

	w, _ := performRequest(t, r, requestSpec{method: http.MethodGet, path: "/metrics"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/medical_forum/api/diagnoses/"`)
}

func TestNewRouter_UnknownResource(t *testing.T) {
	r, _ := setupForumTest(t)

	w, resp := performRequest(t, r, requestSpec{method: http.MethodGet, path: "/medical_forum/api/treatments/"})
	assertMasonError(t, w, resp, http.StatusNotFound)
	assert.Equal(t, "/medical_forum/api/treatments/", resp["resource_url"])
}

func TestNewRouter_RequestID(t *testing.T) {
	r, _ := setupForumTest(t)

	w, _ := performRequest(t, r, requestSpec{method: http.MethodGet, path: UsersURL})
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNewRouter_AuditsWrites(t *testing.T) {
	r, engine := setupForumTest(t)

	performRequest(t, r, requestSpec{method: http.MethodPost, path: DiagnosesURL, body: validDiagnosis()})
	performRequest(t, r, requestSpec{method: http.MethodPost, path: DiagnosesURL, body: "{}", contentType: "application/json"})
	performRequest(t, r, requestSpec{method: http.MethodGet, path: DiagnosesURL})

	db, err := engine.DB()
	require.NoError(t, err)
	var events []model.AuditLog
	require.NoError(t, db.Order("id").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, "RESOURCE_CREATED", events[0].EventType)
	assert.Equal(t, "REQUEST_REJECTED", events[1].EventType)
}

func TestNewRouter_RateLimitsWrites(t *testing.T) {
	r, engine := setupForumTest(t)

	client, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(client)
	t.Cleanup(func() {
		config.ResetRedisClientForTest()
		_ = client.Close()
	})

	// httptest requests come from 192.0.2.1.
	mock.ExpectIncr("ratelimit:POST:/medical_forum/api/diagnoses/:192.0.2.1").SetVal(int64(config.LoadConfig().RateLimit + 1))

	w, resp := performRequest(t, r, requestSpec{method: http.MethodPost, path: DiagnosesURL, body: validDiagnosis()})

	assertMasonError(t, w, resp, http.StatusTooManyRequests)
	assertRowCount(t, engine, model.DiagnosisTable, model.FixtureDiagnosisCount)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Reads are not limited.
	w, _ = performRequest(t, r, requestSpec{method: http.MethodGet, path: DiagnosesURL})
	assert.Equal(t, http.StatusOK, w.Code)
}
