package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeaderName))
}

func TestHealthReportsUnreachableDatabase(t *testing.T) {
	started := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	h := newHealthHandler(fakePinger{err: errors.New("connection refused")}, started)
	h.now = func() time.Time { return started.Add(90 * time.Second) }

	rec := httptest.NewRecorder()
	h.health()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unreachable", resp.Database)
	assert.EqualValues(t, 90, resp.UptimeSeconds)
	assert.True(t, started.Equal(resp.StartedAt))
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)

	req := newRequest(http.MethodGet, "/health")
	req.Header.Set(requestIDHeaderName, "abc-123")
	rec := serve(env, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeaderName))
}
