package config

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct{ err error }

func (f fakeDB) PingContext(context.Context) error { return f.err }

type fakeAMQP struct{ closed bool }

func (f fakeAMQP) IsClosed() bool { return f.closed }

type fakeMQTT struct{ connected bool }

func (f fakeMQTT) IsConnected() bool { return f.connected }

func okRedis(context.Context) error { return nil }

type healthResponse struct {
	Status       string `json:"status"`
	Dependencies map[string]struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	} `json:"dependencies"`
}

func runHealth(t *testing.T, h *HealthChecker) (int, healthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Register(r)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/healthz", nil)
	r.ServeHTTP(w, req)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHealth_AllUp(t *testing.T) {
	code, resp := runHealth(t, NewHealthChecker(fakeDB{}, fakeAMQP{}, fakeMQTT{connected: true}, okRedis))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	for _, dep := range []string{"postgres", "rabbitmq", "mqtt", "redis"} {
		assert.Equal(t, "up", resp.Dependencies[dep].Status, dep)
	}
}

func TestHealth_PostgresDown(t *testing.T) {
	code, resp := runHealth(t, NewHealthChecker(fakeDB{err: errors.New("refused")}, fakeAMQP{}, fakeMQTT{connected: true}, okRedis))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "refused", resp.Dependencies["postgres"].Error)
}

func TestHealth_BrokersDown(t *testing.T) {
	code, resp := runHealth(t, NewHealthChecker(fakeDB{}, fakeAMQP{closed: true}, fakeMQTT{}, okRedis))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "down", resp.Dependencies["rabbitmq"].Status)
	assert.Equal(t, "down", resp.Dependencies["mqtt"].Status)
}

func TestHealth_RedisDegraded(t *testing.T) {
	redisDown := func(context.Context) error { return errors.New("timeout") }
	code, resp := runHealth(t, NewHealthChecker(fakeDB{}, fakeAMQP{}, fakeMQTT{connected: true}, redisDown))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "degraded", resp.Dependencies["redis"].Status)
}
