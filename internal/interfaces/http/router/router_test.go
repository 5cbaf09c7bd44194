package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/orderhub/backend/internal/infrastructure/config"
	"github.com/orderhub/backend/internal/infrastructure/logger"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.HTTP.MaxBodySize = 1 << 20
	log := logger.New(logger.Config{Level: "error", Format: "console", Output: "stdout"})
	return New(cfg, log, Handlers{})
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestEngine()

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestProtectedRoutesRequireIdentity(t *testing.T) {
	engine := newTestEngine()

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/basket"},
		{http.MethodPost, "/api/v1/orders"},
		{http.MethodGet, "/api/v1/user/contacts"},
		{http.MethodPost, "/api/v1/partner/update"},
		{http.MethodGet, "/api/v1/partner/orders"},
	} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}
