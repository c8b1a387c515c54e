package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"appointments-server/internal/config"
	"appointments-server/internal/metrics"
	"appointments-server/internal/models"
	"appointments-server/internal/store/memory"
	"appointments-server/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testConfig = &config.Config{JWTSecret: "test-secret", JWTExpirationMinutes: 60}

func whoami(c *gin.Context) {
	id, _ := GetUserIDFromContext(c)
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func TestAuthMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/me", AuthMiddleware(testConfig), whoami)

	token, err := utils.GenerateToken(7, testConfig)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, "Token not provided"},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, "Invalid authorization header format"},
		{"garbage", "Bearer nope", http.StatusUnauthorized, "Token invalid"},
		{"valid", "Bearer " + token, http.StatusOK, `"id":7`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestProviderOnly(t *testing.T) {
	users := memory.NewUsers(nil)
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &models.User{BaseModel: models.BaseModel{ID: 1}, Name: "Ana", Email: "ana@example.com"}))
	require.NoError(t, users.Create(ctx, &models.User{BaseModel: models.BaseModel{ID: 2}, Name: "Bob", Email: "bob@example.com", Provider: true}))

	router := gin.New()
	router.GET("/schedule", AuthMiddleware(testConfig), ProviderOnly(users), whoami)

	for id, status := range map[uint]int{1: http.StatusUnauthorized, 2: http.StatusOK, 9: http.StatusUnauthorized} {
		token, err := utils.GenerateToken(id, testConfig)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, status, w.Code, "user %d", id)
		if status == http.StatusUnauthorized {
			assert.Contains(t, w.Body.String(), "User is not a provider")
		}
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	defer rl.Close()

	router := gin.New()
	router.POST("/sessions", rl.Handler(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		req.RemoteAddr = ip + ":4000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2"))
}

func TestRateLimiterEvictsStaleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	defer rl.Close()

	rl.get("10.0.0.1")
	rl.evict(time.Now())
	assert.Len(t, rl.clients, 1)

	rl.evict(time.Now().Add(staleAfter + time.Second))
	assert.Empty(t, rl.clients)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { utils.BadRequest(c, "nope") })

	for _, path := range []string{"/ok", "/bad"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(http.StatusBadRequest), entries[1].ContextMap()["status"])
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	router := gin.New()
	router.Use(Metrics())
	router.DELETE("/appointments/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/appointments/31", nil))

	w := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `route="/appointments/:id"`)
	assert.NotContains(t, w.Body.String(), `route="/appointments/31"`)
}
