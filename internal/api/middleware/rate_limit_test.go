package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"wordvault/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func rateLimitedRouter(requests, window, burst int) *gin.Engine {
	cfg := &config.Config{}
	cfg.RateLimit.Requests = requests
	cfg.RateLimit.Window = window
	cfg.RateLimit.Burst = burst

	router := gin.New()
	router.Use(NewRateLimiter(cfg).Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := rateLimitedRouter(100, 60, 5)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiterBlocksBurstOverflow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := rateLimitedRouter(10, 60, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = "192.0.2.2:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := rateLimitedRouter(10, 60, 1)

	first := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = "192.0.2.3:1234"
	router.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	// The first client is out of burst, a different IP is not
	second := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/ping", nil)
	req2.RemoteAddr = "192.0.2.4:1234"
	router.ServeHTTP(second, req2)
	require.Equal(t, http.StatusOK, second.Code)
}

func TestRateLimiterExemptsSwagger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.RateLimit.Requests = 10
	cfg.RateLimit.Window = 60
	cfg.RateLimit.Burst = 1

	router := gin.New()
	router.Use(NewRateLimiter(cfg).Middleware())
	router.GET("/swagger/index.html", func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/swagger/index.html", nil)
		req.RemoteAddr = "192.0.2.5:1234"
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}
}
