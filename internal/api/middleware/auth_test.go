package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"wordvault/internal/auth"
	"wordvault/internal/config"
	"wordvault/internal/models"
	"wordvault/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenMinutes: 60}
	users := testutil.NewFakeUserRepository()

	user := &models.User{Name: "Ann", Email: "ann@example.com", Password: "irrelevant"}
	require.NoError(t, users.Create(context.Background(), user))

	token, err := auth.GenerateToken(cfg, user)
	require.NoError(t, err)

	otherSecret := config.AuthConfig{JWTSecret: "other-secret", AccessTokenMinutes: 60}
	forgedToken, err := auth.GenerateToken(otherSecret, user)
	require.NoError(t, err)

	router := gin.New()
	router.Use(NewAuthMiddleware(cfg, users).AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		u := auth.GetUserFromContext(c)
		require.NotNil(t, u)
		c.String(http.StatusOK, u.Email)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "Success", authHeader: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "Error_NoHeader", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "Error_NotBearer", authHeader: "Basic abc123", wantStatus: http.StatusUnauthorized},
		{name: "Error_WrongSecret", authHeader: "Bearer " + forgedToken, wantStatus: http.StatusUnauthorized},
		{name: "Error_Garbage", authHeader: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			router.ServeHTTP(w, req)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				require.Equal(t, "ann@example.com", w.Body.String())
			}
		})
	}
}

func TestAuthRequiredUnknownUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenMinutes: 60}

	// Token is valid but the user no longer exists
	ghost := &models.User{Name: "Ghost", Email: "ghost@example.com"}
	require.NoError(t, testutil.NewFakeUserRepository().Create(context.Background(), ghost))
	token, err := auth.GenerateToken(cfg, ghost)
	require.NoError(t, err)

	router := gin.New()
	router.Use(NewAuthMiddleware(cfg, testutil.NewFakeUserRepository()).AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
