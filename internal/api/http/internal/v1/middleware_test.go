package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/config"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedRouter(t *testing.T, manager auth.TokenManager) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	h := &Handler{tokenManager: manager}

	router := gin.New()
	router.GET("/protected", h.userIdentityMiddleware, func(c *gin.Context) {
		id, err := h.getUserID(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	return router
}

func newTestTokenManager(t *testing.T, ttl time.Duration) *auth.Manager {
	t.Helper()

	manager, err := auth.NewManager(config.JWTConfig{
		AccessTokenTTL: ttl,
		SigningKey:     "middleware-test-key",
	})
	require.NoError(t, err)

	return manager
}

func TestUserIdentityMiddleware_ValidToken(t *testing.T) {
	manager := newTestTokenManager(t, time.Minute)
	router := newGuardedRouter(t, manager)

	token, _, err := manager.NewJWT(42)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 42}`, w.Body.String())
}

func TestUserIdentityMiddleware_Rejections(t *testing.T) {
	manager := newTestTokenManager(t, time.Minute)
	router := newGuardedRouter(t, manager)

	valid, _, err := manager.NewJWT(42)
	require.NoError(t, err)

	expiredManager := newTestTokenManager(t, -time.Minute)
	expired, _, err := expiredManager.NewJWT(42)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic " + valid},
		{name: "empty token", header: "Bearer "},
		{name: "tampered token", header: "Bearer " + valid + "x"},
		{name: "expired token", header: "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, w.Body.String())
		})
	}
}
