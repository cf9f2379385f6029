package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/tireshop-backend/internal/config"
	"github.com/your-org/tireshop-backend/internal/pkg/auth"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "tireshop-test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-for-middleware",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{LoginPath: "/login"},
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var mutated bool
	r.POST("/cart/items", AuthMiddleware(cfg), func(c *gin.Context) {
		mutated = true
		c.JSON(http.StatusOK, gin.H{"message": "added"})
	})
	r.GET("/mutated", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"mutated": mutated})
	})
	return r
}

func TestAuthMiddlewareRejectsAnonymousWithRedirect(t *testing.T) {
	cfg := testConfig()
	r := setupRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/login?returnTo=%2Fcart%2Fitems", body["redirect"])
	assert.NotEmpty(t, body["error"])

	// The handler must not have run
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/mutated", nil))
	assert.Contains(t, w2.Body.String(), "false")
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	cfg := testConfig()
	r := setupRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
	req.Header.Set("Authorization", "Token abcdef")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "returnTo")
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	r := setupRouter(cfg)

	token, err := auth.NewJWTManager(cfg).GenerateAccessToken(7, "buyer@example.com", false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsRefreshTokenForAccess(t *testing.T) {
	cfg := testConfig()
	r := setupRouter(cfg)

	token, err := auth.NewJWTManager(cfg).GenerateRefreshToken(7, "buyer@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthPassesGuestsThrough(t *testing.T) {
	cfg := testConfig()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/cart", OptionalAuthMiddleware(cfg), func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "user_id": userID})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestGetUserIDFromContextWithToken(t *testing.T) {
	cfg := testConfig()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", OptionalAuthMiddleware(cfg), func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		require.True(t, ok)
		require.NotNil(t, userID)
		c.JSON(http.StatusOK, gin.H{"user_id": *userID})
	})

	token, err := auth.NewJWTManager(cfg).GenerateAccessToken(42, "u@example.com", false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `"user_id":42`)
}
