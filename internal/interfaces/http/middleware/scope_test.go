package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newScopeRouter() (*gin.Engine, *shared.Scope) {
	var seen shared.Scope
	router := gin.New()
	router.Use(ScopeMiddleware())
	router.GET("/orders", func(c *gin.Context) {
		scope, ok := GetScope(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		seen = scope
		c.Status(http.StatusOK)
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func TestScopeMiddleware_ValidScope(t *testing.T) {
	router, seen := newScopeRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(ScopeHeaderKey, "alati")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, shared.ScopeAlati, *seen)
}

func TestScopeMiddleware_MissingScope(t *testing.T) {
	router, _ := newScopeRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing X-Scope header")
}

func TestScopeMiddleware_UnknownScope(t *testing.T) {
	router, _ := newScopeRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(ScopeHeaderKey, "warehouse")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown scope")
}

func TestScopeMiddleware_SkipPath(t *testing.T) {
	router, _ := newScopeRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
