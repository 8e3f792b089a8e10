package middleware

import (
	"net/http"
	"strings"

	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/logger"
	"github.com/ckobasti77/alati-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Scope context keys
const (
	ScopeKey       = "scope"
	ScopeHeaderKey = "X-Scope"
)

// ScopeMiddlewareConfig holds configuration for the scope middleware
type ScopeMiddlewareConfig struct {
	// SkipPaths are paths that don't require a collection scope
	SkipPaths []string
}

// DefaultScopeConfig returns default scope middleware configuration
func DefaultScopeConfig() ScopeMiddlewareConfig {
	return ScopeMiddlewareConfig{
		SkipPaths: []string{"/health", "/ready"},
	}
}

// ScopeMiddleware resolves the collection scope for the request from the
// X-Scope header and rejects anything outside the known collections. JWT
// claims, when present, must grant the requested scope.
func ScopeMiddleware() gin.HandlerFunc {
	return ScopeMiddlewareWithConfig(DefaultScopeConfig())
}

// ScopeMiddlewareWithConfig returns scope middleware with custom configuration
func ScopeMiddlewareWithConfig(cfg ScopeMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		raw := strings.TrimSpace(c.GetHeader(ScopeHeaderKey))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest,
					"Missing X-Scope header", GetRequestID(c)))
			return
		}

		scope := shared.Scope(raw)
		if !scope.IsValid() {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest,
					"Unknown scope "+raw, GetRequestID(c)))
			return
		}

		if claims := GetJWTClaims(c); claims != nil && len(claims.Scopes) > 0 {
			if !claims.HasScope(scope.String()) {
				c.AbortWithStatusJSON(http.StatusForbidden,
					dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
						"Scope not granted to this operator", GetRequestID(c)))
				return
			}
		}

		c.Set(ScopeKey, scope)

		ctx := c.Request.Context()
		ctx, _ = logger.WithScope(ctx, logger.FromContext(ctx), scope.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetScope retrieves the collection scope resolved by the scope middleware
func GetScope(c *gin.Context) (shared.Scope, bool) {
	if value, exists := c.Get(ScopeKey); exists {
		if scope, ok := value.(shared.Scope); ok {
			return scope, true
		}
	}
	return "", false
}
