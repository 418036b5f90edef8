package middleware

import (
	"net/http"
	"strings"

	"mall-service/internal/model"
	"mall-service/pkg/jwtutil"
	"mall-service/pkg/logger"
	"mall-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const claimsContextKey = "session_claims"

// Auth returns a middleware that validates the session token and stores the
// decoded claims in the request context. Both "Bearer <token>" and a bare
// token are accepted; the original client sent the token without a scheme.
func Auth(jwt *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			tokenString := authHeader
			if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				tokenString = parts[1]
			}

			claims, err := jwt.ValidateToken(tokenString)
			if err != nil {
				log.Warn("Invalid session token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// RequireRole returns a middleware that rejects requests whose session role
// is outside the given allow-set
func RequireRole(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			role := model.Role(claims.Role)
			for _, r := range allowed {
				if role == r {
					return next(c)
				}
			}

			logger.FromContext(c).Warn("Role not allowed for this endpoint",
				zap.String("role", claims.Role),
				zap.String("path", c.Path()))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}
}

// ClaimsFromContext retrieves the session claims stored by Auth
func ClaimsFromContext(c echo.Context) (*jwtutil.SessionClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(*jwtutil.SessionClaims)
	return claims, ok
}
