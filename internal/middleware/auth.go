package middleware

import (
	"net/http"
	"strings"

	"github.com/Prashant-2024/Rental-App/pkg/jwtutil"
	"github.com/Prashant-2024/Rental-App/pkg/logger"
	"github.com/Prashant-2024/Rental-App/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware
const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
)

// AuthMiddleware validates the bearer token and rejects callers whose
// role is not one of allowedRoles. It runs before the route handler.
func AuthMiddleware(jwtUtil *jwtutil.JWTUtil, allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			}

			role := strings.ToLower(claims.Role)
			if !hasRole(allowedRoles, role) {
				log.Warn("Role not allowed for route",
					zap.String("user_id", claims.Subject),
					zap.String("role", role),
					zap.Strings("allowed_roles", allowedRoles))
				prometheus.RecordAuthError("forbidden_role")
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Access Denied"})
			}

			c.Set(UserIDKey, claims.Subject)
			c.Set(UserRoleKey, role)
			log.Debug("Request authenticated",
				zap.String("user_id", claims.Subject),
				zap.String("role", role))

			return next(c)
		}
	}
}

func hasRole(allowed []string, role string) bool {
	for _, r := range allowed {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
