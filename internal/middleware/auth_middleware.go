package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"skyVoyage/pkg/logger"
	"skyVoyage/pkg/utils"

	jsonres "skyVoyage/pkg/response"

	"github.com/labstack/echo/v4"
)

// CredentialValidator checks a token against the auth collaborator's store.
type CredentialValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// AuthRequired guards the transactional routes (check-in, seat assignment):
// a missing or invalid credential is a hard 401 here, unlike the
// personalization routes which silently degrade to anonymous.
func AuthRequired(validator CredentialValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := BearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing or malformed authorization header", nil,
				))
			}

			claims, err := utils.ParseJWT(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || time.Now().After(expAt.Time) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Token expired", nil,
				))
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			userID, err := validator.ValidateToken(ctx, tokenString)
			if err != nil {
				logger.Debug("token rejected by credential store", "error", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Token expired or invalid", nil,
				))
			}

			if claims.UserID != "" && userID != claims.UserID {
				logger.Error("user id mismatch between JWT and credential store")
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			c.Set("user_id", userID)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// BearerToken extracts the bearer token if one was sent. Personalization
// handlers use this directly and treat absence as an anonymous session.
func BearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", false
	}

	return tokenParts[1], true
}
