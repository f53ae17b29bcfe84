package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/utilibill/billing-system/internal/core/domain"
	"github.com/utilibill/billing-system/internal/core/ports"
)

// sessionContextKey is where Auth stores the loaded session on the echo context.
const sessionContextKey = "session"

// Auth verifies the bearer token and loads the server-side session it points
// at. The token alone is not enough: a session deleted by logout (or expired
// in the store) rejects the request even if the signature is still valid.
func Auth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, err := SessionIDFromRequest(c.Request(), jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			session, err := sessions.Find(c.Request().Context(), sid)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired or revoked")
				}
				return err
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// SessionIDFromRequest extracts the bearer token, verifies its signature and
// returns the session id it carries. Shared with the logout path, which
// tolerates failures instead of rejecting the request.
func SessionIDFromRequest(r *http.Request, jwtSecret string) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", errors.New("invalid token")
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("token missing session id")
	}
	return sid, nil
}

// SessionFromContext returns the session loaded by Auth, or nil when the
// middleware did not run.
func SessionFromContext(c echo.Context) *domain.Session {
	session, _ := c.Get(sessionContextKey).(*domain.Session)
	return session
}
