package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// ContextKeyCredential is the Echo context key under which the raw bearer
// token is stored.  The orchestrator forwards this token verbatim to the
// ticketing backend, which performs its own authorization checks; this
// service never mints tokens of its own.
const ContextKeyCredential = "credential"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject into the request context.  The provided
// secret must match the one the ticketing backend signs with.  This
// middleware should wrap protected routes so that handlers can access the
// authenticated user via `c.Get("user_id")` and the pass-through token via
// `c.Get(ContextKeyCredential)`.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Read the Authorization header.  A valid header should start
			// with "Bearer " followed by the JWT.  If it doesn't, respond
			// with 401 Unauthorized.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse the token using the HS256 signing method and our secret.
			// If the signing method differs we reject the token.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// Store the subject (user ID) and the raw token in the context.
			// The raw token is what gets forwarded to the backend on every
			// reservation, payment and ticket call.
			c.Set("user_id", claims["sub"])
			c.Set(ContextKeyCredential, raw)
			return next(c)
		}
	}
}
