package handler

// common.go holds helpers shared across handler files: extracting the
// authenticated user ID and the pass-through backend credential from
// the Echo context populated by the JWT middleware.

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cinematix/booking-orchestrator/internal/client"
	"github.com/cinematix/booking-orchestrator/internal/middleware"
)

// getUserID extracts the authenticated user's ID from the context.  The
// JWT middleware stores the raw claim value, whose concrete type depends
// on how the token was decoded, so a type switch covers the variants.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getCredential extracts the raw bearer token stored by the JWT
// middleware.  The token is forwarded verbatim to the ticketing backend
// on every call made on the user's behalf.
func getCredential(c echo.Context) (client.Credential, error) {
	if v, ok := c.Get(middleware.ContextKeyCredential).(string); ok && v != "" {
		return client.Credential(v), nil
	}
	return "", errors.New("missing credential in context")
}
