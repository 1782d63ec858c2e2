// Package repository persists finalized bookings.  This file defines
// sentinel error values that allow handlers to distinguish between
// failure scenarios, e.g. a booking that does not exist versus one
// owned by a different user.
package repository

import "errors"

// ErrBookingNotFound is returned when no booking with the requested
// reference exists.  Handlers should translate this into an HTTP 404
// response.
var ErrBookingNotFound = errors.New("booking not found")

// ErrForbidden is returned when the caller attempts an operation on a
// booking they do not own.  Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
