// Package client implements the HTTP clients through which the
// booking flow reaches the ticketing backend: reservations, payments,
// tickets and catalogue reads.  This file defines the error taxonomy
// shared by all of them.  Callers compare with errors.Is; the
// orchestrator's retry and halt policies are keyed entirely off these
// sentinels.
package client

import "errors"

// ErrConflict is returned when the backend rejects a reservation
// because the seat is already claimed for that showtime.  It means
// "seat no longer available": the caller should refresh the seat map
// and re-select, never retry the same call.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when the bearer credential is missing or
// expired.  The orchestrator halts the whole transaction on it and
// defers re-authentication to the external login flow.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the caller does not own the resource,
// e.g. fetching another user's ticket document.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrDeclined is returned when the payment backend refuses a charge.
// It is terminal for the seat being paid, not for the transaction.
var ErrDeclined = errors.New("payment declined")

// ErrUpstream covers transient failures: network errors, timeouts and
// 5xx responses.  The specific call may be retried; the transaction as
// a whole must not be restarted because of it.
var ErrUpstream = errors.New("upstream error")

// ErrInvalid is returned for remaining 4xx responses: the backend
// understood the request and rejected its content.  Retrying without
// changing the input will not help.
var ErrInvalid = errors.New("invalid request")
