package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Credential is the opaque bearer token supplied by the external auth
// collaborator.  Clients forward it verbatim in the Authorization
// header and never inspect it.
type Credential string

// Backend is the shared HTTP base used by all four clients.  It owns
// the base URL and a pooled http.Client with an overall per-call
// timeout; request contexts can shorten, but not extend, that limit.
type Backend struct {
	baseURL string
	http    *http.Client
}

// NewBackend returns a Backend for the given base URL.  A zero timeout
// falls back to 30 seconds, the default budget for a single backend
// call.
func NewBackend(baseURL string, timeout time.Duration) *Backend {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Backend{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// doJSON issues a request with an optional JSON body and decodes a
// JSON response into out (when out is non-nil).  Transport failures
// and timeouts surface as ErrUpstream; HTTP error statuses are mapped
// through statusErr.
func (b *Backend) doJSON(ctx context.Context, cred Credential, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	setAuth(req, cred)
	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusErr(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	return nil
}

// doRaw issues a GET and returns the raw response body, used for
// binary documents.  accept sets the Accept header when non-empty.
func (b *Backend) doRaw(ctx context.Context, cred Credential, path, accept string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	setAuth(req, cred)
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", statusErr(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// setAuth writes the Authorization header.  The credential may or may
// not already carry the "Bearer " prefix; both forms are accepted.
func setAuth(req *http.Request, cred Credential) {
	if cred == "" {
		return
	}
	v := strings.TrimSpace(string(cred))
	if !strings.HasPrefix(v, "Bearer ") {
		v = "Bearer " + v
	}
	req.Header.Set("Authorization", v)
}

// statusErr maps an HTTP error response to the client error taxonomy.
// The first bytes of the body are included for log context; callers
// branch on the wrapped sentinel, not the text.
func statusErr(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	var base error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		base = ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		base = ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		base = ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		base = ErrConflict
	case resp.StatusCode == http.StatusPaymentRequired:
		base = ErrDeclined
	case resp.StatusCode >= 500:
		base = ErrUpstream
	default:
		base = ErrInvalid
	}
	msg := strings.TrimSpace(string(snippet))
	if msg == "" {
		return fmt.Errorf("%w: status %d", base, resp.StatusCode)
	}
	return fmt.Errorf("%w: status %d: %s", base, resp.StatusCode, msg)
}
