// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil classifies upstream HTTP failures so callers can tell
// a non-2xx response, a timeout, and a transport error apart. Upstream
// failures are never retried automatically.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// ErrTimeout marks an outbound request that hit its deadline or was
// cancelled mid-flight. Distinguishable from StatusError via errors.Is.
var ErrTimeout = errors.New("upstream request timed out")

// maxErrorBody caps how much of an upstream error body is retained.
const maxErrorBody = 64 << 10

// StatusError is a non-2xx response from an upstream service, carrying
// the status code and (truncated) response body for diagnostics.
type StatusError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned HTTP %d", e.Status)
	}
	return fmt.Sprintf("upstream returned HTTP %d: %s", e.Status, e.Body)
}

// NewStatusError drains up to maxErrorBody bytes of resp's body into a
// StatusError. The caller remains responsible for closing the body.
func NewStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(body)),
	}
}

// ClassifyTransportErr wraps timeout-shaped transport failures in
// ErrTimeout and returns every other error unchanged.
func ClassifyTransportErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
