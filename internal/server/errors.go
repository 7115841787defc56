// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/method-recommender/internal/httputil"
	"github.com/pdiddy/method-recommender/internal/users"
	"github.com/pdiddy/method-recommender/pkg/types"
)

// errorResponse mirrors the {"detail": ...} shape the frontends expect.
type errorResponse struct {
	Detail string `json:"detail"`
}

// writeError maps the failure taxonomy onto HTTP statuses: malformed
// request 400, unknown user 404, upstream non-2xx 502 (with the
// upstream status and body in the detail), upstream timeout 504,
// anything else 500. Nothing is swallowed; the original description is
// always carried in the detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var upstream *httputil.StatusError
	switch {
	case errors.Is(err, types.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, users.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, httputil.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	s.writeJSON(w, status, errorResponse{Detail: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("writing response", zap.Error(err))
	}
}
