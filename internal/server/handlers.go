// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/method-recommender/pkg/types"
)

// detailsRequest is a recommendation request plus the selected approach.
type detailsRequest struct {
	types.RecommendationRequest
	ApproachIRI string `json:"approach_iri" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
}

type sparqlSelectRequest struct {
	Query string `json:"query" validate:"required"`
}

type sparqlUpdateRequest struct {
	Update string `json:"update" validate:"required"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendationRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	items, err := s.recommender.Recommend(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	var req detailsRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	details, err := s.recommender.Details(r.Context(), req.RecommendationRequest, req.ApproachIRI)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleMeta(dimension string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := s.meta.Options(r.Context(), dimension)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, options)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.LoginOrCreate(r.Context(), req.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleSaveSearch(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var payload types.RecommendationRequest
	if err := s.decode(r, &payload); err != nil {
		s.writeError(w, r, err)
		return
	}

	saved, err := s.users.SaveSearch(r.Context(), userID, payload)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListSearches(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("%w: limit must be an integer", types.ErrInvalid))
			return
		}
	}

	searches, err := s.users.ListSavedSearches(r.Context(), userID, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, searches)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.db.Select(r.Context(), "SELECT (1 AS ?ok) WHERE {}"); err != nil {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"ok":                false,
			"graphdb_reachable": false,
			"error":             err.Error(),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"ok":                true,
		"graphdb_reachable": true,
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req sparqlSelectRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	raw, err := s.db.Select(r.Context(), req.Query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, raw)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req sparqlUpdateRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.db.Update(r.Context(), req.Update); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// decode parses a JSON body into dst and runs struct validation.
// Failures wrap types.ErrInvalid so they map to 400.
func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", types.ErrInvalid, err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalid, err)
	}
	return nil
}

func pathUserID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: user id must be an integer", types.ErrInvalid)
	}
	return id, nil
}
