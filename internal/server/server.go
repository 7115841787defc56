// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the recommender over HTTP: recommendation and
// details endpoints, option lists per ontology dimension, user login and
// saved searches, and a raw SPARQL passthrough for debugging.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pdiddy/method-recommender/internal/graphdb"
	"github.com/pdiddy/method-recommender/internal/meta"
	"github.com/pdiddy/method-recommender/internal/recommend"
	"github.com/pdiddy/method-recommender/internal/users"
	"github.com/pdiddy/method-recommender/pkg/types"
)

// SPARQLClient is the graph-store surface the passthrough endpoints
// need. *graphdb.Client implements it.
type SPARQLClient interface {
	Select(ctx context.Context, query string) (graphdb.BindingSet, error)
	Update(ctx context.Context, update string) error
}

// Server wires the services behind the HTTP API.
type Server struct {
	recommender *recommend.Service
	meta        *meta.Service
	users       *users.Store
	db          SPARQLClient
	logger      *zap.Logger
	validate    *validator.Validate
	origins     []string
}

// New builds a Server. The db handle is the process-scoped pooled
// client; the server holds a reference, it does not own the lifetime.
func New(db SPARQLClient, store *users.Store, logger *zap.Logger, cfg types.ServerConfig) *Server {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	return &Server{
		recommender: recommend.NewService(db),
		meta:        meta.NewService(db),
		users:       store,
		db:          db,
		logger:      logger,
		validate:    validator.New(),
		origins:     origins,
	}
}

// Handler assembles the router with middleware and all routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/recommendations", func(r chi.Router) {
		r.Post("/", s.handleRecommend)
		r.Post("/details", s.handleDetails)
	})

	r.Route("/meta", func(r chi.Router) {
		r.Get("/phases", s.handleMeta("phases"))
		r.Get("/clusters", s.handleMeta("clusters"))
		r.Get("/paradigms", s.handleMeta("paradigms"))
		r.Get("/tasks", s.handleMeta("tasks"))
		r.Get("/enums/dataset-types", s.handleMeta("dataset-types"))
		r.Get("/enums/conditions", s.handleMeta("conditions"))
		r.Get("/enums/performance", s.handleMeta("performance"))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/{userID}/searches", s.handleSaveSearch)
		r.Get("/{userID}/searches", s.handleListSearches)
	})

	r.Route("/sparql", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/select", s.handleSelect)
		r.Post("/update", s.handleUpdate)
	})

	return r
}
