// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"io"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nicodishanthj/affirmd/internal/affirmation"
	"github.com/nicodishanthj/affirmd/internal/app"
	"github.com/nicodishanthj/affirmd/internal/common"
	"github.com/nicodishanthj/affirmd/internal/common/telemetry"
	"github.com/nicodishanthj/affirmd/internal/model"
	"github.com/nicodishanthj/affirmd/internal/progress"
	"github.com/nicodishanthj/affirmd/internal/settings"
)

const (
	rootMessage     = "Manifestation & Affirmation API"
	maxRequestBytes = 1 << 20
)

type Server struct {
	router       chi.Router
	app          *app.App
	affirmations *affirmation.Service
	progress     *progress.Tracker
	settings     *settings.Service
	prefix       string
}

// NewServer builds the HTTP handler for the services held by a.
func NewServer(a *app.App) (*Server, error) {
	if a == nil {
		return nil, fmt.Errorf("app required")
	}
	srv := &Server{
		router:       chi.NewRouter(),
		app:          a,
		affirmations: a.Affirmations(),
		progress:     a.Progress(),
		settings:     a.Settings(),
		prefix:       a.Config().APIPrefix,
	}
	srv.routes()
	common.Logger().Info("api: server ready", "prefix", srv.prefix)
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders: []string{"*"},
	}))
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			telemetry.RecordHTTPResponse(status)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status, "dur", time.Since(start), "remote", r.RemoteAddr, "request_id", middleware.GetReqID(r.Context()))
		})
	})

	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/debug/vars", expvar.Handler())

	api := chi.NewRouter()
	api.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, messageResponse{Message: rootMessage})
	})

	api.Get("/affirmations", s.handleListAffirmations)
	api.Post("/affirmations", s.handleCreateAffirmation)
	api.Post("/affirmations/reorder", s.handleReorderAffirmations)
	api.Post("/affirmations/seed", s.handleSeedAffirmations)
	api.Put("/affirmations/{id}", s.handleUpdateAffirmation)
	api.Delete("/affirmations/{id}", s.handleDeleteAffirmation)

	api.Get("/progress/today", s.handleTodayProgress)
	api.Post("/progress/mark-complete", s.handleMarkComplete)
	api.Get("/progress/history", s.handleProgressHistory)

	api.Get("/settings", s.handleGetSettings)
	api.Put("/settings", s.handleUpdateSettings)

	if s.prefix == "" {
		s.router.Mount("/", api)
	} else {
		s.router.Mount(s.prefix, api)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("store unreachable: %w", err))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Detail: err.Error()})
}

// writeServiceError maps the domain error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, model.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body required", model.ErrInvalidArgument)
		}
		return fmt.Errorf("%w: invalid request body: %v", model.ErrInvalidArgument, err)
	}
	return nil
}
