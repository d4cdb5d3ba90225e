package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chunpat/life-pulse-ai/pkg/service/objectstore"
	"github.com/chunpat/life-pulse-ai/pkg/usecase"
	"github.com/chunpat/life-pulse-ai/pkg/utils/errutil"
	"github.com/chunpat/life-pulse-ai/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	store  objectstore.Service
}

type Options func(*Server)

// WithObjectStore enables the image upload endpoint
func WithObjectStore(svc objectstore.Service) Options {
	return func(s *Server) {
		s.store = svc
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", registerHandler(uc.Auth))
			r.Post("/login", loginHandler(uc.Auth))
		})

		// Everything below resolves the request user: a valid bearer token
		// yields the registered user, no token yields the local guest.
		r.Group(func(r chi.Router) {
			r.Use(userMiddleware(uc.Auth))

			r.Route("/logs", func(r chi.Router) {
				r.Get("/", listLogsHandler(uc.Log))
				r.Post("/", createLogHandler(uc.Log, uc.Insight))
				r.Post("/sync", syncLogsHandler(uc.Log))
				r.Put("/{id}", updateLogHandler(uc.Log))
				r.Delete("/{id}", deleteLogHandler(uc.Log))
			})

			r.Route("/finance", func(r chi.Router) {
				r.Get("/", listFinanceHandler(uc.Finance))
				r.Post("/", createFinanceHandler(uc.Finance))
				r.Get("/stats", financeStatsHandler(uc.Finance))
				r.Post("/sync/{logID}", syncFinanceHandler(uc.Finance))
				r.Delete("/{id}", deleteFinanceHandler(uc.Finance))
			})

			r.Route("/ai", func(r chi.Router) {
				r.Post("/parse", parseHandler(uc.Log))
				r.Get("/insight", dailyInsightHandler(uc.Insight))
				r.Post("/insight", generateInsightHandler(uc.Insight, uc.Location()))
			})

			r.Get("/analytics/summary", summaryHandler(uc.Analytics, uc.Location()))
			r.Get("/export", exportHandler(uc.Export, uc.Location()))

			if s.store != nil {
				r.Post("/upload", uploadHandler(s.store))
			}
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError maps use case sentinels to HTTP statuses
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrLogNotFound),
		errors.Is(err, usecase.ErrRecordNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrGuestQuotaExceeded),
		errors.Is(err, usecase.ErrGuestNotAllowed),
		errors.Is(err, usecase.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, usecase.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, usecase.ErrParseFailed):
		status = http.StatusBadGateway
	}

	errutil.HandleHTTP(r.Context(), w, err, status)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
