package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/finny-import/internal/http/auth"
	"github.com/MrJamesThe3rd/finny-import/internal/http/importcsv"
	"github.com/MrJamesThe3rd/finny-import/internal/http/templates"
	"github.com/MrJamesThe3rd/finny-import/internal/http/transaction"
	"github.com/MrJamesThe3rd/finny-import/internal/logger"
)

type Config struct {
	AllowedOrigins []string
	// JWTSecret enables bearer auth on /api/v1 when non-empty.
	JWTSecret string
	Timeout   time.Duration
}

func New(
	cfg Config,
	transactionsV1 *transaction.Handler,
	importV1 *importcsv.Handler,
	templatesV1 *templates.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Timeout > 0 {
		router.Use(middleware.Timeout(cfg.Timeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTSecret != "" {
			r.Use(auth.Middleware([]byte(cfg.JWTSecret)))
		}

		r.Route("/transactions", transactionsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/templates", templatesV1.Routes)
	})

	return router
}

// requestLogger tags the default logger with the request id for handlers.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := slog.Default().With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), l)))
	})
}
