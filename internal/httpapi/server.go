package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"haulageBackoffice/internal/auth"
	"haulageBackoffice/internal/billing"
	"haulageBackoffice/internal/config"
	"haulageBackoffice/repository"
)

// healthPath bypasses authentication.
const healthPath = "/healthz"

// Server bundles dependencies and implements the HTTP API.
type Server struct {
	log  *slog.Logger
	calc *billing.Calculator

	Dispatchers *repository.DispatcherRepository
	JobTypes    *repository.JobTypeRepository
	Drivers     *repository.DriverRepository
	Jobs        *repository.JobRepository
	Invoices    *repository.InvoiceRepository
}

// New creates a Server. A nil logger falls back to slog.Default().
func New(logger *slog.Logger,
	dispatchers *repository.DispatcherRepository,
	jobTypes *repository.JobTypeRepository,
	drivers *repository.DriverRepository,
	jobs *repository.JobRepository,
	invoices *repository.InvoiceRepository,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		log:         logger,
		calc:        billing.NewCalculator(logger),
		Dispatchers: dispatchers,
		JobTypes:    jobTypes,
		Drivers:     drivers,
		Jobs:        jobs,
		Invoices:    invoices,
	}
}

// Router builds the chi router with the auth middleware applied.
func (s *Server) Router(jwtSecret string) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.Middleware(jwtSecret, healthPath))

	r.Get(healthPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/jobs", s.handleCreateJob)
		r.Get("/jobs", s.handleListJobs)
		r.Get("/jobs/{id}", s.handleGetJob)
		r.Put("/jobs/{id}", s.handleUpdateJob)
		r.Patch("/jobs/{id}/status", s.handleUpdateJobStatus)

		r.Post("/invoices", s.handleRaiseInvoice)
		r.Get("/invoices/{id}", s.handleGetInvoice)
		r.Delete("/invoices/{id}/jobs/{jobID}", s.handleRemoveInvoiceJob)
		r.Get("/invoices/{id}/statement", s.handleInvoiceStatement)
	})
	return r
}

// Start starts the HTTP server on the configured address and returns a
// shutdown function.
func Start(cfg *config.Config, s *Server) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}
	addr := cfg.HTTP.Address
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(cfg.Auth.JWTSecret),

		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("http server", "err", err)
		}
	}()
	return srv.Shutdown, nil
}
