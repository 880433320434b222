// Package server builds the chi router and owns the HTTP lifecycle,
// including graceful shutdown of the worker pool.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qflow/qflow-api/internal/auth"
	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/handlers"
	"github.com/qflow/qflow-api/internal/middleware"
	"github.com/qflow/qflow-api/pkg/logging"
)

var (
	server  *http.Server
	_logger *logging.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

// NewRouter assembles the full route tree. Auth-free routes: register,
// login, health, metrics. Everything else requires a bearer token.
func NewRouter(handler *handlers.Handler, authService *auth.Service) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Trace)
	r.Use(middleware.Metrics)
	r.Use(middleware.RateLimit)

	r.Post("/auth/register", handler.Register)
	r.Post("/auth/login", handler.Login)
	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authService))

		r.Post("/knowledge-base/feed", handler.PostFeed)
		r.Post("/knowledge-base/upload", handler.PostFeedUpload)
		r.Get("/knowledge-base/documents", handler.GetDocuments)

		r.Post("/projects", handler.CreateProject)
		r.Get("/projects", handler.ListProjects)
		r.Get("/projects/{id}", handler.GetProject)
		r.Get("/projects/{id}/questions", handler.GetProjectQuestions)
		r.Post("/projects/{id}/draft", handler.StartDraft)
		r.Get("/projects/{id}/review-queue", handler.GetReviewQueue)
		r.Post("/questions/{questionId}/review", handler.SubmitReview)
		r.Get("/projects/{id}/export", handler.ExportProject)

		r.Get("/status/{id}", handler.GetJobStatus)
	})
	return r
}

func CreateServer(listenAddr string, router chi.Router) {
	_logger = logging.NewLogger("server")

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("server is listening", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("server crashed", "error", err, "addr", listenAddr)
	}
}

// ShutDownHandler drains in-flight requests, stops the workers and waits
// for running jobs before releasing the process.
func ShutDownHandler(shutdownParams ShutdownParams) {
	<-shutdownParams.GracefulShutdown
	_logger.Info("server is shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("could not shutdown gracefully", "error", err)
		}

		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("graceful shutdown complete")
	case <-ctx.Done():
		_logger.Info("forced shutdown")
		os.Exit(1)
	}
}
