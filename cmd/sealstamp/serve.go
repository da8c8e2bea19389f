package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/handler"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/config"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/errors"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/httputil"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the extraction HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := logger.New(serviceName, cfg.Server.Environment)
		log.Info().
			Str("model", cfg.Completion.Model).
			Msg("starting Seal/Stamp Extraction Service")

		if !cfg.CompletionFitsWriteTimeout() {
			log.Warn().
				Dur("completion_timeout", cfg.Completion.Timeout).
				Dur("write_timeout", cfg.Server.WriteTimeout).
				Msg("completion timeout is not below the server write timeout; slow extractions will drop the connection")
		}

		return serve(cfg, log)
	},
}

func newRouter(cfg *config.Config, log *logger.Logger) http.Handler {
	extractionHandler := handler.NewHandler(newExtractionService(cfg, log), log)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.Error(w, errors.New("NOT_FOUND", "route not found", http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.Error(w, errors.New("METHOD_NOT_ALLOWED", "method not allowed", http.StatusMethodNotAllowed))
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	extractionHandler.Routes(r)

	return r
}

func serve(cfg *config.Config, log *logger.Logger) error {
	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(cfg, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
		return err
	case <-quit:
	}

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
