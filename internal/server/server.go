package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"catalog-desk/internal/catalog"
	"catalog-desk/internal/config"
	custommiddleware "catalog-desk/internal/middleware"
	"catalog-desk/internal/store"
	"catalog-desk/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	store  store.Store
}

func NewServer(cfg *config.Config, logger *zap.Logger, cat *catalog.Catalog, st store.Store) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Prometheus metrics
	router.Handle("/metrics", promhttp.Handler())

	// Initialize handlers and register routes
	productHandler := transport.NewProductHandler(cat, logger, cfg.Catalog.DebounceDelay)
	productHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:        fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:     router,
			IdleTimeout: time.Minute,
			ReadTimeout: 10 * time.Second,
			// No write timeout: the changes feed holds its connection open
		},
		config: cfg,
		logger: logger,
		store:  st,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close the snapshot store when the backend holds a connection or file
	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.logger.Error("Failed to close snapshot store", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
