package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/filmorate/internal/cache"
	"github.com/mroshb/filmorate/internal/config"
	"github.com/mroshb/filmorate/internal/handlers"
	"github.com/mroshb/filmorate/internal/middleware"
	"github.com/mroshb/filmorate/internal/services"
	"github.com/mroshb/filmorate/pkg/logger"
)

type Server struct {
	config  *config.Config
	stores  *Stores
	cache   cache.PopularCache
	limiter *middleware.RateLimiter
	engine  *gin.Engine
	http    *http.Server
}

// Init wires storage, services and routes. Nothing listens until Start.
func Init(cfg *config.Config) (*Server, error) {
	stores, err := OpenStores(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	popular := OpenPopularCache(cfg)

	userSvc := services.NewUserService(stores.Users, stores.Films, popular)
	filmSvc := services.NewFilmService(stores.Films, stores.Users, stores.Catalog, popular, cfg.PopularDefaultCount)
	catalogSvc := services.NewCatalogService(stores.Catalog)

	handlerMgr := handlers.NewHandlerManager(userSvc, filmSvc, catalogSvc)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerIP, cfg.GetRateLimitWindow())

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(limiter.Middleware())
	handlerMgr.RegisterRoutes(engine)

	return &Server{
		config:  cfg,
		stores:  stores,
		cache:   popular,
		limiter: limiter,
		engine:  engine,
		http: &http.Server{
			Addr:    ":" + cfg.AppPort,
			Handler: engine,
		},
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves in the background. Listen failures other than a normal
// shutdown are reported on the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Stop drains in-flight requests, then releases the cache and storage.
func (s *Server) Stop(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.limiter.Stop()

	if cerr := s.cache.Close(); cerr != nil {
		logger.Warn("Error closing cache", "error", cerr)
	}
	if cerr := s.stores.Close(); cerr != nil {
		logger.Warn("Error closing storage", "error", cerr)
	}
	return err
}
