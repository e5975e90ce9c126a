package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solarcast/solarcast/api/handlers"
	"github.com/solarcast/solarcast/api/middleware"
	"github.com/solarcast/solarcast/api/websocket"
	"github.com/solarcast/solarcast/internal/model"
	"github.com/solarcast/solarcast/internal/predictor"
	"github.com/solarcast/solarcast/internal/weather"
	"github.com/solarcast/solarcast/pkg/config"
	"github.com/solarcast/solarcast/pkg/database"
	"github.com/solarcast/solarcast/pkg/database/queries"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     config.APIConfig
	db         *database.DB
	registry   *model.Registry
	resolver   weather.Resolver
	service    *predictor.Service
	wsHub      *websocket.Hub
}

func NewServer(cfg *config.Config, db *database.DB, registry *model.Registry, resolver weather.Resolver, service *predictor.Service) *Server {
	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	wsHub := websocket.NewHub()

	s := &Server{
		router:   router,
		config:   cfg.API,
		db:       db,
		registry: registry,
		resolver: resolver,
		service:  service,
		wsHub:    wsHub,
	}

	s.setupMiddleware()
	s.setupRoutes()

	go wsHub.Run()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	s.router.Use(middleware.RequestLogger())
	s.router.Use(middleware.TraceID())
	s.router.Use(middleware.SecurityHeaders())

	if s.config.MaxBodyBytes > 0 {
		s.router.Use(middleware.RequestSizeLimit(s.config.MaxBodyBytes))
	}

	rateLimiter := middleware.NewRateLimiter(s.config.RateLimit, time.Minute)
	s.router.Use(middleware.RateLimit(rateLimiter))
}

func (s *Server) setupRoutes() {
	predictionRepo := queries.NewPredictionRepository(s.db.DB)

	healthHandler := handlers.NewHealthHandler(s.db, s.resolver, s.registry)
	predictHandler := handlers.NewPredictHandler(s.service, s.wsHub)
	historyHandler := handlers.NewHistoryHandler(predictionRepo, &s.config)
	modelsHandler := handlers.NewModelsHandler(s.registry)

	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/health/live", healthHandler.Live)

	s.router.POST("/predict", predictHandler.Predict)
	s.router.GET("/history", historyHandler.History)
	s.router.GET("/export", historyHandler.Export)
	s.router.GET("/models", modelsHandler.List)

	s.router.GET("/ws", websocket.ServeWebSocket(s.wsHub))
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	idleTimeout := s.config.IdleTimeout
	if idleTimeout == 0 {
		idleTimeout = 60 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}
