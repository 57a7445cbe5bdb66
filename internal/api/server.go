package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/akachour/wird/internal/api/handler"
	"github.com/akachour/wird/internal/api/middleware"
	"github.com/akachour/wird/internal/core/service"
	"github.com/akachour/wird/pkg/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	log    *zap.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	sessionService *service.SessionService,
	accountService *service.AccountService,
	ledgerService *service.LedgerService,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(sessionService, accountService)
	entryHandler := handler.NewEntryHandler(ledgerService)
	reportHandler := handler.NewReportHandler(ledgerService)

	sessionMiddleware := middleware.SessionMiddleware(sessionService)

	// Public routes (no auth required)
	auth := router.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", sessionMiddleware, authHandler.Logout)
		auth.POST("/password", sessionMiddleware, authHandler.ChangePassword)
	}

	// Own ledger (any authenticated user)
	entries := router.Group("/entries")
	entries.Use(sessionMiddleware)
	{
		entries.POST("", entryHandler.CreateEntry)
		entries.GET("", entryHandler.ListMyEntries)
	}

	// Admin dashboard
	admin := router.Group("/admin")
	admin.Use(sessionMiddleware, middleware.AdminMiddleware())
	{
		admin.GET("/entries", entryHandler.ListAllEntries)
		admin.GET("/reports/completion", reportHandler.Completion)
		admin.GET("/reports/totals", reportHandler.Totals)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Observability and docs
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server := &Server{
		router: router,
		config: cfg,
		log:    log,
	}

	return server
}

func corsConfig(origins []string) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if len(origins) > 0 {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	return corsCfg
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.log.Info("starting HTTPS server", zap.String("addr", addr))
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.log.Info("starting HTTP server", zap.String("addr", addr))
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
