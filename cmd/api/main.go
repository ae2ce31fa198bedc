package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ad-platforms/internal/api"
	"ad-platforms/internal/config"
	"ad-platforms/internal/database"
	"ad-platforms/internal/logger"
	"ad-platforms/internal/metrics"
	"ad-platforms/internal/platform"

	_ "ad-platforms/docs"
)

// @title           Ad Platforms API
// @version         1.0
// @description     Upload a list of advertising platforms and find which of them serve a location.

// @host      localhost:8080
// @BasePath  /api

func main() {
	cfg := config.Load()
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	repo := database.NewRepository(database.New(cfg.DatabasePath))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := platform.NewService(log, m, platform.Options{
		CacheTTL:  cfg.CacheTTL,
		CacheSize: cfg.CacheSize,
	})

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(api.RequestLogger(log), gin.Recovery())
	r.NoRoute(api.NotFound)

	h := api.New(svc, repo, m, log)
	h.RegisterHealthCheck(r)
	h.RegisterRoutes(r.Group("/api"))

	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cfg.Addr, Handler: r}

	go func() {
		log.Info("api listening", "addr", cfg.Addr, "cache_ttl", cfg.CacheTTL.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("api listen", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down api...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("api shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("api stopped")
}
