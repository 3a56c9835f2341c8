package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"five_in_row/internal/cache"
	"five_in_row/internal/config"
	httpServer "five_in_row/internal/http"
	"five_in_row/internal/logger"
	"five_in_row/internal/service"
	"five_in_row/internal/ws"

	"github.com/gin-gonic/gin"
)

// Version устанавливается при сборке
var Version = "dev"

func main() {
	cfg := config.Load()

	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.Get()

	// кэш анализа: Redis, если настроен, иначе в памяти
	var analysisCache cache.Cache = cache.NewMemoryCache()
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			log.Warn("redis unavailable, using in-memory analysis cache", "error", err)
		} else {
			defer client.Close()
			analysisCache = cache.NewRedisCache(client)
			log.Info("redis analysis cache enabled", "addr", cfg.RedisAddr)
		}
	}

	boards := service.NewBoardService(service.BoardServiceConfig{
		MaxCells: cfg.BoardMaxCells,
		CacheTTL: cfg.CacheTTL,
		IdleTTL:  cfg.BoardIdleTTL,
	}, analysisCache)

	hub := ws.NewHub()
	boards.SetMoveNotifyCallback(hub.BroadcastMove)
	boards.SetBoardRemovedCallback(hub.CloseBoard)

	r := gin.Default()

	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (cfg.AllowedOrigin == "" || origin == cfg.AllowedOrigin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	httpServer.RegisterRoutes(r, boards, hub, Version, cfg.AllowedOrigin)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		log.Info("server started", "port", cfg.AppPort, "version", Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	boards.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
