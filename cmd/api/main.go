package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voice-dashboard/internal/audit"
	"voice-dashboard/internal/auth"
	"voice-dashboard/internal/calls"
	"voice-dashboard/internal/config"
	"voice-dashboard/internal/httpapi"
	"voice-dashboard/internal/store"
	"voice-dashboard/internal/voice"
	"voice-dashboard/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A .env file is optional; real env always wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	// All entity state lives in this store for the process lifetime.
	st := store.NewMemStore()
	if cfg.App.SeedDemoCalls {
		st.SeedDemoCalls()
	}

	auditSvc := audit.NewService(audit.NewMemoryRepo())
	provider := voice.NewSimulatedProvider()
	h := newHandlers(st, authManager, auditSvc, provider)

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(corsMiddleware(cfg.CORS))

	registerRoutes(r, h, auth.RequireAccessToken(authManager))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env, "provider", provider.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}

// newHandlers builds the handler set with every service wired, so the
// handlers that audit (SaveConfig) always have a sink.
func newHandlers(st store.Store, manager *auth.Manager, auditSvc *audit.Service, provider voice.Provider) httpapi.Handlers {
	return httpapi.Handlers{
		Calls: calls.NewService(st, provider, auditSvc),
		Auth:  auth.NewService(st, manager, auditSvc),
		Store: st,
		Audit: auditSvc,
	}
}

func corsMiddleware(c config.CORSConfig) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(c.AllowOrigins) == 1 && c.AllowOrigins[0] == "*" {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = c.AllowOrigins
	}
	return cors.New(cc)
}
