package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/auth"
	"github.com/Mikemeister8/octogon-home-app/internal/cache"
	"github.com/Mikemeister8/octogon-home-app/internal/handlers"
	"github.com/Mikemeister8/octogon-home-app/internal/server"
	"github.com/Mikemeister8/octogon-home-app/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx := cmd.Context()
		store, err := openStore(ctx, cfg, log, !skipMigrations)
		if err != nil {
			return err
		}
		defer store.Close()

		var leaderboardCache cache.Cache = cache.Noop{}
		if cfg.Redis.Address != "" {
			rc, err := cache.NewRedisCache(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL, log)
			if err != nil {
				return err
			}
			defer rc.Close()
			leaderboardCache = rc
			log.Info("leaderboard cache enabled", "address", cfg.Redis.Address, "ttl", cfg.Redis.CacheTTL)
		}

		leaderboards := service.NewLeaderboardService(store, leaderboardCache, log)
		completions := service.NewCompletionService(store, leaderboards, log)

		router := server.NewRouter(server.RouterConfig{
			Handler:        handlers.New(store, leaderboards, completions, log, Version),
			JWTService:     auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
			Households:     store,
			Logger:         log,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		})

		srv := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Start server in goroutine
		go func() {
			log.Info("server starting", "addr", cfg.Addr(), "version", Version, "storage", cfg.Storage.Driver)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal("failed to start server", "error", err)
			}
		}()

		// Graceful shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		log.Info("server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending Postgres migrations on start")
	rootCmd.AddCommand(serveCmd)
}
