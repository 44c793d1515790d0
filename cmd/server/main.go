package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"chatserver/internal/api"
	"chatserver/internal/config"
	"chatserver/internal/logger"
	"chatserver/internal/repository/postgres"
	"chatserver/internal/repository/redis"
	"chatserver/internal/repository/sqlite"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Setup(cfg.Logging); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("store", cfg.Store.Driver).
		Msg("Starting chat server")

	repos, closeStore, err := buildRepositories(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to store")
	}
	defer closeStore()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
	}

	router := api.NewRouter(cfg, repos, redisClient)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func buildRepositories(cfg *config.Config) (api.Repositories, func(), error) {
	switch cfg.Store.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(context.Background(), cfg.Store.SQLitePath)
		if err != nil {
			return api.Repositories{}, nil, err
		}
		return api.Repositories{
			Users:      sqlite.NewUserRepository(db),
			Workspaces: sqlite.NewWorkspaceRepository(db),
			Chats:      sqlite.NewChatRepository(db),
			Messages:   sqlite.NewMessageRepository(db),
			Agents:     sqlite.NewAgentRepository(db),
			DB:         db,
		}, func() { db.Close() }, nil
	default:
		db, err := postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return api.Repositories{}, nil, err
		}
		return api.Repositories{
			Users:      postgres.NewUserRepository(db),
			Workspaces: postgres.NewWorkspaceRepository(db),
			Chats:      postgres.NewChatRepository(db),
			Messages:   postgres.NewMessageRepository(db),
			Agents:     postgres.NewAgentRepository(db),
			DB:         db,
		}, func() { db.Close() }, nil
	}
}
