package api

import (
	"net/http"

	"chatserver/internal/agent"
	"chatserver/internal/ai"
	"chatserver/internal/ai/deepseek"
	"chatserver/internal/ai/gemini"
	"chatserver/internal/api/handler"
	customMiddleware "chatserver/internal/api/middleware"
	"chatserver/internal/config"
	"chatserver/internal/domain"
	"chatserver/internal/filestore"
	"chatserver/internal/repository/redis"
	"chatserver/internal/security"
	"chatserver/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// Repositories bundles the store implementations the router wires into
// services. Assembled by the caller from the configured store driver.
type Repositories struct {
	Users      domain.UserRepository
	Workspaces domain.WorkspaceRepository
	Chats      domain.ChatRepository
	Messages   domain.MessageRepository
	Agents     domain.AgentRepository
	DB         handler.Pinger
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, repos Repositories, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtManager := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// AI backend registry
	registry := agent.NewRegistry()
	if cfg.AI.DeepSeek.APIKey != "" {
		apiKey := cfg.AI.DeepSeek.APIKey
		registry.Register(domain.AdapterTypeDeepSeek, func(model string) ai.Adapter {
			return deepseek.NewAdapter(apiKey, model)
		})
	} else {
		log.Warn().Msg("DeepSeek API key is empty, deepseek agents will fail")
	}
	if cfg.AI.Gemini.APIKey != "" {
		apiKey := cfg.AI.Gemini.APIKey
		registry.Register(domain.AdapterTypeGemini, func(model string) ai.Adapter {
			return gemini.NewAdapter(apiKey, model)
		})
	} else {
		log.Warn().Msg("Gemini API key is empty, gemini agents will fail")
	}

	// Member cache is optional; without Redis every check hits the store
	var memberCache service.MemberCache
	if redisClient != nil {
		memberCache = redis.NewMemberCache(redisClient)
	}

	storage := filestore.NewLocalStorage(cfg.Server.BaseDir)
	runner := agent.NewRunner(repos.Agents, repos.Messages, registry)

	// Services
	authService := service.NewAuthService(repos.Users, repos.Workspaces, jwtManager)
	workspaceService := service.NewWorkspaceService(repos.Workspaces, repos.Users)
	chatService := service.NewChatService(repos.Chats, memberCache)
	messageService := service.NewMessageService(repos.Messages, storage, runner)
	agentService := service.NewAgentService(repos.Agents)
	fileService := service.NewFileService(storage)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	chatHandler := handler.NewChatHandler(chatService)
	messageHandler := handler.NewMessageHandler(messageService)
	agentHandler := handler.NewAgentHandler(agentService)
	fileHandler := handler.NewFileHandler(fileService)

	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	chatMiddleware := customMiddleware.NewChatMiddleware(chatService)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(repos.DB))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/signin", authHandler.Signin)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/workspace", func(r chi.Router) {
				r.Get("/", workspaceHandler.Get)
				r.Get("/users", workspaceHandler.ListUsers)
				r.Post("/transfer-owner", workspaceHandler.TransferOwner)
			})

			r.Route("/chats", func(r chi.Router) {
				r.Get("/", chatHandler.List)
				r.Post("/", chatHandler.Create)

				r.Route("/{chatID}", func(r chi.Router) {
					r.Get("/", chatHandler.Get)
					r.Patch("/", chatHandler.Update)
					r.Delete("/", chatHandler.Delete)

					// Message and agent routes require chat membership
					r.Group(func(r chi.Router) {
						r.Use(chatMiddleware.RequireMember)

						r.Route("/messages", func(r chi.Router) {
							r.Get("/", messageHandler.List)
							r.Post("/", messageHandler.Create)
							r.Delete("/{messageID}", messageHandler.Delete)
						})

						r.Route("/agents", func(r chi.Router) {
							r.Get("/", agentHandler.List)
							r.Post("/", agentHandler.Create)
							r.Patch("/{agentID}", agentHandler.Update)
						})
					})
				})
			})

			r.Post("/upload", fileHandler.Upload)
		})
	})

	// File downloads resolve the full URL path, so they sit outside the
	// /api/v1 tree
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/files/*", fileHandler.Download)
	})

	return r
}
