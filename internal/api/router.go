package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hugh/taskhive/internal/api/handlers"
	"github.com/hugh/taskhive/internal/api/middleware"
	"github.com/hugh/taskhive/internal/auth"
	"github.com/hugh/taskhive/internal/tasks"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Logger         *slog.Logger
	Sessions       *auth.SessionManager
	AuthService    *auth.Service
	AllowedOrigins []string
	RateLimitReqs  int
	RateLimitSecs  int
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		// Default to localhost for development - configure in production
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize services
	taskService := tasks.NewService(cfg.DB, cfg.Logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	userHandler := handlers.NewUserHandler()
	projectHandler := handlers.NewProjectHandler(taskService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Public auth endpoints
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/token", authHandler.Token)
	r.Post("/auth/swagger/token", authHandler.SwaggerToken)

	// Protected routes: authenticate, then require an active account
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Sessions, cfg.AuthService))

		// Logout only needs a valid session; a deactivated user can
		// still end their own session.
		r.Get("/auth/logout", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireActive)

			r.Get("/me", userHandler.Me)

			r.Route("/projects", func(r chi.Router) {
				r.Post("/", projectHandler.Create)
				r.Get("/", projectHandler.List)
				r.Get("/{projectID}", projectHandler.Get)
				r.Put("/{projectID}", projectHandler.Update)
				r.Delete("/{projectID}", projectHandler.Delete)

				r.Route("/{projectID}/tasks", func(r chi.Router) {
					r.Post("/", taskHandler.Create)
					r.Get("/", taskHandler.List)
					r.Get("/{taskID}", taskHandler.Get)
					r.Put("/{taskID}", taskHandler.Update)
					r.Delete("/{taskID}", taskHandler.Delete)
				})
			})
		})
	})

	return &Router{r}
}
