package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pulsefeed/social-api/internal/api/handler"
	"github.com/pulsefeed/social-api/internal/api/middleware"
	"github.com/pulsefeed/social-api/internal/core/service"
	"github.com/pulsefeed/social-api/internal/infrastructure/config"
	mongodb "github.com/pulsefeed/social-api/internal/infrastructure/db/mongo"
	redisdb "github.com/pulsefeed/social-api/internal/infrastructure/db/redis"
	healthhandlers "github.com/pulsefeed/social-api/internal/infrastructure/http/handlers"
	"github.com/pulsefeed/social-api/internal/infrastructure/queue"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// ctx bounds the lifetime of the background activity workers.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("social"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	tokenStore := redisdb.NewTokenStore(rdb, cfg.RefreshTokenTTL)

	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, log)
	dispatcher.Start(ctx)

	authService := service.NewAuthService(userRepo, tokenStore, cfg.JWTSecret, cfg.AccessTokenTTL, log)
	userService := service.NewUserService(userRepo, log)
	postService := service.NewPostService(postRepo, userRepo, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)

	auth := middleware.Auth(cfg.JWTSecret)
	authOptional := middleware.AuthOptional(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)

	// --- User routes (authentication required, including reads) ---
	e.GET("/user", userHandler.List, auth)
	e.GET("/user/:id", userHandler.Get, auth)
	e.PATCH("/user/:id", userHandler.Update, auth)

	// --- Post routes (reads public, writes authenticated) ---
	e.GET("/post", postHandler.List, authOptional)
	e.GET("/post/:id", postHandler.Get, authOptional)
	e.POST("/post", postHandler.Create, auth)
	e.PUT("/post/:id", postHandler.Update, auth)
	e.DELETE("/post/:id", postHandler.Delete, auth)
	e.POST("/post/:id/like", postHandler.Like, auth)
	e.POST("/post/:id/remove_like", postHandler.Unlike, auth)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
