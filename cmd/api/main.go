package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/quizbank/trivia/internal/config"
	"github.com/quizbank/trivia/internal/database"
	"github.com/quizbank/trivia/internal/handler"
	"github.com/quizbank/trivia/internal/ratelimit"
	"github.com/quizbank/trivia/internal/repository/postgres"
	"github.com/quizbank/trivia/internal/service"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()
	cfg := config.Load()

	// Initialize database connection
	ctx := context.Background()
	pool, err := database.ConnectPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Initialize repositories
	categoryRepo := postgres.NewCategoryRepository(pool)
	questionRepo := postgres.NewQuestionRepository(pool)

	// Initialize services
	triviaService := service.NewTriviaService(categoryRepo, questionRepo, nil)

	// Initialize handlers
	triviaHandler := handler.NewTriviaHandler(triviaService)

	// Initialize Echo
	e := echo.New()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if cfg.RateLimit > 0 {
		redisClient, err := database.ConnectRedis(cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		limiter := ratelimit.NewLimiter(redisClient, cfg.RateLimit, time.Minute)
		e.Use(limiter.Middleware())
	}

	// Routes
	triviaHandler.Register(e)

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	// Start server
	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal(err)
	}
}
