// @title MockMate API
// @version 1.0
// @description AI-assisted interview preparation service.
// @host localhost:8090
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mockmate/internal/ai"
	"mockmate/internal/ai/strategy"
	"mockmate/internal/config"
	"mockmate/internal/contextstore"
	"mockmate/internal/database"
	"mockmate/internal/handler"
	"mockmate/internal/logger"
	"mockmate/internal/middleware"
	"mockmate/internal/polling"
	"mockmate/internal/queue"
	"mockmate/internal/repository"
	"mockmate/internal/service"
	"mockmate/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	gateway, err := ai.NewGateway(cfg.AI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create AI gateway", zap.Error(err))
	}

	queueClient := queue.NewClient(cfg.Redis, cfg.Queue, appLogger)
	defer queueClient.Close()

	// Repositories
	sessionRepo := repository.NewSessionDatabaseAdapter(db)
	questionRepo := repository.NewQuestionDatabaseAdapter(db)
	answerRepo := repository.NewAnswerDatabaseAdapter(db)
	analysisRepo := repository.NewAnalysisDatabaseAdapter(db)
	usageRepo := repository.NewUsageDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	contextStore := contextstore.NewRedisContextStore(
		redisClient, strategy.NewKeywordClassifier(), cfg.Context.WindowSize, appLogger)

	// Services
	generator := strategy.NewQuestionStrategy(gateway, appLogger)
	quotaGuard := service.NewQuotaGuard(usageRepo, cfg.Plans)
	interviewService := service.NewInterviewService(
		sessionRepo, questionRepo, answerRepo, generator, quotaGuard, queueClient, contextStore, txManager)
	analysisService := service.NewAnalysisService(analysisRepo, quotaGuard, queueClient, txManager)
	assistantService := service.NewAssistantService(sessionRepo, gateway, contextStore)

	// Handlers
	validator := validation.NewValidator()
	waiter := polling.New(cfg.Polling.Interval, cfg.Polling.MaxAttempts)
	interviewHandler := handler.NewInterviewHandler(interviewService, validator, waiter)
	analysisHandler := handler.NewAnalysisHandler(analysisService, validator, waiter)
	assistantHandler := handler.NewAssistantHandler(assistantService, validator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger())

	api := app.Group("/api/v1", middleware.Protected(cfg.Auth))

	interviews := api.Group("/interviews")
	interviews.Post("/", interviewHandler.Start)
	interviews.Get("/:id", interviewHandler.Get)
	interviews.Get("/:id/questions", interviewHandler.GetQuestions)
	interviews.Post("/:id/questions/:questionId/suggestions", interviewHandler.SuggestAnswers)
	interviews.Post("/:id/answers", interviewHandler.SubmitAnswer)
	interviews.Get("/:id/answers", interviewHandler.GetAnswers)
	interviews.Post("/:id/complete", interviewHandler.Complete)
	interviews.Post("/:id/pause", interviewHandler.Pause)
	interviews.Post("/:id/resume", interviewHandler.Resume)
	interviews.Post("/:id/assistant", assistantHandler.Ask)

	analyses := api.Group("/analyses")
	analyses.Post("/", analysisHandler.Upload)
	analyses.Get("/:id", analysisHandler.Get)
	analyses.Post("/:id/rerun", analysisHandler.Rerun)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		appLogger.Info("Starting API server", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
