package main

import (
	"log"

	"mockmate/internal/ai"
	"mockmate/internal/ai/strategy"
	"mockmate/internal/config"
	"mockmate/internal/contextstore"
	"mockmate/internal/database"
	"mockmate/internal/logger"
	"mockmate/internal/queue"
	"mockmate/internal/repository"
	"mockmate/internal/worker"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

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

	sessionRepo := repository.NewSessionDatabaseAdapter(db)
	questionRepo := repository.NewQuestionDatabaseAdapter(db)
	answerRepo := repository.NewAnswerDatabaseAdapter(db)
	analysisRepo := repository.NewAnalysisDatabaseAdapter(db)

	contextStore := contextstore.NewRedisContextStore(
		redisClient, strategy.NewKeywordClassifier(), cfg.Context.WindowSize, appLogger)

	handlers := worker.NewHandlers(
		sessionRepo,
		questionRepo,
		answerRepo,
		analysisRepo,
		strategy.NewAnswerFeedbackStrategy(gateway, appLogger),
		strategy.NewSessionFeedbackStrategy(gateway, appLogger),
		strategy.NewDocumentStrategy(gateway, appLogger),
		contextStore,
		appLogger,
	)

	srv := queue.NewServer(cfg.Redis, cfg.Queue, appLogger)
	mux := asynq.NewServeMux()
	handlers.Register(mux)

	appLogger.Info("Starting worker")
	if err := srv.Run(mux); err != nil {
		appLogger.Fatal("Worker stopped", zap.Error(err))
	}
}
