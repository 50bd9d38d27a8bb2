package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB      DBConfig
	Server  ServerConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Auth    AuthConfig
	AI      AIConfig
	Queue   QueueConfig
	Plans   PlansConfig
	Context ContextConfig
	Polling PollingConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Level string
	Env   string
}

type AuthConfig struct {
	JWTSecret string
}

// AITaskConfig holds per-task model routing and sampling defaults.
type AITaskConfig struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

type AIConfig struct {
	Source          string // "openai" or "ollama"
	APIKey          string
	BaseURL         string
	CallTimeout     time.Duration
	QuestionGen     AITaskConfig
	AnswerFeedback  AITaskConfig
	SessionFeedback AITaskConfig
	DocumentAnalyze AITaskConfig
	Assistant       AITaskConfig
}

type QueueConfig struct {
	MaxRetries          int
	BackoffBase         time.Duration
	FeedbackConcurrency int
	AnalysisConcurrency int
}

// PlansConfig maps plan name -> feature -> monthly limit. -1 means unlimited.
type PlansConfig struct {
	Limits map[string]map[string]int
}

type ContextConfig struct {
	WindowSize int
}

type PollingConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../configs")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("auth.jwt_secret"),
		},
		AI: AIConfig{
			Source:          viper.GetString("ai.source"),
			APIKey:          viper.GetString("ai.api_key"),
			BaseURL:         viper.GetString("ai.base_url"),
			CallTimeout:     viper.GetDuration("ai.call_timeout"),
			QuestionGen:     loadTaskConfig("ai.question_gen"),
			AnswerFeedback:  loadTaskConfig("ai.answer_feedback"),
			SessionFeedback: loadTaskConfig("ai.session_feedback"),
			DocumentAnalyze: loadTaskConfig("ai.document_analyze"),
			Assistant:       loadTaskConfig("ai.assistant"),
		},
		Queue: QueueConfig{
			MaxRetries:          viper.GetInt("queue.max_retries"),
			BackoffBase:         viper.GetDuration("queue.backoff_base"),
			FeedbackConcurrency: viper.GetInt("queue.feedback_concurrency"),
			AnalysisConcurrency: viper.GetInt("queue.analysis_concurrency"),
		},
		Plans: PlansConfig{
			Limits: loadPlanLimits(),
		},
		Context: ContextConfig{
			WindowSize: viper.GetInt("context.window_size"),
		},
		Polling: PollingConfig{
			Interval:    viper.GetDuration("polling.interval"),
			MaxAttempts: viper.GetInt("polling.max_attempts"),
		},
	}

	// Override with environment variables if set
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if apiKey := os.Getenv("AI_API_KEY"); apiKey != "" {
		config.AI.APIKey = apiKey
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("ai.call_timeout", 30*time.Second)
	viper.SetDefault("queue.max_retries", 3)
	viper.SetDefault("queue.backoff_base", 2*time.Second)
	viper.SetDefault("queue.feedback_concurrency", 5)
	viper.SetDefault("queue.analysis_concurrency", 3)
	viper.SetDefault("context.window_size", 10)
	viper.SetDefault("polling.interval", 5*time.Second)
	viper.SetDefault("polling.max_attempts", 30)
}

func loadTaskConfig(key string) AITaskConfig {
	return AITaskConfig{
		Model:       viper.GetString(key + ".model"),
		MaxTokens:   viper.GetInt(key + ".max_tokens"),
		Temperature: viper.GetFloat64(key + ".temperature"),
	}
}

func loadPlanLimits() map[string]map[string]int {
	raw := viper.GetStringMap("plans")
	limits := make(map[string]map[string]int, len(raw))
	for plan := range raw {
		features := viper.GetStringMapString("plans." + plan)
		limits[plan] = make(map[string]int, len(features))
		for feature := range features {
			limits[plan][feature] = viper.GetInt("plans." + plan + "." + feature)
		}
	}
	return limits
}

func (c *Config) GetDSN() string {
	// Oracle DSN format: user/password@host:port/service
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
