package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mockmate/internal/config"
	"mockmate/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// Gateway implements domain.CompletionGateway on top of a langchaingo model.
// Provider selection happens once at construction; per-task model routing and
// sampling happen per call.
type Gateway struct {
	llm    llms.Model
	cfg    config.AIConfig
	logger *zap.Logger
}

// NewGateway creates the gateway for the configured provider source.
func NewGateway(cfg config.AIConfig, logger *zap.Logger) (*Gateway, error) {
	var llm llms.Model
	var err error

	switch cfg.Source {
	case "openai":
		opts := []openai.Option{openai.WithToken(cfg.APIKey)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err = openai.New(opts...)
	case "ollama":
		httpClient := &http.Client{
			Timeout: cfg.CallTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     10 * time.Second,
			},
		}
		llm, err = ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Assistant.Model),
			ollama.WithHTTPClient(httpClient),
		)
	default:
		return nil, fmt.Errorf("unsupported AI source: %s", cfg.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	logger.Info("AI completion gateway initialized", zap.String("source", cfg.Source))
	return &Gateway{llm: llm, cfg: cfg, logger: logger}, nil
}

// Complete implements domain.CompletionGateway
func (g *Gateway) Complete(ctx context.Context, task domain.AITask, prompt string) (string, error) {
	tc := g.taskConfig(task)

	ctx, cancel := context.WithTimeout(ctx, g.cfg.CallTimeout)
	defer cancel()

	opts := []llms.CallOption{
		llms.WithTemperature(tc.Temperature),
	}
	if tc.Model != "" {
		opts = append(opts, llms.WithModel(tc.Model))
	}
	if tc.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(tc.MaxTokens))
	}

	start := time.Now()
	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, opts...)
	if err != nil {
		perr := classify(err)
		g.logger.Error("AI completion failed",
			zap.String("task", string(task)),
			zap.String("model", tc.Model),
			zap.String("kind", string(perr.Kind)),
			zap.Error(err),
		)
		return "", perr
	}

	g.logger.Debug("AI completion succeeded",
		zap.String("task", string(task)),
		zap.String("model", tc.Model),
		zap.Duration("duration", time.Since(start)),
	)
	return response, nil
}

func (g *Gateway) taskConfig(task domain.AITask) config.AITaskConfig {
	switch task {
	case domain.TaskQuestionGeneration:
		return g.cfg.QuestionGen
	case domain.TaskAnswerFeedback:
		return g.cfg.AnswerFeedback
	case domain.TaskSessionFeedback:
		return g.cfg.SessionFeedback
	case domain.TaskDocumentAnalysis:
		return g.cfg.DocumentAnalyze
	default:
		return g.cfg.Assistant
	}
}

// classify normalizes raw provider failures into the domain taxonomy.
// Unknown failures default to overloaded so the queue treats them as
// retryable rather than permanently failing a scoring job.
func classify(err error) *domain.ProviderError {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewProviderError(domain.ProviderTimeout, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "invalid api key") || strings.Contains(msg, "incorrect api key"):
		return domain.NewProviderError(domain.ProviderAuthFailure, err)
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota"):
		return domain.NewProviderError(domain.ProviderRateLimited, err)
	case strings.Contains(msg, "400") || strings.Contains(msg, "invalid request") || strings.Contains(msg, "model not found"):
		return domain.NewProviderError(domain.ProviderInvalidRequest, err)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return domain.NewProviderError(domain.ProviderTimeout, err)
	default:
		return domain.NewProviderError(domain.ProviderOverloaded, err)
	}
}

var _ domain.CompletionGateway = (*Gateway)(nil)
