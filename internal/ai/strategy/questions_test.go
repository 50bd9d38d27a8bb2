package strategy

import (
	"context"
	"errors"
	"testing"

	"mockmate/internal/domain"
	"mockmate/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func technicalSession(numQuestions int) *domain.InterviewSession {
	return &domain.InterviewSession{
		ID:           "01HZXF5Y8MJ2Q4V6T8RBCDEFGH",
		Type:         domain.InterviewTechnical,
		Difficulty:   domain.DifficultyMid,
		NumQuestions: numQuestions,
		Language:     domain.LanguageEnglish,
	}
}

func TestQuestionStrategy_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("ParsesProviderOutput", func(t *testing.T) {
		gateway := new(MockCompletionGateway)
		strategy := NewQuestionStrategy(gateway, logger.Get())

		gateway.On("Complete", ctx, domain.TaskQuestionGeneration, mock.AnythingOfType("string")).
			Return(`[
				{"question": "Explain goroutine scheduling", "category": "technical", "difficulty": "mid", "key_points": ["GMP model", "preemption"]},
				{"question": "What is a race condition?", "category": "technical", "difficulty": "mid", "key_points": ["shared state", "happens-before"]}
			]`, nil)

		questions, err := strategy.Generate(ctx, technicalSession(2))
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, "Explain goroutine scheduling", questions[0].Text)
		assert.Equal(t, []string{"shared state", "happens-before"}, questions[1].KeyPoints)
		gateway.AssertExpectations(t)
	})

	t.Run("FillsMissingCategoryAndDifficulty", func(t *testing.T) {
		gateway := new(MockCompletionGateway)
		strategy := NewQuestionStrategy(gateway, logger.Get())

		gateway.On("Complete", ctx, domain.TaskQuestionGeneration, mock.AnythingOfType("string")).
			Return(`[{"question": "Describe TCP slow start"}]`, nil)

		questions, err := strategy.Generate(ctx, technicalSession(1))
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "technical", questions[0].Category)
		assert.Equal(t, "mid", questions[0].Difficulty)
	})

	t.Run("NonConformingOutputFallsBackToBank", func(t *testing.T) {
		gateway := new(MockCompletionGateway)
		strategy := NewQuestionStrategy(gateway, logger.Get())

		gateway.On("Complete", ctx, domain.TaskQuestionGeneration, mock.AnythingOfType("string")).
			Return("Sorry, I cannot help with that.", nil)

		questions, err := strategy.Generate(ctx, technicalSession(3))
		require.NoError(t, err)
		require.Len(t, questions, 3)
		for _, q := range questions {
			assert.NotEmpty(t, q.Text)
			assert.Equal(t, "technical", q.Category)
		}
	})

	t.Run("TopsUpShortBatches", func(t *testing.T) {
		gateway := new(MockCompletionGateway)
		strategy := NewQuestionStrategy(gateway, logger.Get())

		// Two items, one of them blank. Only one survives, so two come
		// from the bank.
		gateway.On("Complete", ctx, domain.TaskQuestionGeneration, mock.AnythingOfType("string")).
			Return(`[{"question": "Explain indexes"}, {"question": "   "}]`, nil)

		questions, err := strategy.Generate(ctx, technicalSession(3))
		require.NoError(t, err)
		require.Len(t, questions, 3)
		assert.Equal(t, "Explain indexes", questions[0].Text)
		assert.NotEmpty(t, questions[1].Text)
		assert.NotEmpty(t, questions[2].Text)
	})

	t.Run("ProviderFailurePropagates", func(t *testing.T) {
		gateway := new(MockCompletionGateway)
		strategy := NewQuestionStrategy(gateway, logger.Get())

		providerErr := domain.NewProviderError(domain.ProviderTimeout, errors.New("deadline exceeded"))
		gateway.On("Complete", ctx, domain.TaskQuestionGeneration, mock.AnythingOfType("string")).
			Return("", providerErr)

		questions, err := strategy.Generate(ctx, technicalSession(2))
		assert.Nil(t, questions)
		var pErr *domain.ProviderError
		assert.ErrorAs(t, err, &pErr)
	})
}

func TestFallbackBank_MixedDrawsFromAllTypes(t *testing.T) {
	bank := fallbackBank(domain.InterviewMixed)
	require.NotEmpty(t, bank)

	categories := make(map[string]bool)
	for _, q := range bank {
		categories[q.Category] = true
	}
	assert.True(t, categories["technical"])
	assert.True(t, categories["behavioral"])
	assert.True(t, categories["case_study"])
}

func TestQuestionStrategy_GenerateAnswerVariants(t *testing.T) {
	ctx := context.Background()
	question := &domain.InterviewQuestion{
		ID:        "q-1",
		Text:      "How would you shard a relational database?",
		KeyPoints: []string{"shard key", "rebalancing"},
	}

	t.Run("ClampsConfidenceAndStripsSTARForNonBehavioral", func(t *testing.T) {
		gateway := new(MockCompletionGateway)
		strategy := NewQuestionStrategy(gateway, logger.Get())

		gateway.On("Complete", ctx, domain.TaskQuestionGeneration, mock.AnythingOfType("string")).
			Return(`[{"content": "Pick a shard key that matches the access pattern.", "confidence": 1.7, "star": {"situation": "x", "task": "x", "action": "x", "result": "x"}}]`, nil)

		variants, err := strategy.GenerateAnswerVariants(ctx, question, domain.LanguageEnglish, 1)
		require.NoError(t, err)
		require.Len(t, variants, 1)
		assert.Equal(t, 1.0, variants[0].Confidence)
		assert.Nil(t, variants[0].STAR)
	})

	t.Run("CountIsClampedToThree", func(t *testing.T) {
		gateway := new(MockCompletionGateway)
		strategy := NewQuestionStrategy(gateway, logger.Get())

		gateway.On("Complete", ctx, domain.TaskQuestionGeneration, mock.MatchedBy(func(prompt string) bool {
			return len(prompt) > 0
		})).Return(`[
			{"content": "a", "confidence": 0.5},
			{"content": "b", "confidence": 0.5},
			{"content": "c", "confidence": 0.5},
			{"content": "d", "confidence": 0.5}
		]`, nil)

		variants, err := strategy.GenerateAnswerVariants(ctx, question, domain.LanguageEnglish, 5)
		require.NoError(t, err)
		assert.Len(t, variants, 3)
	})

	t.Run("NonConformingOutputFallsBackToSingleVariant", func(t *testing.T) {
		gateway := new(MockCompletionGateway)
		strategy := NewQuestionStrategy(gateway, logger.Get())

		behavioral := &domain.InterviewQuestion{
			ID:   "q-2",
			Text: "Tell me about a time you missed a deadline.",
		}
		gateway.On("Complete", ctx, domain.TaskQuestionGeneration, mock.AnythingOfType("string")).
			Return("no json here", nil)

		variants, err := strategy.GenerateAnswerVariants(ctx, behavioral, domain.LanguageUzbek, 2)
		require.NoError(t, err)
		require.Len(t, variants, 1)
		assert.NotEmpty(t, variants[0].Content)
		require.NotNil(t, variants[0].STAR)
		assert.NotEmpty(t, variants[0].STAR.Situation)
	})
}

func TestIsBehavioralQuestion(t *testing.T) {
	assert.True(t, IsBehavioralQuestion("Tell me about a time you led a migration"))
	assert.True(t, IsBehavioralQuestion("Describe a SITUATION where you disagreed"))
	assert.False(t, IsBehavioralQuestion("Explain how TCP congestion control works"))
}
