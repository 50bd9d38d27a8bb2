package strategy

import (
	"context"
	"fmt"
	"strings"

	"mockmate/internal/domain"

	"go.uber.org/zap"
)

// AnswerFeedbackStrategy scores one submitted answer against its question's
// expected key points. There is no safe default for a score, so parse errors
// propagate as retryable instead of falling back.
type AnswerFeedbackStrategy struct {
	gateway domain.CompletionGateway
	logger  *zap.Logger
}

// NewAnswerFeedbackStrategy creates the per-answer evaluation strategy.
func NewAnswerFeedbackStrategy(gateway domain.CompletionGateway, logger *zap.Logger) *AnswerFeedbackStrategy {
	return &AnswerFeedbackStrategy{gateway: gateway, logger: logger}
}

type answerFeedbackResponse struct {
	Score            float64  `json:"score"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	KeyPointsCovered []string `json:"key_points_covered"`
	KeyPointsMissed  []string `json:"key_points_missed"`
	Suggestions      []string `json:"suggestions"`
	ImprovedAnswer   string   `json:"improved_answer"`
}

// Evaluate implements domain.AnswerEvaluator
func (s *AnswerFeedbackStrategy) Evaluate(ctx context.Context, question *domain.InterviewQuestion, answer *domain.InterviewAnswer, language domain.Language) (float64, *domain.AnswerFeedback, error) {
	content := answer.Text
	if content == "" {
		content = answer.Transcript
	}

	prompt := s.buildPrompt(question, content, language)
	response, err := s.gateway.Complete(ctx, domain.TaskAnswerFeedback, prompt)
	if err != nil {
		return 0, nil, err
	}

	var parsed answerFeedbackResponse
	if err := decodeObject(response, &parsed); err != nil {
		s.logger.Warn("Answer feedback output did not conform",
			zap.String("answer_id", answer.ID),
			zap.Error(err),
		)
		return 0, nil, err
	}

	feedback := &domain.AnswerFeedback{
		Strengths:        parsed.Strengths,
		Improvements:     parsed.Improvements,
		KeyPointsCovered: parsed.KeyPointsCovered,
		KeyPointsMissed:  parsed.KeyPointsMissed,
		Suggestions:      parsed.Suggestions,
		ImprovedAnswer:   parsed.ImprovedAnswer,
	}
	return clamp(parsed.Score, 0, 10), feedback, nil
}

func (s *AnswerFeedbackStrategy) buildPrompt(question *domain.InterviewQuestion, content string, language domain.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an interview answer evaluator. Evaluate the candidate's answer.

Question: %s
Expected key points: %s
Candidate's answer: %s`, question.Text, strings.Join(question.KeyPoints, ", "), content)
	b.WriteString("\n\n" + languageDirective(language))
	b.WriteString(`

Respond with ONLY a JSON object:
{
  "score": 0.0,
  "strengths": ["3-5 things done well"],
  "improvements": ["3-5 areas to improve"],
  "key_points_covered": ["expected key points the answer covered"],
  "key_points_missed": ["expected key points the answer missed"],
  "suggestions": ["3-5 actionable suggestions"],
  "improved_answer": "an optional improved example answer"
}

Rules:
1. "score" is between 0 and 10, where 10 is an ideal answer.
2. key_points_covered and key_points_missed must only contain items from the expected key points.
3. Keep every list item under 25 words.`)
	return b.String()
}

var _ domain.AnswerEvaluator = (*AnswerFeedbackStrategy)(nil)
