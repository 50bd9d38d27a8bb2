package strategy

import (
	"context"
	"fmt"
	"strings"

	"mockmate/internal/domain"

	"go.uber.org/zap"
)

// SessionFeedbackStrategy produces the aggregate evaluation of a completed
// session from the individual answers and whatever per-answer scores exist
// at the time it runs.
type SessionFeedbackStrategy struct {
	gateway domain.CompletionGateway
	logger  *zap.Logger
}

// NewSessionFeedbackStrategy creates the session-level evaluation strategy.
func NewSessionFeedbackStrategy(gateway domain.CompletionGateway, logger *zap.Logger) *SessionFeedbackStrategy {
	return &SessionFeedbackStrategy{gateway: gateway, logger: logger}
}

type sessionFeedbackResponse struct {
	OverallScore       float64  `json:"overall_score"`
	TechnicalAccuracy  float64  `json:"technical_accuracy"`
	Communication      float64  `json:"communication"`
	StructuredThinking float64  `json:"structured_thinking"`
	Confidence         float64  `json:"confidence"`
	ProblemSolving     float64  `json:"problem_solving"`
	Summary            string   `json:"summary"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	TopConcerns        []string `json:"top_concerns"`
	Recommendations    []string `json:"recommendations"`
	NextSteps          []string `json:"next_steps"`
}

// Evaluate implements domain.SessionEvaluator
func (s *SessionFeedbackStrategy) Evaluate(ctx context.Context, session *domain.InterviewSession, questions []*domain.InterviewQuestion, answers []*domain.InterviewAnswer) (float64, *domain.SessionFeedback, error) {
	prompt := s.buildPrompt(session, questions, answers)
	response, err := s.gateway.Complete(ctx, domain.TaskSessionFeedback, prompt)
	if err != nil {
		return 0, nil, err
	}

	var parsed sessionFeedbackResponse
	if err := decodeObject(response, &parsed); err != nil {
		s.logger.Warn("Session feedback output did not conform",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
		return 0, nil, err
	}

	feedback := &domain.SessionFeedback{
		TechnicalAccuracy:  clamp(parsed.TechnicalAccuracy, 0, 10),
		Communication:      clamp(parsed.Communication, 0, 10),
		StructuredThinking: clamp(parsed.StructuredThinking, 0, 10),
		Confidence:         clamp(parsed.Confidence, 0, 10),
		ProblemSolving:     clamp(parsed.ProblemSolving, 0, 10),
		Summary:            parsed.Summary,
		Strengths:          parsed.Strengths,
		Weaknesses:         parsed.Weaknesses,
		TopConcerns:        parsed.TopConcerns,
		Recommendations:    parsed.Recommendations,
		NextSteps:          parsed.NextSteps,
	}
	return clamp(parsed.OverallScore, 0, 100), feedback, nil
}

func (s *SessionFeedbackStrategy) buildPrompt(session *domain.InterviewSession, questions []*domain.InterviewQuestion, answers []*domain.InterviewAnswer) string {
	questionByID := make(map[string]*domain.InterviewQuestion, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a senior interviewer writing the final evaluation of a %s mock interview at %s level.

Transcript:`, session.Type, session.Difficulty)
	for i, a := range answers {
		content := a.Text
		if content == "" {
			content = a.Transcript
		}
		q := questionByID[a.QuestionID]
		questionText := "(question unavailable)"
		if q != nil {
			questionText = q.Text
		}
		fmt.Fprintf(&b, "\n\nQ%d: %s\nAnswer: %s", i+1, questionText, content)
		if a.Score != nil {
			fmt.Fprintf(&b, "\nIndividual score: %.1f/10", *a.Score)
		}
	}
	b.WriteString("\n\n" + languageDirective(session.Language))
	b.WriteString(`

Respond with ONLY a JSON object:
{
  "overall_score": 0.0,
  "technical_accuracy": 0.0,
  "communication": 0.0,
  "structured_thinking": 0.0,
  "confidence": 0.0,
  "problem_solving": 0.0,
  "summary": "2-4 sentence overall assessment",
  "strengths": ["list"],
  "weaknesses": ["list"],
  "top_concerns": ["list"],
  "recommendations": ["ordered list, most important first"],
  "next_steps": ["ordered list of concrete next steps"]
}

Rules:
1. "overall_score" is between 0 and 100.
2. The five sub-ratings are each between 0 and 10.
3. Base the evaluation only on the transcript above.`)
	return b.String()
}

var _ domain.SessionEvaluator = (*SessionFeedbackStrategy)(nil)
