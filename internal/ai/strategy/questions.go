package strategy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mockmate/internal/domain"

	"go.uber.org/zap"
)

// QuestionStrategy builds question-generation prompts and parses the
// provider's structured output. Question variety wants a higher temperature;
// that lives in the gateway's per-task config, not here.
type QuestionStrategy struct {
	gateway domain.CompletionGateway
	logger  *zap.Logger
}

// NewQuestionStrategy creates the question generation strategy.
func NewQuestionStrategy(gateway domain.CompletionGateway, logger *zap.Logger) *QuestionStrategy {
	return &QuestionStrategy{gateway: gateway, logger: logger}
}

// Generate implements domain.QuestionGenerator. A provider failure surfaces
// to the caller (the start flow is synchronous), but non-conforming output
// degrades to the built-in bank instead of failing the whole session start.
func (s *QuestionStrategy) Generate(ctx context.Context, session *domain.InterviewSession) ([]domain.GeneratedQuestion, error) {
	prompt := s.buildGenerationPrompt(session)

	response, err := s.gateway.Complete(ctx, domain.TaskQuestionGeneration, prompt)
	if err != nil {
		return nil, err
	}

	var questions []domain.GeneratedQuestion
	if err := decodeArray(response, &questions); err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			s.logger.Warn("Question generation output did not conform, using fallback bank",
				zap.String("session_id", session.ID),
				zap.Error(parseErr.Cause),
			)
			questions = nil
		} else {
			return nil, err
		}
	}

	// Drop incomplete items, then top up from the bank to the exact count.
	valid := questions[:0]
	for _, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		if q.Category == "" {
			q.Category = string(session.Type)
		}
		if q.Difficulty == "" {
			q.Difficulty = string(session.Difficulty)
		}
		valid = append(valid, q)
	}
	questions = valid

	if len(questions) < session.NumQuestions {
		bank := fallbackBank(session.Type)
		for i := 0; len(questions) < session.NumQuestions; i++ {
			questions = append(questions, bank[i%len(bank)])
		}
	}
	return questions[:session.NumQuestions], nil
}

// GenerateAnswerVariants implements domain.QuestionGenerator. Count is
// clamped to 1..3; each variant carries 3-5 key points, a confidence in
// [0, 1], 2-3 follow-ups, and a STAR breakdown for behavioral questions.
func (s *QuestionStrategy) GenerateAnswerVariants(ctx context.Context, question *domain.InterviewQuestion, language domain.Language, count int) ([]domain.AnswerVariant, error) {
	if count < 1 {
		count = 1
	}
	if count > 3 {
		count = 3
	}
	behavioral := IsBehavioralQuestion(question.Text)

	prompt := s.buildVariantPrompt(question, language, count, behavioral)
	response, err := s.gateway.Complete(ctx, domain.TaskQuestionGeneration, prompt)
	if err != nil {
		return nil, err
	}

	var variants []domain.AnswerVariant
	if err := decodeArray(response, &variants); err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			s.logger.Warn("Answer variant output did not conform, using fallback",
				zap.String("question_id", question.ID),
				zap.Error(parseErr.Cause),
			)
			return []domain.AnswerVariant{fallbackVariant(question)}, nil
		}
		return nil, err
	}

	valid := variants[:0]
	for _, v := range variants {
		if strings.TrimSpace(v.Content) == "" {
			continue
		}
		v.Confidence = clamp(v.Confidence, 0, 1)
		if !behavioral {
			v.STAR = nil
		}
		valid = append(valid, v)
	}
	if len(valid) == 0 {
		return []domain.AnswerVariant{fallbackVariant(question)}, nil
	}
	if len(valid) > count {
		valid = valid[:count]
	}
	return valid, nil
}

func (s *QuestionStrategy) buildGenerationPrompt(session *domain.InterviewSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert interviewer. Create %d unique %s interview questions for a %s-level candidate.`,
		session.NumQuestions, session.Type, session.Difficulty)
	if session.Domain != "" {
		fmt.Fprintf(&b, "\nDomain: %s.", session.Domain)
	}
	if len(session.Technologies) > 0 {
		fmt.Fprintf(&b, "\nTechnologies to cover: %s.", strings.Join(session.Technologies, ", "))
	}
	b.WriteString("\n\n" + languageDirective(session.Language))
	b.WriteString(`

Respond with ONLY a single JSON array. Each element:
{
  "question": "the question text",
  "category": "technical|behavioral|case_study",
  "difficulty": "junior|mid|senior",
  "key_points": ["3-5 points a strong answer must cover"],
  "hints": ["optional short hints"]
}`)
	fmt.Fprintf(&b, "\nThe array must contain exactly %d objects.", session.NumQuestions)
	return b.String()
}

func (s *QuestionStrategy) buildVariantPrompt(question *domain.InterviewQuestion, language domain.Language, count int, behavioral bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert interview coach. Write %d distinct strong example answers for this interview question:

Question: %s`, count, question.Text)
	if len(question.KeyPoints) > 0 {
		fmt.Fprintf(&b, "\nKey points to cover: %s", strings.Join(question.KeyPoints, ", "))
	}
	b.WriteString("\n\n" + languageDirective(language))
	b.WriteString(`

Respond with ONLY a single JSON array. Each element:
{
  "content": "the full example answer",
  "key_points": ["3-5 key points this answer demonstrates"],
  "confidence": 0.0,
  "follow_up_questions": ["2-3 questions an interviewer might ask next"]`)
	if behavioral {
		b.WriteString(`,
  "star": {"situation": "...", "task": "...", "action": "...", "result": "..."}`)
	}
	b.WriteString(`
}

Rules:
1. "confidence" is your confidence in the answer's quality, between 0 and 1.
2. Answers must differ meaningfully in approach or emphasis.`)
	return b.String()
}

var _ domain.QuestionGenerator = (*QuestionStrategy)(nil)
