package domain

import (
	"context"
	"fmt"
)

// AITask selects the model routing and sampling defaults for a completion call.
type AITask string

const (
	TaskQuestionGeneration AITask = "question_generation"
	TaskAnswerFeedback     AITask = "answer_feedback"
	TaskSessionFeedback    AITask = "session_feedback"
	TaskDocumentAnalysis   AITask = "document_analysis"
	TaskAssistant          AITask = "assistant"
)

// CompletionGateway is the uniform interface to the external text-completion
// provider. Implementations hide provider selection and model routing and
// normalize provider failures into ProviderError.
type CompletionGateway interface {
	Complete(ctx context.Context, task AITask, prompt string) (string, error)
}

// ProviderErrorKind is the small taxonomy async and sync callers branch on.
type ProviderErrorKind string

const (
	ProviderTimeout        ProviderErrorKind = "timeout"
	ProviderRateLimited    ProviderErrorKind = "rate_limited"
	ProviderOverloaded     ProviderErrorKind = "overloaded"
	ProviderAuthFailure    ProviderErrorKind = "auth_failure"
	ProviderInvalidRequest ProviderErrorKind = "invalid_request"
)

// ProviderError is a normalized AI provider failure.
type ProviderError struct {
	Kind  ProviderErrorKind
	Cause error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("ai provider %s: %v", e.Kind, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Transient reports whether the failure is eligible for queue retry.
// Auth and malformed-request failures are configuration problems and are
// never retried.
func (e *ProviderError) Transient() bool {
	switch e.Kind {
	case ProviderTimeout, ProviderRateLimited, ProviderOverloaded:
		return true
	default:
		return false
	}
}

func NewProviderError(kind ProviderErrorKind, cause error) *ProviderError {
	return &ProviderError{Kind: kind, Cause: cause}
}

// ParseError marks a provider response that did not conform to the requested
// output schema. Generation strategies fall back on it; scoring strategies
// treat it as retryable.
type ParseError struct {
	Cause    error
	Response string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ai response parse failed: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// GeneratedQuestion is one question produced by the generation strategy.
type GeneratedQuestion struct {
	Text       string   `json:"question"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	KeyPoints  []string `json:"key_points"`
	Hints      []string `json:"hints,omitempty"`
}

// STARBreakdown is the four-part structure attached to behavioral answers.
type STARBreakdown struct {
	Situation string `json:"situation"`
	Task      string `json:"task"`
	Action    string `json:"action"`
	Result    string `json:"result"`
}

// AnswerVariant is one structured model answer for a question, confidence in [0, 1].
type AnswerVariant struct {
	Content    string         `json:"content"`
	KeyPoints  []string       `json:"key_points"`
	STAR       *STARBreakdown `json:"star,omitempty"`
	Confidence float64        `json:"confidence"`
	FollowUps  []string       `json:"follow_up_questions"`
}

// QuestionGenerator produces a question batch for a new session. It is the
// one synchronous AI call: the caller cannot proceed without questions.
type QuestionGenerator interface {
	Generate(ctx context.Context, session *InterviewSession) ([]GeneratedQuestion, error)
	GenerateAnswerVariants(ctx context.Context, question *InterviewQuestion, language Language, count int) ([]AnswerVariant, error)
}

// AnswerEvaluator scores a single submitted answer, score in [0, 10].
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, question *InterviewQuestion, answer *InterviewAnswer, language Language) (float64, *AnswerFeedback, error)
}

// SessionEvaluator produces the aggregate session feedback, overall in [0, 100].
type SessionEvaluator interface {
	Evaluate(ctx context.Context, session *InterviewSession, questions []*InterviewQuestion, answers []*InterviewAnswer) (float64, *SessionFeedback, error)
}

// DocumentAnalyzer produces the structured resume analysis.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, record *AnalysisRecord) (*AnalysisResult, error)
}
