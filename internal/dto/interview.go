package dto

import (
	"time"

	"mockmate/internal/domain"
)

// StartInterviewRequest is the request body for starting a mock interview
// @Description Parameters for a new mock interview session
type StartInterviewRequest struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Domain           string   `json:"domain,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
	NumQuestions     int      `json:"numQuestions"`
	Mode             string   `json:"mode"`
	TimeLimitMinutes int      `json:"timeLimitMinutes,omitempty"`
	Language         string   `json:"language,omitempty"`
}

// ToDomain builds the unsaved session entity from the request.
func (r *StartInterviewRequest) ToDomain(userID string) *domain.InterviewSession {
	session := domain.NewInterviewSession(
		userID,
		domain.InterviewType(r.Type),
		domain.Difficulty(r.Difficulty),
		domain.AnswerMode(r.Mode),
		r.NumQuestions,
	)
	session.Domain = r.Domain
	session.Technologies = r.Technologies
	session.TimeLimitMinutes = r.TimeLimitMinutes
	if r.Language != "" {
		session.Language = domain.Language(r.Language)
	}
	return session
}

// SubmitAnswerRequest is the request body for answering the current question
// @Description One answer to the session's current question
type SubmitAnswerRequest struct {
	QuestionID      string `json:"questionId"`
	AnswerType      string `json:"answerType"`
	AnswerText      string `json:"answerText,omitempty"`
	AudioURL        string `json:"audioUrl,omitempty"`
	Transcript      string `json:"transcript,omitempty"`
	DurationSeconds int    `json:"durationSeconds"`
}

// AskAssistantRequest is the request body for the in-session assistant
type AskAssistantRequest struct {
	Message string `json:"message"`
}

// SuggestAnswersRequest is the request body for model answer variants
type SuggestAnswersRequest struct {
	Count int `json:"count"`
}

// SessionResponse represents an interview session in the API response
// @Description Interview session state
type SessionResponse struct {
	ID                   string                  `json:"id"`
	Type                 string                  `json:"type"`
	Difficulty           string                  `json:"difficulty"`
	Domain               string                  `json:"domain,omitempty"`
	Technologies         []string                `json:"technologies,omitempty"`
	NumQuestions         int                     `json:"numQuestions"`
	Mode                 string                  `json:"mode"`
	Language             string                  `json:"language"`
	Status               string                  `json:"status"`
	CurrentQuestionIndex int                     `json:"currentQuestionIndex"`
	StartedAt            time.Time               `json:"startedAt"`
	CompletedAt          *time.Time              `json:"completedAt,omitempty"`
	OverallScore         *float64                `json:"overallScore,omitempty"`
	Feedback             *domain.SessionFeedback `json:"feedback,omitempty"`
	FeedbackError        string                  `json:"feedbackError,omitempty"`
}

// QuestionResponse represents a generated question in the API response
type QuestionResponse struct {
	ID         string   `json:"id"`
	Ordinal    int      `json:"ordinal"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Text       string   `json:"text"`
	KeyPoints  []string `json:"keyPoints,omitempty"`
	Hints      []string `json:"hints,omitempty"`
}

// AnswerResponse represents a submitted answer and its evaluation state
type AnswerResponse struct {
	ID              string                 `json:"id"`
	QuestionID      string                 `json:"questionId"`
	AnswerType      string                 `json:"answerType"`
	AnswerText      string                 `json:"answerText,omitempty"`
	AudioURL        string                 `json:"audioUrl,omitempty"`
	DurationSeconds int                    `json:"durationSeconds"`
	Analyzed        bool                   `json:"analyzed"`
	Score           *float64               `json:"score,omitempty"`
	Feedback        *domain.AnswerFeedback `json:"feedback,omitempty"`
	EvaluationError string                 `json:"evaluationError,omitempty"`
	SubmittedAt     time.Time              `json:"submittedAt"`
}

// StartInterviewResponse bundles the new session with its question set
type StartInterviewResponse struct {
	Session   SessionResponse    `json:"session"`
	Questions []QuestionResponse `json:"questions"`
}

// AssistantResponse carries the assistant's reply
type AssistantResponse struct {
	Reply string `json:"reply"`
}

// SuggestAnswersResponse carries generated model answer variants
type SuggestAnswersResponse struct {
	Variants []domain.AnswerVariant `json:"variants"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewSessionResponse converts a session entity to its API shape.
func NewSessionResponse(s *domain.InterviewSession) SessionResponse {
	return SessionResponse{
		ID:                   s.ID,
		Type:                 string(s.Type),
		Difficulty:           string(s.Difficulty),
		Domain:               s.Domain,
		Technologies:         s.Technologies,
		NumQuestions:         s.NumQuestions,
		Mode:                 string(s.Mode),
		Language:             string(s.Language),
		Status:               string(s.Status),
		CurrentQuestionIndex: s.CurrentQuestionIndex,
		StartedAt:            s.StartedAt,
		CompletedAt:          s.CompletedAt,
		OverallScore:         s.OverallScore,
		Feedback:             s.Feedback,
		FeedbackError:        s.FeedbackError,
	}
}

// NewQuestionResponse converts a question entity to its API shape.
func NewQuestionResponse(q *domain.InterviewQuestion) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		Ordinal:    q.Ordinal,
		Category:   string(q.Category),
		Difficulty: string(q.Difficulty),
		Text:       q.Text,
		KeyPoints:  q.KeyPoints,
		Hints:      q.Hints,
	}
}

// NewAnswerResponse converts an answer entity to its API shape.
func NewAnswerResponse(a *domain.InterviewAnswer) AnswerResponse {
	return AnswerResponse{
		ID:              a.ID,
		QuestionID:      a.QuestionID,
		AnswerType:      string(a.Type),
		AnswerText:      a.Text,
		AudioURL:        a.AudioURL,
		DurationSeconds: a.DurationSeconds,
		Analyzed:        a.Analyzed,
		Score:           a.Score,
		Feedback:        a.Feedback,
		EvaluationError: a.EvaluationError,
		SubmittedAt:     a.SubmittedAt,
	}
}
