package domain

import "context"

// Job payloads carry durable identifiers only, never live object references,
// so a worker picking a job up after a restart reconstructs all state from
// the record stores.

// AnswerFeedbackPayload triggers async scoring of one submitted answer.
type AnswerFeedbackPayload struct {
	AnswerID   string `json:"answerId"`
	QuestionID string `json:"questionId"`
	SessionID  string `json:"sessionId"`
	UserID     string `json:"userId"`
}

// SessionFeedbackPayload triggers the aggregate evaluation of a completed session.
type SessionFeedbackPayload struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

// DocumentAnalysisPayload triggers async analysis of an uploaded document.
type DocumentAnalysisPayload struct {
	RecordID       string `json:"recordId"`
	UserID         string `json:"userId"`
	JobDescription string `json:"jobDescription,omitempty"`
	Language       string `json:"language,omitempty"`
}

// Enqueuer submits durable background jobs. Enqueue failures must surface to
// the caller so the triggering mutation can be rolled back rather than
// silently skipping a job.
type Enqueuer interface {
	EnqueueAnswerFeedback(ctx context.Context, payload AnswerFeedbackPayload) error
	EnqueueSessionFeedback(ctx context.Context, payload SessionFeedbackPayload) error
	EnqueueDocumentAnalysis(ctx context.Context, payload DocumentAnalysisPayload) error
}

// TransactionManager runs a function inside a database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
