package queue

import (
	"context"

	"github.com/hibiken/asynq"
)

// Task type names, one per job shape.
const (
	TypeAnswerFeedback   = "interview:answer_feedback"
	TypeSessionFeedback  = "interview:session_feedback"
	TypeDocumentAnalysis = "analysis:document"
)

// Named queues. Each gets an independent worker pool so a burst of document
// analyses cannot starve answer feedback.
const (
	QueueFeedback = "feedback"
	QueueAnalysis = "analysis"
)

// LastAttempt reports whether the running handler is on its final attempt,
// so it can mark the owning record failed instead of leaving it dangling.
func LastAttempt(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return true
	}
	maxRetry, ok := asynq.GetMaxRetry(ctx)
	if !ok {
		return true
	}
	return retried >= maxRetry
}
