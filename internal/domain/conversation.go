package domain

import (
	"context"
	"time"
)

// ContextRole identifies the author of a conversation entry
type ContextRole string

const (
	RoleUser      ContextRole = "user"
	RoleAssistant ContextRole = "assistant"
	RoleSystem    ContextRole = "system"
)

// ContextEntryType classifies what a conversation entry carries
type ContextEntryType string

const (
	EntryMessage  ContextEntryType = "message"
	EntryQuestion ContextEntryType = "question"
	EntryAnswer   ContextEntryType = "answer"
	EntryFeedback ContextEntryType = "feedback"
)

// ContextEntry is one exchange in a session's rolling conversation memory.
type ContextEntry struct {
	Role      ContextRole      `json:"role"`
	Content   string           `json:"content"`
	Type      ContextEntryType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
}

// ContextStore is the bounded-window conversation memory, keyed by session id.
// Storage is an unbounded append log; Window returns only the most recent N
// entries, All is the audit path over the full log. Archive flags the context
// when the owning session completes; it never deletes.
type ContextStore interface {
	AddMessage(ctx context.Context, sessionID string, entry ContextEntry) error
	Window(ctx context.Context, sessionID string) ([]ContextEntry, error)
	All(ctx context.Context, sessionID string) ([]ContextEntry, error)
	Topics(ctx context.Context, sessionID string) ([]string, error)
	SetContextValue(ctx context.Context, sessionID, key, value string) error
	ContextMap(ctx context.Context, sessionID string) (map[string]string, error)
	Archive(ctx context.Context, sessionID string) error
}

// TopicClassifier extracts topic tags from free text. The fixed-vocabulary
// implementation can be swapped for a model-based one without touching callers.
type TopicClassifier interface {
	Topics(content string) []string
}
