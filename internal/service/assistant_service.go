package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mockmate/internal/domain"
	"mockmate/internal/logger"

	"go.uber.org/zap"
)

// AssistantService answers free-form preparation questions inside a
// session, with the session's recent conversation window as context.
type AssistantService interface {
	Ask(ctx context.Context, userID, sessionID, message string) (string, error)
}

type assistantService struct {
	sessionRepo  domain.SessionRepository
	gateway      domain.CompletionGateway
	contextStore domain.ContextStore
}

// NewAssistantService creates a new assistant service
func NewAssistantService(sessionRepo domain.SessionRepository, gateway domain.CompletionGateway, contextStore domain.ContextStore) AssistantService {
	return &assistantService{
		sessionRepo:  sessionRepo,
		gateway:      gateway,
		contextStore: contextStore,
	}
}

// Ask prepends the recent context window to the user's message, calls the
// completion provider synchronously and appends both turns to the log.
func (s *assistantService) Ask(ctx context.Context, userID, sessionID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", domain.NewInvalidInputError("message is required")
	}
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return "", domain.NewInternalError("Failed to load session", err)
	}
	if session == nil || session.UserID != userID {
		return "", domain.NewSessionNotFoundError(sessionID)
	}

	window, err := s.contextStore.Window(ctx, sessionID)
	if err != nil {
		return "", domain.NewInternalError("Failed to load conversation context", err)
	}

	reply, err := s.gateway.Complete(ctx, domain.TaskAssistant, buildAssistantPrompt(session, window, message))
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)

	now := time.Now()
	for _, entry := range []domain.ContextEntry{
		{Role: domain.RoleUser, Content: message, Type: domain.EntryMessage, Timestamp: now},
		{Role: domain.RoleAssistant, Content: reply, Type: domain.EntryMessage, Timestamp: now},
	} {
		// The reply already went out; a lost context entry only narrows
		// the next window.
		if err := s.contextStore.AddMessage(ctx, sessionID, entry); err != nil {
			logger.Get().Warn("Failed to append session context",
				zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	return reply, nil
}

func buildAssistantPrompt(session *domain.InterviewSession, window []domain.ContextEntry, message string) string {
	var b strings.Builder
	b.WriteString("You are an interview preparation assistant.\n")
	fmt.Fprintf(&b, "The candidate is in a %s interview session at %s level", session.Type, session.Difficulty)
	if session.Domain != "" {
		fmt.Fprintf(&b, " for the %s domain", session.Domain)
	}
	b.WriteString(".\n")
	if len(window) > 0 {
		b.WriteString("\nRecent conversation:\n")
		for _, entry := range window {
			fmt.Fprintf(&b, "[%s] %s\n", entry.Role, entry.Content)
		}
	}
	b.WriteString("\nCandidate question:\n")
	b.WriteString(message)
	b.WriteString("\n\nAnswer concisely and practically. Respond in ")
	b.WriteString(languageName(session.Language))
	b.WriteString(".")
	return b.String()
}

func languageName(lang domain.Language) string {
	switch lang {
	case domain.LanguageUzbek:
		return "Uzbek"
	case domain.LanguageRussian:
		return "Russian"
	default:
		return "English"
	}
}
