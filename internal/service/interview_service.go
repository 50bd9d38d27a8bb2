package service

import (
	"context"
	"fmt"
	"time"

	"mockmate/internal/domain"
	"mockmate/internal/logger"
	"mockmate/internal/util"

	"go.uber.org/zap"
)

// InterviewService drives the mock interview lifecycle: starting a
// session, accepting answers, and closing the session out.
type InterviewService interface {
	Start(ctx context.Context, session *domain.InterviewSession) (*domain.InterviewSession, []*domain.InterviewQuestion, error)
	Get(ctx context.Context, userID, sessionID string) (*domain.InterviewSession, error)
	GetQuestions(ctx context.Context, userID, sessionID string) ([]*domain.InterviewQuestion, error)
	GetAnswers(ctx context.Context, userID, sessionID string) ([]*domain.InterviewAnswer, error)
	SubmitAnswer(ctx context.Context, userID string, answer *domain.InterviewAnswer) (*domain.InterviewAnswer, error)
	Complete(ctx context.Context, userID, sessionID string) (*domain.InterviewSession, error)
	Pause(ctx context.Context, userID, sessionID string) (*domain.InterviewSession, error)
	Resume(ctx context.Context, userID, sessionID string) (*domain.InterviewSession, error)
	SuggestAnswers(ctx context.Context, userID, sessionID, questionID string, count int) ([]domain.AnswerVariant, error)
}

type interviewService struct {
	sessionRepo  domain.SessionRepository
	questionRepo domain.QuestionRepository
	answerRepo   domain.AnswerRepository
	generator    domain.QuestionGenerator
	quota        domain.QuotaGuard
	enqueuer     domain.Enqueuer
	contextStore domain.ContextStore
	txManager    domain.TransactionManager
}

// NewInterviewService creates a new interview service
func NewInterviewService(
	sessionRepo domain.SessionRepository,
	questionRepo domain.QuestionRepository,
	answerRepo domain.AnswerRepository,
	generator domain.QuestionGenerator,
	quota domain.QuotaGuard,
	enqueuer domain.Enqueuer,
	contextStore domain.ContextStore,
	txManager domain.TransactionManager,
) InterviewService {
	return &interviewService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		generator:    generator,
		quota:        quota,
		enqueuer:     enqueuer,
		contextStore: contextStore,
		txManager:    txManager,
	}
}

// Start validates the requested session, checks the caller's plan quota,
// generates the question set synchronously and persists session and
// questions together. The quota is consumed only after the session is
// durable, so a failed start never charges the user.
func (s *interviewService) Start(ctx context.Context, session *domain.InterviewSession) (*domain.InterviewSession, []*domain.InterviewQuestion, error) {
	if err := session.Validate(); err != nil {
		return nil, nil, err
	}
	if err := s.quota.Authorize(ctx, session.UserID, domain.FeatureMockInterviews); err != nil {
		return nil, nil, err
	}

	generated, err := s.generator.Generate(ctx, session)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	session.ID = util.NewULID()
	session.Status = domain.SessionActive
	session.CurrentQuestionIndex = 0
	session.StartedAt = now
	session.CreatedAt = now
	session.UpdatedAt = now
	session.QuestionIDs = make([]string, 0, len(generated))
	questions := make([]*domain.InterviewQuestion, 0, len(generated))
	for i, g := range generated {
		q := &domain.InterviewQuestion{
			ID:         util.NewULID(),
			SessionID:  session.ID,
			Ordinal:    i,
			Category:   domain.InterviewType(g.Category),
			Difficulty: domain.Difficulty(g.Difficulty),
			Text:       g.Text,
			KeyPoints:  g.KeyPoints,
			Hints:      g.Hints,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		questions = append(questions, q)
		session.QuestionIDs = append(session.QuestionIDs, q.ID)
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.sessionRepo.Save(txCtx, session); err != nil {
			return err
		}
		return s.questionRepo.SaveBatch(txCtx, questions)
	})
	if err != nil {
		return nil, nil, domain.NewInternalError("Failed to persist interview session", err)
	}

	if err := s.quota.Consume(ctx, session.UserID, domain.FeatureMockInterviews); err != nil {
		// The session already exists; an uncharged start is preferable to
		// failing the request after the fact.
		logger.Get().Error("Failed to consume interview quota",
			zap.String("user_id", session.UserID),
			zap.String("session_id", session.ID),
			zap.Error(err))
	}

	s.seedContext(ctx, session, questions)
	return session, questions, nil
}

// Get implements InterviewService
func (s *interviewService) Get(ctx context.Context, userID, sessionID string) (*domain.InterviewSession, error) {
	return s.loadOwnedSession(ctx, userID, sessionID)
}

// GetQuestions implements InterviewService
func (s *interviewService) GetQuestions(ctx context.Context, userID, sessionID string) ([]*domain.InterviewQuestion, error) {
	if _, err := s.loadOwnedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load session questions", err)
	}
	return questions, nil
}

// GetAnswers implements InterviewService
func (s *interviewService) GetAnswers(ctx context.Context, userID, sessionID string) ([]*domain.InterviewAnswer, error) {
	if _, err := s.loadOwnedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load session answers", err)
	}
	return answers, nil
}

// SubmitAnswer records an answer against the session's current question
// and schedules its evaluation. The answer row, the session cursor
// advance and the feedback enqueue succeed or fail as one unit: if the
// enqueue fails the transaction rolls back and the cursor has not moved.
func (s *interviewService) SubmitAnswer(ctx context.Context, userID string, answer *domain.InterviewAnswer) (*domain.InterviewAnswer, error) {
	session, err := s.loadOwnedSession(ctx, userID, answer.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.AcceptsAnswers() {
		if session.Status == domain.SessionCompleted {
			return nil, domain.NewSessionCompletedError(session.ID)
		}
		return nil, domain.NewSessionNotActiveError(session.ID, session.Status)
	}
	if !session.HasQuestion(answer.QuestionID) {
		return nil, domain.NewQuestionNotInSessionError(answer.QuestionID)
	}

	now := time.Now()
	answer.ID = util.NewULID()
	answer.UserID = userID
	answer.Analyzed = false
	answer.SubmittedAt = now
	if err := answer.Validate(); err != nil {
		return nil, err
	}

	if err := session.RecordAnswer(answer.ID); err != nil {
		return nil, err
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.answerRepo.Save(txCtx, answer); err != nil {
			return err
		}
		if err := s.sessionRepo.Update(txCtx, session); err != nil {
			return err
		}
		return s.enqueuer.EnqueueAnswerFeedback(txCtx, domain.AnswerFeedbackPayload{
			AnswerID:   answer.ID,
			QuestionID: answer.QuestionID,
			SessionID:  session.ID,
			UserID:     userID,
		})
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to record answer", err)
	}

	s.appendContext(ctx, session.ID, domain.ContextEntry{
		Role:      domain.RoleUser,
		Content:   answer.Text,
		Type:      domain.EntryAnswer,
		Timestamp: now,
	})
	return answer, nil
}

// Complete closes the session and schedules the session level feedback.
// Completing an already completed session is an error so the feedback
// job is enqueued at most once per session.
func (s *interviewService) Complete(ctx context.Context, userID, sessionID string) (*domain.InterviewSession, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Complete(); err != nil {
		return nil, err
	}
	session.UpdatedAt = time.Now()

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.sessionRepo.Update(txCtx, session); err != nil {
			return err
		}
		return s.enqueuer.EnqueueSessionFeedback(txCtx, domain.SessionFeedbackPayload{
			SessionID: session.ID,
			UserID:    userID,
		})
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to complete session", err)
	}

	if err := s.contextStore.Archive(ctx, session.ID); err != nil {
		logger.Get().Warn("Failed to archive session context",
			zap.String("session_id", session.ID), zap.Error(err))
	}
	return session, nil
}

// Pause implements InterviewService
func (s *interviewService) Pause(ctx context.Context, userID, sessionID string) (*domain.InterviewSession, error) {
	return s.transition(ctx, userID, sessionID, (*domain.InterviewSession).Pause)
}

// Resume implements InterviewService
func (s *interviewService) Resume(ctx context.Context, userID, sessionID string) (*domain.InterviewSession, error) {
	return s.transition(ctx, userID, sessionID, (*domain.InterviewSession).Resume)
}

// SuggestAnswers generates model answer variants for one of the
// session's questions, for the user to study after answering.
func (s *interviewService) SuggestAnswers(ctx context.Context, userID, sessionID, questionID string, count int) ([]domain.AnswerVariant, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasQuestion(questionID) {
		return nil, domain.NewQuestionNotInSessionError(questionID)
	}
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load question", err)
	}
	if question == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("question %s", questionID))
	}
	return s.generator.GenerateAnswerVariants(ctx, question, session.Language, count)
}

func (s *interviewService) transition(ctx context.Context, userID, sessionID string, step func(*domain.InterviewSession) error) (*domain.InterviewSession, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := step(session); err != nil {
		return nil, err
	}
	session.UpdatedAt = time.Now()
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, domain.NewInternalError("Failed to update session", err)
	}
	return session, nil
}

func (s *interviewService) loadOwnedSession(ctx context.Context, userID, sessionID string) (*domain.InterviewSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load session", err)
	}
	if session == nil || session.UserID != userID {
		// Foreign sessions look identical to missing ones.
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	return session, nil
}

// seedContext records the generated questions as the opening turns of
// the session's conversation log. Context writes are best effort.
func (s *interviewService) seedContext(ctx context.Context, session *domain.InterviewSession, questions []*domain.InterviewQuestion) {
	for _, q := range questions {
		s.appendContext(ctx, session.ID, domain.ContextEntry{
			Role:      domain.RoleAssistant,
			Content:   q.Text,
			Type:      domain.EntryQuestion,
			Timestamp: q.CreatedAt,
		})
	}
}

func (s *interviewService) appendContext(ctx context.Context, sessionID string, entry domain.ContextEntry) {
	if err := s.contextStore.AddMessage(ctx, sessionID, entry); err != nil {
		logger.Get().Warn("Failed to append session context",
			zap.String("session_id", sessionID), zap.Error(err))
	}
}
