package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mockmate/internal/domain"
	"mockmate/internal/queue"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handlers holds the asynq task handlers. Every handler reloads all state
// from the record stores by id, is idempotent, and on its final attempt
// marks the owning record failed instead of leaving it dangling.
type Handlers struct {
	sessionRepo      domain.SessionRepository
	questionRepo     domain.QuestionRepository
	answerRepo       domain.AnswerRepository
	analysisRepo     domain.AnalysisRepository
	answerEvaluator  domain.AnswerEvaluator
	sessionEvaluator domain.SessionEvaluator
	documentAnalyzer domain.DocumentAnalyzer
	contextStore     domain.ContextStore
	logger           *zap.Logger
}

// NewHandlers creates the worker handler set.
func NewHandlers(
	sessionRepo domain.SessionRepository,
	questionRepo domain.QuestionRepository,
	answerRepo domain.AnswerRepository,
	analysisRepo domain.AnalysisRepository,
	answerEvaluator domain.AnswerEvaluator,
	sessionEvaluator domain.SessionEvaluator,
	documentAnalyzer domain.DocumentAnalyzer,
	contextStore domain.ContextStore,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		sessionRepo:      sessionRepo,
		questionRepo:     questionRepo,
		answerRepo:       answerRepo,
		analysisRepo:     analysisRepo,
		answerEvaluator:  answerEvaluator,
		sessionEvaluator: sessionEvaluator,
		documentAnalyzer: documentAnalyzer,
		contextStore:     contextStore,
		logger:           logger,
	}
}

// Register wires the handlers onto the task mux.
func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeAnswerFeedback, h.HandleAnswerFeedback)
	mux.HandleFunc(queue.TypeSessionFeedback, h.HandleSessionFeedback)
	mux.HandleFunc(queue.TypeDocumentAnalysis, h.HandleDocumentAnalysis)
}

// HandleAnswerFeedback scores one submitted answer and overwrites its
// evaluation fields.
func (h *Handlers) HandleAnswerFeedback(ctx context.Context, task *asynq.Task) error {
	var payload domain.AnswerFeedbackPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("malformed answer feedback payload: %v: %w", err, asynq.SkipRetry)
	}
	log := h.logger.With(zap.String("answer_id", payload.AnswerID), zap.String("session_id", payload.SessionID))

	answer, err := h.answerRepo.GetByID(ctx, payload.AnswerID)
	if err != nil {
		return err
	}
	if answer == nil {
		return fmt.Errorf("answer %s no longer exists: %w", payload.AnswerID, asynq.SkipRetry)
	}
	if answer.Analyzed {
		log.Info("Answer already evaluated, skipping")
		return nil
	}

	question, err := h.questionRepo.GetByID(ctx, payload.QuestionID)
	if err != nil {
		return err
	}
	if question == nil {
		return h.failAnswer(ctx, answer, "question no longer exists",
			fmt.Errorf("question %s no longer exists: %w", payload.QuestionID, asynq.SkipRetry))
	}

	language := domain.LanguageEnglish
	if session, err := h.sessionRepo.GetByID(ctx, payload.SessionID); err == nil && session != nil {
		language = session.Language
	}

	score, feedback, err := h.answerEvaluator.Evaluate(ctx, question, answer, language)
	if err != nil {
		if permanent(err) {
			return h.failAnswer(ctx, answer, err.Error(),
				fmt.Errorf("answer evaluation failed permanently: %v: %w", err, asynq.SkipRetry))
		}
		if queue.LastAttempt(ctx) {
			return h.failAnswer(ctx, answer, err.Error(), err)
		}
		return err
	}

	answer.MarkEvaluated(score, feedback)
	if err := h.answerRepo.UpdateEvaluation(ctx, answer); err != nil {
		return err
	}
	log.Info("Answer evaluated", zap.Float64("score", score))

	h.appendFeedbackContext(ctx, payload.SessionID, feedback)
	h.recomputeQuestionStats(ctx, question)
	return nil
}

// HandleSessionFeedback produces the aggregate evaluation once a session
// completes. It evaluates whatever answers are scored at run time; an
// answer whose own feedback job is still in flight simply contributes its
// raw text.
func (h *Handlers) HandleSessionFeedback(ctx context.Context, task *asynq.Task) error {
	var payload domain.SessionFeedbackPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("malformed session feedback payload: %v: %w", err, asynq.SkipRetry)
	}
	log := h.logger.With(zap.String("session_id", payload.SessionID))

	session, err := h.sessionRepo.GetByID(ctx, payload.SessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session %s no longer exists: %w", payload.SessionID, asynq.SkipRetry)
	}

	var (
		questions []*domain.InterviewQuestion
		answers   []*domain.InterviewAnswer
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = h.questionRepo.GetBySessionID(gCtx, payload.SessionID)
		return err
	})
	g.Go(func() error {
		var err error
		answers, err = h.answerRepo.GetBySessionID(gCtx, payload.SessionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	overall, feedback, err := h.sessionEvaluator.Evaluate(ctx, session, questions, answers)
	if err != nil {
		if permanent(err) {
			return h.failSession(ctx, session, err.Error(),
				fmt.Errorf("session evaluation failed permanently: %v: %w", err, asynq.SkipRetry))
		}
		if queue.LastAttempt(ctx) {
			return h.failSession(ctx, session, err.Error(), err)
		}
		return err
	}

	session.MarkFeedbackWritten(overall, feedback)
	if err := h.sessionRepo.Update(ctx, session); err != nil {
		return err
	}
	log.Info("Session feedback written", zap.Float64("overall_score", overall))
	return nil
}

// HandleDocumentAnalysis runs the resume analysis for one uploaded record.
func (h *Handlers) HandleDocumentAnalysis(ctx context.Context, task *asynq.Task) error {
	var payload domain.DocumentAnalysisPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("malformed document analysis payload: %v: %w", err, asynq.SkipRetry)
	}
	log := h.logger.With(zap.String("record_id", payload.RecordID))

	record, err := h.analysisRepo.GetByID(ctx, payload.RecordID)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("analysis record %s no longer exists: %w", payload.RecordID, asynq.SkipRetry)
	}
	if payload.JobDescription != "" {
		record.JobDescription = payload.JobDescription
	}
	if payload.Language != "" {
		record.Language = domain.Language(payload.Language)
	}

	record.MarkProcessing()
	if err := h.analysisRepo.Update(ctx, record); err != nil {
		return err
	}

	result, err := h.documentAnalyzer.Analyze(ctx, record)
	if err != nil {
		if permanent(err) {
			return h.failRecord(ctx, record, err.Error(),
				fmt.Errorf("document analysis failed permanently: %v: %w", err, asynq.SkipRetry))
		}
		if queue.LastAttempt(ctx) {
			return h.failRecord(ctx, record, err.Error(), err)
		}
		return err
	}

	record.MarkCompleted(result)
	if err := h.analysisRepo.Update(ctx, record); err != nil {
		return err
	}
	log.Info("Document analysis completed")
	return nil
}

// permanent reports whether the evaluation error can never succeed on retry.
func permanent(err error) bool {
	var perr *domain.ProviderError
	if errors.As(err, &perr) {
		return !perr.Transient()
	}
	return false
}

func (h *Handlers) failAnswer(ctx context.Context, answer *domain.InterviewAnswer, reason string, ret error) error {
	answer.MarkEvaluationFailed(reason)
	if err := h.answerRepo.UpdateEvaluation(ctx, answer); err != nil {
		h.logger.Error("Failed to mark answer evaluation failed",
			zap.String("answer_id", answer.ID), zap.Error(err))
	}
	return ret
}

func (h *Handlers) failSession(ctx context.Context, session *domain.InterviewSession, reason string, ret error) error {
	session.MarkFeedbackFailed(reason)
	if err := h.sessionRepo.Update(ctx, session); err != nil {
		h.logger.Error("Failed to mark session feedback failed",
			zap.String("session_id", session.ID), zap.Error(err))
	}
	return ret
}

func (h *Handlers) failRecord(ctx context.Context, record *domain.AnalysisRecord, reason string, ret error) error {
	record.MarkFailed(reason)
	if err := h.analysisRepo.Update(ctx, record); err != nil {
		h.logger.Error("Failed to mark analysis record failed",
			zap.String("record_id", record.ID), zap.Error(err))
	}
	return ret
}

// appendFeedbackContext records the feedback summary in the conversation
// log. Context writes are best effort.
func (h *Handlers) appendFeedbackContext(ctx context.Context, sessionID string, feedback *domain.AnswerFeedback) {
	if feedback == nil {
		return
	}
	content := "Feedback recorded."
	if len(feedback.Strengths) > 0 {
		content = feedback.Strengths[0]
	} else if len(feedback.Improvements) > 0 {
		content = feedback.Improvements[0]
	}
	err := h.contextStore.AddMessage(ctx, sessionID, domain.ContextEntry{
		Role:      domain.RoleAssistant,
		Content:   content,
		Type:      domain.EntryFeedback,
		Timestamp: time.Now(),
	})
	if err != nil {
		h.logger.Warn("Failed to append feedback context",
			zap.String("session_id", sessionID), zap.Error(err))
	}
}

// recomputeQuestionStats refreshes the question's usage statistics from
// all of its analyzed answers. Stats are advisory; failures are logged only.
func (h *Handlers) recomputeQuestionStats(ctx context.Context, question *domain.InterviewQuestion) {
	answers, err := h.answerRepo.GetByQuestionID(ctx, question.ID)
	if err != nil {
		h.logger.Warn("Failed to load answers for question stats",
			zap.String("question_id", question.ID), zap.Error(err))
		return
	}
	var scored int
	var total float64
	for _, a := range answers {
		if a.Analyzed && a.Score != nil {
			scored++
			total += *a.Score
		}
	}
	if scored == 0 {
		return
	}
	if err := h.questionRepo.UpdateStats(ctx, question.ID, scored, total/float64(scored)); err != nil {
		h.logger.Warn("Failed to update question stats",
			zap.String("question_id", question.ID), zap.Error(err))
	}
}
