package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"mockmate/internal/domain"
	"mockmate/internal/repository/models"
	"mockmate/internal/util"

	"github.com/jmoiron/sqlx"
)

// SessionDatabaseAdapter implements domain.SessionRepository using sqlx.DB
type SessionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewSessionDatabaseAdapter creates a new instance of SessionDatabaseAdapter
func NewSessionDatabaseAdapter(db *sqlx.DB) domain.SessionRepository {
	return &SessionDatabaseAdapter{db: db}
}

const sessionColumns = `
	id "id",
	user_id "user_id",
	session_type "session_type",
	difficulty "difficulty",
	domain "domain",
	technologies "technologies",
	num_questions "num_questions",
	answer_mode "answer_mode",
	time_limit_minutes "time_limit_minutes",
	language "language",
	status "status",
	current_question_index "current_question_index",
	question_ids "question_ids",
	answer_ids "answer_ids",
	started_at "started_at",
	completed_at "completed_at",
	overall_score "overall_score",
	feedback "feedback",
	feedback_error "feedback_error",
	created_at "created_at",
	updated_at "updated_at"`

// Save implements domain.SessionRepository
func (a *SessionDatabaseAdapter) Save(ctx context.Context, session *domain.InterviewSession) error {
	if session.ID == "" {
		session.ID = util.NewULID()
	}
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt

	model, err := toModelSession(session)
	if err != nil {
		return err
	}

	query := `INSERT INTO interview_sessions (
		id, user_id, session_type, difficulty, domain, technologies,
		num_questions, answer_mode, time_limit_minutes, language, status,
		current_question_index, question_ids, answer_ids, started_at,
		completed_at, overall_score, feedback, feedback_error, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10,
		:11, :12, :13, :14, :15, :16, :17, :18, :19, :20, :21
	)`

	executor := GetExecutor(ctx, a.db)
	_, err = executor.ExecContext(ctx, query,
		model.ID,
		model.UserID,
		model.Type,
		model.Difficulty,
		model.Domain,
		model.Technologies,
		model.NumQuestions,
		model.Mode,
		model.TimeLimitMinutes,
		model.Language,
		model.Status,
		model.CurrentQuestionIndex,
		model.QuestionIDs,
		model.AnswerIDs,
		model.StartedAt,
		model.CompletedAt,
		model.OverallScore,
		model.Feedback,
		model.FeedbackError,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetByID implements domain.SessionRepository
func (a *SessionDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.InterviewSession, error) {
	var model models.InterviewSession
	query := `SELECT ` + sessionColumns + `
	FROM interview_sessions
	WHERE id = :1`

	executor := GetExecutor(ctx, a.db)
	err := executor.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by ID %s: %w", id, err)
	}
	return toDomainSession(&model)
}

// Update implements domain.SessionRepository
func (a *SessionDatabaseAdapter) Update(ctx context.Context, session *domain.InterviewSession) error {
	session.UpdatedAt = time.Now()
	model, err := toModelSession(session)
	if err != nil {
		return err
	}

	query := `UPDATE interview_sessions SET
		status = :1,
		current_question_index = :2,
		question_ids = :3,
		answer_ids = :4,
		completed_at = :5,
		overall_score = :6,
		feedback = :7,
		feedback_error = :8,
		updated_at = :9
	WHERE id = :10`

	executor := GetExecutor(ctx, a.db)
	_, err = executor.ExecContext(ctx, query,
		model.Status,
		model.CurrentQuestionIndex,
		model.QuestionIDs,
		model.AnswerIDs,
		model.CompletedAt,
		model.OverallScore,
		model.Feedback,
		model.FeedbackError,
		model.UpdatedAt,
		model.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session %s: %w", session.ID, err)
	}
	return nil
}

func toModelSession(d *domain.InterviewSession) (*models.InterviewSession, error) {
	m := &models.InterviewSession{
		ID:                   d.ID,
		UserID:               d.UserID,
		Type:                 string(d.Type),
		Difficulty:           string(d.Difficulty),
		NumQuestions:         d.NumQuestions,
		Mode:                 string(d.Mode),
		TimeLimitMinutes:     d.TimeLimitMinutes,
		Language:             string(d.Language),
		Status:               string(d.Status),
		CurrentQuestionIndex: d.CurrentQuestionIndex,
		StartedAt:            d.StartedAt,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
	if d.Domain != "" {
		m.Domain = sql.NullString{String: d.Domain, Valid: true}
	}
	if len(d.Technologies) > 0 {
		m.Technologies = sql.NullString{String: joinStrings(d.Technologies), Valid: true}
	}
	if len(d.QuestionIDs) > 0 {
		m.QuestionIDs = sql.NullString{String: joinStrings(d.QuestionIDs), Valid: true}
	}
	if len(d.AnswerIDs) > 0 {
		m.AnswerIDs = sql.NullString{String: joinStrings(d.AnswerIDs), Valid: true}
	}
	if d.CompletedAt != nil {
		m.CompletedAt = sql.NullTime{Time: *d.CompletedAt, Valid: true}
	}
	if d.OverallScore != nil {
		m.OverallScore = sql.NullFloat64{Float64: *d.OverallScore, Valid: true}
	}
	if d.Feedback != nil {
		data, err := json.Marshal(d.Feedback)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal session feedback: %w", err)
		}
		m.Feedback = sql.NullString{String: string(data), Valid: true}
	}
	if d.FeedbackError != "" {
		m.FeedbackError = sql.NullString{String: d.FeedbackError, Valid: true}
	}
	return m, nil
}

func toDomainSession(m *models.InterviewSession) (*domain.InterviewSession, error) {
	d := &domain.InterviewSession{
		ID:                   m.ID,
		UserID:               m.UserID,
		Type:                 domain.InterviewType(m.Type),
		Difficulty:           domain.Difficulty(m.Difficulty),
		Domain:               m.Domain.String,
		Technologies:         splitStrings(m.Technologies.String),
		NumQuestions:         m.NumQuestions,
		Mode:                 domain.AnswerMode(m.Mode),
		TimeLimitMinutes:     m.TimeLimitMinutes,
		Language:             domain.Language(m.Language),
		Status:               domain.SessionStatus(m.Status),
		CurrentQuestionIndex: m.CurrentQuestionIndex,
		QuestionIDs:          splitStrings(m.QuestionIDs.String),
		AnswerIDs:            splitStrings(m.AnswerIDs.String),
		FeedbackError:        m.FeedbackError.String,
		StartedAt:            m.StartedAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if m.CompletedAt.Valid {
		t := m.CompletedAt.Time
		d.CompletedAt = &t
	}
	if m.OverallScore.Valid {
		score := m.OverallScore.Float64
		d.OverallScore = &score
	}
	if m.Feedback.Valid && m.Feedback.String != "" {
		var feedback domain.SessionFeedback
		if err := json.Unmarshal([]byte(m.Feedback.String), &feedback); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session feedback: %w", err)
		}
		d.Feedback = &feedback
	}
	return d, nil
}
