package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mockmate/internal/domain"
	"mockmate/internal/repository/models"
	"mockmate/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

const questionColumns = `
	id "id",
	session_id "session_id",
	ordinal "ordinal",
	category "category",
	difficulty "difficulty",
	question_text "question_text",
	key_points "key_points",
	hints "hints",
	times_asked "times_asked",
	average_score "average_score",
	created_at "created_at",
	updated_at "updated_at"`

// SaveBatch implements domain.QuestionRepository. Questions for a session are
// created together; ids are assigned here.
func (a *QuestionDatabaseAdapter) SaveBatch(ctx context.Context, questions []*domain.InterviewQuestion) error {
	query := `INSERT INTO interview_questions (
		id, session_id, ordinal, category, difficulty, question_text,
		key_points, hints, times_asked, average_score, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12
	)`

	executor := GetExecutor(ctx, a.db)
	now := time.Now()
	for _, question := range questions {
		if question.ID == "" {
			question.ID = util.NewULID()
		}
		question.CreatedAt = now
		question.UpdatedAt = now

		model := toModelQuestion(question)
		_, err := executor.ExecContext(ctx, query,
			model.ID,
			model.SessionID,
			model.Ordinal,
			model.Category,
			model.Difficulty,
			model.QuestionText,
			model.KeyPoints,
			model.Hints,
			model.TimesAsked,
			model.AverageScore,
			model.CreatedAt,
			model.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save question %d: %w", question.Ordinal, err)
		}
	}
	return nil
}

// GetByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.InterviewQuestion, error) {
	var model models.InterviewQuestion
	query := `SELECT ` + questionColumns + `
	FROM interview_questions
	WHERE id = :1`

	executor := GetExecutor(ctx, a.db)
	err := executor.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", id, err)
	}
	return toDomainQuestion(&model), nil
}

// GetBySessionID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetBySessionID(ctx context.Context, sessionID string) ([]*domain.InterviewQuestion, error) {
	var rows []models.InterviewQuestion
	query := `SELECT ` + questionColumns + `
	FROM interview_questions
	WHERE session_id = :1
	ORDER BY ordinal`

	executor := GetExecutor(ctx, a.db)
	if err := executor.SelectContext(ctx, &rows, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to get questions for session %s: %w", sessionID, err)
	}

	questions := make([]*domain.InterviewQuestion, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

// UpdateStats implements domain.QuestionRepository. Stats are the only
// mutable part of a question.
func (a *QuestionDatabaseAdapter) UpdateStats(ctx context.Context, questionID string, timesAsked int, averageScore float64) error {
	query := `UPDATE interview_questions SET
		times_asked = :1,
		average_score = :2,
		updated_at = :3
	WHERE id = :4`

	executor := GetExecutor(ctx, a.db)
	_, err := executor.ExecContext(ctx, query, timesAsked, averageScore, time.Now(), questionID)
	if err != nil {
		return fmt.Errorf("failed to update stats for question %s: %w", questionID, err)
	}
	return nil
}

func toModelQuestion(d *domain.InterviewQuestion) *models.InterviewQuestion {
	m := &models.InterviewQuestion{
		ID:           d.ID,
		SessionID:    d.SessionID,
		Ordinal:      d.Ordinal,
		Category:     string(d.Category),
		Difficulty:   string(d.Difficulty),
		QuestionText: d.Text,
		TimesAsked:   d.TimesAsked,
		AverageScore: d.AverageScore,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if len(d.KeyPoints) > 0 {
		m.KeyPoints = sql.NullString{String: joinStrings(d.KeyPoints), Valid: true}
	}
	if len(d.Hints) > 0 {
		m.Hints = sql.NullString{String: joinStrings(d.Hints), Valid: true}
	}
	return m
}

func toDomainQuestion(m *models.InterviewQuestion) *domain.InterviewQuestion {
	return &domain.InterviewQuestion{
		ID:           m.ID,
		SessionID:    m.SessionID,
		Ordinal:      m.Ordinal,
		Category:     domain.InterviewType(m.Category),
		Difficulty:   domain.Difficulty(m.Difficulty),
		Text:         m.QuestionText,
		KeyPoints:    splitStrings(m.KeyPoints.String),
		Hints:        splitStrings(m.Hints.String),
		TimesAsked:   m.TimesAsked,
		AverageScore: m.AverageScore,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
