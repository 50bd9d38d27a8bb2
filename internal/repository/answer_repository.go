package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mockmate/internal/domain"
	"mockmate/internal/repository/models"
	"mockmate/internal/util"

	"github.com/jmoiron/sqlx"
)

// AnswerDatabaseAdapter implements domain.AnswerRepository using sqlx.DB
type AnswerDatabaseAdapter struct {
	db *sqlx.DB
}

// NewAnswerDatabaseAdapter creates a new instance of AnswerDatabaseAdapter
func NewAnswerDatabaseAdapter(db *sqlx.DB) domain.AnswerRepository {
	return &AnswerDatabaseAdapter{db: db}
}

const answerColumns = `
	id "id",
	session_id "session_id",
	question_id "question_id",
	user_id "user_id",
	answer_type "answer_type",
	answer_text "answer_text",
	audio_url "audio_url",
	transcript "transcript",
	duration_seconds "duration_seconds",
	analyzed "analyzed",
	score "score",
	feedback "feedback",
	evaluation_error "evaluation_error",
	submitted_at "submitted_at",
	analyzed_at "analyzed_at"`

// Save implements domain.AnswerRepository
func (a *AnswerDatabaseAdapter) Save(ctx context.Context, answer *domain.InterviewAnswer) error {
	if answer.ID == "" {
		answer.ID = util.NewULID()
	}

	model, err := toModelAnswer(answer)
	if err != nil {
		return err
	}

	query := `INSERT INTO interview_answers (
		id, session_id, question_id, user_id, answer_type, answer_text,
		audio_url, transcript, duration_seconds, analyzed, score, feedback,
		evaluation_error, submitted_at, analyzed_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14, :15
	)`

	executor := GetExecutor(ctx, a.db)
	_, err = executor.ExecContext(ctx, query,
		model.ID,
		model.SessionID,
		model.QuestionID,
		model.UserID,
		model.AnswerType,
		model.AnswerText,
		model.AudioURL,
		model.Transcript,
		model.DurationSeconds,
		model.Analyzed,
		model.Score,
		model.Feedback,
		model.EvaluationError,
		model.SubmittedAt,
		model.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}
	return nil
}

// GetByID implements domain.AnswerRepository
func (a *AnswerDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.InterviewAnswer, error) {
	var model models.InterviewAnswer
	query := `SELECT ` + answerColumns + `
	FROM interview_answers
	WHERE id = :1`

	executor := GetExecutor(ctx, a.db)
	err := executor.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get answer by ID %s: %w", id, err)
	}
	return toDomainAnswer(&model)
}

// GetBySessionID implements domain.AnswerRepository
func (a *AnswerDatabaseAdapter) GetBySessionID(ctx context.Context, sessionID string) ([]*domain.InterviewAnswer, error) {
	return a.list(ctx, `session_id`, sessionID)
}

// GetByQuestionID implements domain.AnswerRepository
func (a *AnswerDatabaseAdapter) GetByQuestionID(ctx context.Context, questionID string) ([]*domain.InterviewAnswer, error) {
	return a.list(ctx, `question_id`, questionID)
}

func (a *AnswerDatabaseAdapter) list(ctx context.Context, column, value string) ([]*domain.InterviewAnswer, error) {
	var rows []models.InterviewAnswer
	query := `SELECT ` + answerColumns + `
	FROM interview_answers
	WHERE ` + column + ` = :1
	ORDER BY submitted_at`

	executor := GetExecutor(ctx, a.db)
	if err := executor.SelectContext(ctx, &rows, query, value); err != nil {
		return nil, fmt.Errorf("failed to list answers by %s=%s: %w", column, value, err)
	}

	answers := make([]*domain.InterviewAnswer, 0, len(rows))
	for i := range rows {
		answer, err := toDomainAnswer(&rows[i])
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

// UpdateEvaluation implements domain.AnswerRepository. It overwrites the
// evaluation fields wholesale so a replayed feedback job converges.
func (a *AnswerDatabaseAdapter) UpdateEvaluation(ctx context.Context, answer *domain.InterviewAnswer) error {
	model, err := toModelAnswer(answer)
	if err != nil {
		return err
	}

	query := `UPDATE interview_answers SET
		analyzed = :1,
		score = :2,
		feedback = :3,
		evaluation_error = :4,
		analyzed_at = :5
	WHERE id = :6`

	executor := GetExecutor(ctx, a.db)
	_, err = executor.ExecContext(ctx, query,
		model.Analyzed,
		model.Score,
		model.Feedback,
		model.EvaluationError,
		model.AnalyzedAt,
		model.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update evaluation for answer %s: %w", answer.ID, err)
	}
	return nil
}

func toModelAnswer(d *domain.InterviewAnswer) (*models.InterviewAnswer, error) {
	m := &models.InterviewAnswer{
		ID:              d.ID,
		SessionID:       d.SessionID,
		QuestionID:      d.QuestionID,
		UserID:          d.UserID,
		AnswerType:      string(d.Type),
		DurationSeconds: d.DurationSeconds,
		SubmittedAt:     d.SubmittedAt,
	}
	if d.Analyzed {
		m.Analyzed = 1
	}
	if d.Text != "" {
		m.AnswerText = sql.NullString{String: d.Text, Valid: true}
	}
	if d.AudioURL != "" {
		m.AudioURL = sql.NullString{String: d.AudioURL, Valid: true}
	}
	if d.Transcript != "" {
		m.Transcript = sql.NullString{String: d.Transcript, Valid: true}
	}
	if d.Score != nil {
		m.Score = sql.NullFloat64{Float64: *d.Score, Valid: true}
	}
	if d.EvaluationError != "" {
		m.EvaluationError = sql.NullString{String: d.EvaluationError, Valid: true}
	}
	if d.AnalyzedAt != nil {
		m.AnalyzedAt = sql.NullTime{Time: *d.AnalyzedAt, Valid: true}
	}
	if d.Feedback != nil {
		data, err := json.Marshal(d.Feedback)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal answer feedback: %w", err)
		}
		m.Feedback = sql.NullString{String: string(data), Valid: true}
	}
	return m, nil
}

func toDomainAnswer(m *models.InterviewAnswer) (*domain.InterviewAnswer, error) {
	d := &domain.InterviewAnswer{
		ID:              m.ID,
		SessionID:       m.SessionID,
		QuestionID:      m.QuestionID,
		UserID:          m.UserID,
		Type:            domain.AnswerMode(m.AnswerType),
		Text:            m.AnswerText.String,
		AudioURL:        m.AudioURL.String,
		Transcript:      m.Transcript.String,
		DurationSeconds: m.DurationSeconds,
		Analyzed:        m.Analyzed == 1,
		EvaluationError: m.EvaluationError.String,
		SubmittedAt:     m.SubmittedAt,
	}
	if m.Score.Valid {
		score := m.Score.Float64
		d.Score = &score
	}
	if m.AnalyzedAt.Valid {
		t := m.AnalyzedAt.Time
		d.AnalyzedAt = &t
	}
	if m.Feedback.Valid && m.Feedback.String != "" {
		var feedback domain.AnswerFeedback
		if err := json.Unmarshal([]byte(m.Feedback.String), &feedback); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answer feedback: %w", err)
		}
		d.Feedback = &feedback
	}
	return d, nil
}
