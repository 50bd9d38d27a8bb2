package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"mockmate/internal/domain"
	"mockmate/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAnswerTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

var answerRowColumns = []string{
	"id", "session_id", "question_id", "user_id", "answer_type", "answer_text",
	"audio_url", "transcript", "duration_seconds", "analyzed", "score",
	"feedback", "evaluation_error", "submitted_at", "analyzed_at",
}

// --- Tests for Converter Functions ---

func TestToModelAnswer(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	score := 8.5
	d := &domain.InterviewAnswer{
		ID:              "ans-1",
		SessionID:       "sess-1",
		QuestionID:      "q-1",
		UserID:          "user-1",
		Type:            domain.AnswerModeText,
		Text:            "my answer",
		DurationSeconds: 45,
		Analyzed:        true,
		Score:           &score,
		Feedback:        &domain.AnswerFeedback{Strengths: []string{"clear"}},
		SubmittedAt:     now,
		AnalyzedAt:      &now,
	}

	m, err := toModelAnswer(d)
	require.NoError(t, err)
	assert.Equal(t, "ans-1", m.ID)
	assert.Equal(t, "text", m.AnswerType)
	assert.Equal(t, 1, m.Analyzed)
	assert.True(t, m.Score.Valid)
	assert.Equal(t, 8.5, m.Score.Float64)
	assert.True(t, m.Feedback.Valid)
	assert.Contains(t, m.Feedback.String, "clear")
	assert.False(t, m.AudioURL.Valid)
	assert.False(t, m.EvaluationError.Valid)
	assert.True(t, m.AnalyzedAt.Valid)
}

func TestToDomainAnswer(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	m := &models.InterviewAnswer{
		ID:              "ans-1",
		SessionID:       "sess-1",
		QuestionID:      "q-1",
		UserID:          "user-1",
		AnswerType:      "audio",
		AudioURL:        sql.NullString{String: "https://cdn.example.com/rec.ogg", Valid: true},
		Transcript:      sql.NullString{String: "spoken words", Valid: true},
		DurationSeconds: 120,
		Analyzed:        0,
		EvaluationError: sql.NullString{String: "provider rejected the request", Valid: true},
		SubmittedAt:     now,
	}

	d, err := toDomainAnswer(m)
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerModeAudio, d.Type)
	assert.Equal(t, "spoken words", d.Transcript)
	assert.False(t, d.Analyzed)
	assert.Nil(t, d.Score)
	assert.Nil(t, d.Feedback)
	assert.Equal(t, "provider rejected the request", d.EvaluationError)
}

func TestToDomainAnswer_FeedbackJSON(t *testing.T) {
	m := &models.InterviewAnswer{
		ID:         "ans-1",
		SessionID:  "sess-1",
		QuestionID: "q-1",
		AnswerType: "text",
		Analyzed:   1,
		Score:      sql.NullFloat64{Float64: 7.0, Valid: true},
		Feedback:   sql.NullString{String: `{"strengths": ["depth"], "improvements": ["pace"]}`, Valid: true},
	}

	d, err := toDomainAnswer(m)
	require.NoError(t, err)
	require.NotNil(t, d.Feedback)
	assert.Equal(t, []string{"depth"}, d.Feedback.Strengths)

	m.Feedback = sql.NullString{String: "{broken", Valid: true}
	_, err = toDomainAnswer(m)
	assert.Error(t, err)
}

// --- Tests for Adapter Methods ---

func TestAnswerDatabaseAdapter_Save(t *testing.T) {
	db, mock := setupAnswerTestDB(t)
	repo := NewAnswerDatabaseAdapter(db)
	defer db.Close()

	answer := &domain.InterviewAnswer{
		SessionID:       "sess-1",
		QuestionID:      "q-1",
		UserID:          "user-1",
		Type:            domain.AnswerModeText,
		Text:            "my answer",
		DurationSeconds: 45,
		SubmittedAt:     time.Now(),
	}

	mock.ExpectExec(`INSERT INTO interview_answers`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), answer)
	assert.NoError(t, err)
	assert.NotEmpty(t, answer.ID, "Save assigns an id when absent")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerDatabaseAdapter_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupAnswerTestDB(t)
		repo := NewAnswerDatabaseAdapter(db)
		defer db.Close()

		now := time.Now()
		rows := sqlmock.NewRows(answerRowColumns).
			AddRow("ans-1", "sess-1", "q-1", "user-1", "text", "my answer",
				nil, nil, 45, 0, nil, nil, nil, now, nil)

		mock.ExpectQuery(`SELECT(.|\n)+FROM interview_answers(.|\n)+WHERE id = :1`).
			WithArgs("ans-1").
			WillReturnRows(rows)

		answer, err := repo.GetByID(context.Background(), "ans-1")
		require.NoError(t, err)
		require.NotNil(t, answer)
		assert.Equal(t, "my answer", answer.Text)
		assert.False(t, answer.Analyzed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFoundReturnsNil", func(t *testing.T) {
		db, mock := setupAnswerTestDB(t)
		repo := NewAnswerDatabaseAdapter(db)
		defer db.Close()

		mock.ExpectQuery(`SELECT(.|\n)+FROM interview_answers(.|\n)+WHERE id = :1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		answer, err := repo.GetByID(context.Background(), "missing")
		assert.NoError(t, err)
		assert.Nil(t, answer)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAnswerDatabaseAdapter_GetBySessionID(t *testing.T) {
	db, mock := setupAnswerTestDB(t)
	repo := NewAnswerDatabaseAdapter(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(answerRowColumns).
		AddRow("ans-1", "sess-1", "q-1", "user-1", "text", "first",
			nil, nil, 30, 1, 6.5, `{"strengths":["ok"]}`, nil, now, now).
		AddRow("ans-2", "sess-1", "q-2", "user-1", "text", "second",
			nil, nil, 40, 0, nil, nil, nil, now.Add(time.Minute), nil)

	mock.ExpectQuery(`SELECT(.|\n)+FROM interview_answers(.|\n)+WHERE session_id = :1(.|\n)+ORDER BY submitted_at`).
		WithArgs("sess-1").
		WillReturnRows(rows)

	answers, err := repo.GetBySessionID(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.True(t, answers[0].Analyzed)
	require.NotNil(t, answers[0].Score)
	assert.Equal(t, 6.5, *answers[0].Score)
	assert.False(t, answers[1].Analyzed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerDatabaseAdapter_UpdateEvaluation(t *testing.T) {
	db, mock := setupAnswerTestDB(t)
	repo := NewAnswerDatabaseAdapter(db)
	defer db.Close()

	answer := &domain.InterviewAnswer{
		ID:         "ans-1",
		SessionID:  "sess-1",
		QuestionID: "q-1",
		Type:       domain.AnswerModeText,
	}
	answer.MarkEvaluated(7.5, &domain.AnswerFeedback{Strengths: []string{"structure"}})

	mock.ExpectExec(`UPDATE interview_answers SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateEvaluation(context.Background(), answer)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
