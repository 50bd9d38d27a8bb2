package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"mockmate/internal/domain"
	"mockmate/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelSession_FeedbackState(t *testing.T) {
	t.Run("written feedback", func(t *testing.T) {
		d := domain.NewInterviewSession("user-1", domain.InterviewTechnical, domain.DifficultyMid, domain.AnswerModeText, 5)
		d.ID = "sess-1"
		d.MarkFeedbackWritten(72, &domain.SessionFeedback{Summary: "solid"})

		m, err := toModelSession(d)
		require.NoError(t, err)
		assert.True(t, m.OverallScore.Valid)
		assert.Equal(t, 72.0, m.OverallScore.Float64)
		assert.True(t, m.Feedback.Valid)
		assert.False(t, m.FeedbackError.Valid)
	})

	t.Run("failed feedback", func(t *testing.T) {
		d := domain.NewInterviewSession("user-1", domain.InterviewTechnical, domain.DifficultyMid, domain.AnswerModeText, 5)
		d.ID = "sess-1"
		d.MarkFeedbackFailed("provider rejected the request")

		m, err := toModelSession(d)
		require.NoError(t, err)
		assert.False(t, m.OverallScore.Valid)
		assert.False(t, m.Feedback.Valid)
		assert.True(t, m.FeedbackError.Valid)
		assert.Equal(t, "provider rejected the request", m.FeedbackError.String)
	})
}

func TestToDomainSession_FeedbackError(t *testing.T) {
	m := &models.InterviewSession{
		ID:            "sess-1",
		UserID:        "user-1",
		Type:          "technical",
		Difficulty:    "mid",
		NumQuestions:  5,
		Mode:          "text",
		Language:      "en",
		Status:        "completed",
		StartedAt:     time.Now(),
		FeedbackError: sql.NullString{String: "provider rejected the request", Valid: true},
	}

	d, err := toDomainSession(m)
	require.NoError(t, err)
	assert.Nil(t, d.OverallScore)
	assert.Nil(t, d.Feedback)
	assert.Equal(t, "provider rejected the request", d.FeedbackError)
	assert.True(t, d.FeedbackResolved())
}

func TestSessionDatabaseAdapter_Update(t *testing.T) {
	db, mock := setupAnswerTestDB(t)
	repo := NewSessionDatabaseAdapter(db)
	defer db.Close()

	session := domain.NewInterviewSession("user-1", domain.InterviewTechnical, domain.DifficultyMid, domain.AnswerModeText, 5)
	session.ID = "sess-1"
	session.MarkFeedbackFailed("provider rejected the request")

	mock.ExpectExec(`UPDATE interview_sessions SET(.|\n)+feedback_error = :8`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), session)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
