package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionWithQuestions(n int) *InterviewSession {
	s := NewInterviewSession("user-1", InterviewTechnical, DifficultyMid, AnswerModeText, n)
	s.ID = "sess-1"
	for i := 0; i < n; i++ {
		s.QuestionIDs = append(s.QuestionIDs, string(rune('a'+i)))
	}
	return s
}

func TestInterviewSession_RecordAnswer(t *testing.T) {
	t.Run("AdvancesCursorInOrder", func(t *testing.T) {
		s := newSessionWithQuestions(3)

		require.NoError(t, s.RecordAnswer("ans-1"))
		assert.Equal(t, 1, s.CurrentQuestionIndex)
		require.NoError(t, s.RecordAnswer("ans-2"))
		assert.Equal(t, 2, s.CurrentQuestionIndex)
		assert.Equal(t, []string{"ans-1", "ans-2"}, s.AnswerIDs)
	})

	t.Run("CursorNeverExceedsQuestionCount", func(t *testing.T) {
		s := newSessionWithQuestions(1)
		require.NoError(t, s.RecordAnswer("ans-1"))

		err := s.RecordAnswer("ans-2")
		var dErr *DomainError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, CodeInvalidInput, dErr.Code)
		assert.Equal(t, 1, s.CurrentQuestionIndex)
		assert.Len(t, s.AnswerIDs, 1)
	})

	t.Run("RejectedAfterCompletion", func(t *testing.T) {
		s := newSessionWithQuestions(2)
		require.NoError(t, s.Complete())

		err := s.RecordAnswer("ans-1")
		var dErr *DomainError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, CodeSessionNotActive, dErr.Code)
	})

	t.Run("AcceptedWhilePaused", func(t *testing.T) {
		s := newSessionWithQuestions(2)
		require.NoError(t, s.Pause())

		assert.True(t, s.AcceptsAnswers())
		require.NoError(t, s.RecordAnswer("ans-1"))
		assert.Equal(t, 1, s.CurrentQuestionIndex)
	})
}

func TestInterviewSession_Complete(t *testing.T) {
	s := newSessionWithQuestions(2)

	require.NoError(t, s.Complete())
	require.NotNil(t, s.CompletedAt)
	first := *s.CompletedAt

	err := s.Complete()
	var dErr *DomainError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeSessionCompleted, dErr.Code)
	assert.Equal(t, first, *s.CompletedAt)
}

func TestInterviewSession_PauseResume(t *testing.T) {
	s := newSessionWithQuestions(2)

	require.NoError(t, s.Pause())
	assert.Equal(t, SessionPaused, s.Status)

	// Pausing twice is invalid; so is resuming an active session.
	assert.Error(t, s.Pause())
	require.NoError(t, s.Resume())
	assert.Equal(t, SessionActive, s.Status)
	assert.Error(t, s.Resume())

	require.NoError(t, s.Complete())
	assert.Error(t, s.Pause())
}

func TestInterviewSession_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, newSessionWithQuestions(5).Validate())
	})

	t.Run("MissingUser", func(t *testing.T) {
		s := newSessionWithQuestions(5)
		s.UserID = ""
		assert.Error(t, s.Validate())
	})

	t.Run("QuestionCountOutOfRange", func(t *testing.T) {
		s := NewInterviewSession("user-1", InterviewTechnical, DifficultyMid, AnswerModeText, MaxQuestionsPerSession+1)
		assert.Error(t, s.Validate())
	})

	t.Run("CursorBeyondQuestions", func(t *testing.T) {
		s := newSessionWithQuestions(5)
		s.CurrentQuestionIndex = 6
		assert.Error(t, s.Validate())
	})
}

func TestInterviewSession_HasQuestion(t *testing.T) {
	s := newSessionWithQuestions(2)
	assert.True(t, s.HasQuestion("a"))
	assert.False(t, s.HasQuestion("z"))
}

func TestInterviewAnswer_Evaluation(t *testing.T) {
	t.Run("MarkEvaluated", func(t *testing.T) {
		a := NewInterviewAnswer("sess-1", "q-1", "user-1", AnswerModeText)
		a.EvaluationError = "previous transient failure"

		a.MarkEvaluated(7.5, &AnswerFeedback{Strengths: []string{"clear"}})

		assert.True(t, a.Analyzed)
		require.NotNil(t, a.Score)
		assert.Equal(t, 7.5, *a.Score)
		assert.Empty(t, a.EvaluationError)
		assert.NotNil(t, a.AnalyzedAt)
	})

	t.Run("MarkEvaluationFailedStaysUnanalyzed", func(t *testing.T) {
		a := NewInterviewAnswer("sess-1", "q-1", "user-1", AnswerModeText)

		a.MarkEvaluationFailed("provider rejected the request")

		assert.False(t, a.Analyzed)
		assert.Nil(t, a.Score)
		assert.Nil(t, a.Feedback)
		assert.Equal(t, "provider rejected the request", a.EvaluationError)
	})
}

func TestInterviewSession_AggregateFeedback(t *testing.T) {
	newSession := func() *InterviewSession {
		return NewInterviewSession("user-1", InterviewTechnical, DifficultyMid, AnswerModeText, 5)
	}

	t.Run("MarkFeedbackWritten", func(t *testing.T) {
		s := newSession()
		s.FeedbackError = "previous transient failure"

		s.MarkFeedbackWritten(72, &SessionFeedback{Summary: "solid"})

		require.NotNil(t, s.OverallScore)
		assert.Equal(t, 72.0, *s.OverallScore)
		require.NotNil(t, s.Feedback)
		assert.Empty(t, s.FeedbackError)
		assert.True(t, s.FeedbackResolved())
	})

	t.Run("MarkFeedbackFailedStaysUnscored", func(t *testing.T) {
		s := newSession()

		s.MarkFeedbackFailed("provider rejected the request")

		assert.Nil(t, s.OverallScore)
		assert.Nil(t, s.Feedback)
		assert.Equal(t, "provider rejected the request", s.FeedbackError)
		assert.True(t, s.FeedbackResolved())
	})

	t.Run("PendingFeedbackIsUnresolved", func(t *testing.T) {
		assert.False(t, newSession().FeedbackResolved())
	})
}

func TestInterviewAnswer_Validate(t *testing.T) {
	base := func() *InterviewAnswer {
		a := NewInterviewAnswer("sess-1", "q-1", "user-1", AnswerModeText)
		a.Text = "an answer"
		a.DurationSeconds = 30
		return a
	}

	assert.NoError(t, base().Validate())

	a := base()
	a.Text = ""
	assert.Error(t, a.Validate())

	a = base()
	a.Type = AnswerModeAudio
	assert.Error(t, a.Validate())
	a.AudioURL = "https://cdn.example.com/rec.ogg"
	assert.NoError(t, a.Validate())

	a = base()
	a.DurationSeconds = 0
	assert.Error(t, a.Validate())
}

func TestAnalysisRecord_StateMachine(t *testing.T) {
	r := NewAnalysisRecord("user-1", "resume.pdf", "https://cdn.example.com/resume.pdf")
	assert.Equal(t, AnalysisPending, r.Status)
	assert.False(t, r.Terminal())

	r.MarkProcessing()
	assert.Equal(t, AnalysisProcessing, r.Status)
	assert.False(t, r.Terminal())

	r.MarkFailed("provider overloaded")
	assert.True(t, r.Terminal())
	assert.Equal(t, "provider overloaded", r.Error)

	// A rerun clears the failure before the job runs again.
	r.MarkProcessing()
	assert.Empty(t, r.Error)

	r.MarkCompleted(&AnalysisResult{Summary: "Strong candidate."})
	assert.True(t, r.Terminal())
	assert.Empty(t, r.Error)
	require.NotNil(t, r.Result)
	assert.Equal(t, "Strong candidate.", r.Result.Summary)
}

func TestProviderError_Transient(t *testing.T) {
	transient := []ProviderErrorKind{ProviderTimeout, ProviderRateLimited, ProviderOverloaded}
	for _, kind := range transient {
		assert.True(t, NewProviderError(kind, errors.New("boom")).Transient(), string(kind))
	}
	permanent := []ProviderErrorKind{ProviderAuthFailure, ProviderInvalidRequest}
	for _, kind := range permanent {
		assert.False(t, NewProviderError(kind, errors.New("boom")).Transient(), string(kind))
	}
}
