package domain

import (
	"context"
	"time"
)

// SessionStatus is the lifecycle state of an interview session
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPaused    SessionStatus = "paused"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// InterviewType is the category of questions a session is built from
type InterviewType string

const (
	InterviewTechnical  InterviewType = "technical"
	InterviewBehavioral InterviewType = "behavioral"
	InterviewCaseStudy  InterviewType = "case_study"
	InterviewMixed      InterviewType = "mixed"
)

// Difficulty is the seniority tier questions are targeted at
type Difficulty string

const (
	DifficultyJunior Difficulty = "junior"
	DifficultyMid    Difficulty = "mid"
	DifficultySenior Difficulty = "senior"
)

// AnswerMode is how the candidate responds
type AnswerMode string

const (
	AnswerModeText  AnswerMode = "text"
	AnswerModeAudio AnswerMode = "audio"
)

// Language is the target language for generated content
type Language string

const (
	LanguageUzbek   Language = "uz"
	LanguageRussian Language = "ru"
	LanguageEnglish Language = "en"
)

const (
	MinQuestionsPerSession = 5
	MaxQuestionsPerSession = 20
)

// InterviewSession represents one mock-interview attempt.
// The persisted record is the single source of truth for the answer cursor;
// caller-local caches are read-through hints only.
type InterviewSession struct {
	ID                   string
	UserID               string
	Type                 InterviewType
	Difficulty           Difficulty
	Domain               string
	Technologies         []string
	NumQuestions         int
	Mode                 AnswerMode
	TimeLimitMinutes     int
	Language             Language
	Status               SessionStatus
	CurrentQuestionIndex int
	QuestionIDs          []string
	AnswerIDs            []string
	StartedAt            time.Time
	CompletedAt          *time.Time
	OverallScore         *float64
	Feedback             *SessionFeedback
	FeedbackError        string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// SessionFeedback is the aggregate AI evaluation written once the session completes.
// Handlers overwrite it wholesale so re-running the job converges.
type SessionFeedback struct {
	TechnicalAccuracy  float64  `json:"technical_accuracy"`
	Communication      float64  `json:"communication"`
	StructuredThinking float64  `json:"structured_thinking"`
	Confidence         float64  `json:"confidence"`
	ProblemSolving     float64  `json:"problem_solving"`
	Summary            string   `json:"summary"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	TopConcerns        []string `json:"top_concerns"`
	Recommendations    []string `json:"recommendations"`
	NextSteps          []string `json:"next_steps"`
}

// NewInterviewSession creates a session in its initial state.
func NewInterviewSession(userID string, itype InterviewType, difficulty Difficulty, mode AnswerMode, numQuestions int) *InterviewSession {
	now := time.Now()
	return &InterviewSession{
		UserID:               userID,
		Type:                 itype,
		Difficulty:           difficulty,
		Mode:                 mode,
		NumQuestions:         numQuestions,
		Language:             LanguageEnglish,
		Status:               SessionActive,
		CurrentQuestionIndex: 0,
		StartedAt:            now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// Validate validates the session
func (s *InterviewSession) Validate() error {
	if s.UserID == "" {
		return NewValidationError("user_id is required")
	}
	if s.NumQuestions < MinQuestionsPerSession || s.NumQuestions > MaxQuestionsPerSession {
		return NewValidationError("num_questions is out of range")
	}
	if s.CurrentQuestionIndex > len(s.QuestionIDs) {
		return NewValidationError("question index exceeds question count")
	}
	if len(s.AnswerIDs) > len(s.QuestionIDs) {
		return NewValidationError("answer count exceeds question count")
	}
	return nil
}

// NewValidationError keeps the entity Validate methods terse.
func NewValidationError(message string) error {
	return NewError(CodeValidation, message, nil)
}

// AcceptsAnswers reports whether the session can take a new submission.
func (s *InterviewSession) AcceptsAnswers() bool {
	return s.Status == SessionActive || s.Status == SessionPaused
}

// HasQuestion reports whether the question belongs to this session.
func (s *InterviewSession) HasQuestion(questionID string) bool {
	for _, id := range s.QuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}

// RecordAnswer appends the answer reference and advances the cursor by one.
// The cursor never exceeds the question count.
func (s *InterviewSession) RecordAnswer(answerID string) error {
	if !s.AcceptsAnswers() {
		return NewSessionNotActiveError(s.ID, s.Status)
	}
	if s.CurrentQuestionIndex >= len(s.QuestionIDs) {
		return NewInvalidInputError("all questions in this session have been answered")
	}
	s.AnswerIDs = append(s.AnswerIDs, answerID)
	s.CurrentQuestionIndex++
	s.UpdatedAt = time.Now()
	return nil
}

// Complete transitions the session to its terminal state. Completing an
// already-completed session is a reported error and leaves CompletedAt intact.
func (s *InterviewSession) Complete() error {
	if s.Status == SessionCompleted {
		return NewSessionCompletedError(s.ID)
	}
	now := time.Now()
	s.Status = SessionCompleted
	s.CompletedAt = &now
	s.UpdatedAt = now
	return nil
}

// MarkFeedbackWritten overwrites the aggregate evaluation wholesale so a
// replayed session-feedback job converges.
func (s *InterviewSession) MarkFeedbackWritten(overall float64, feedback *SessionFeedback) {
	s.OverallScore = &overall
	s.Feedback = feedback
	s.FeedbackError = ""
	s.UpdatedAt = time.Now()
}

// MarkFeedbackFailed records a terminal session-feedback failure. Score and
// feedback stay absent so the failure is distinguishable from a pending job.
func (s *InterviewSession) MarkFeedbackFailed(reason string) {
	s.OverallScore = nil
	s.Feedback = nil
	s.FeedbackError = reason
	s.UpdatedAt = time.Now()
}

// FeedbackResolved reports whether the aggregate evaluation reached a
// terminal state, written or failed.
func (s *InterviewSession) FeedbackResolved() bool {
	if s.Feedback != nil && s.OverallScore != nil {
		return true
	}
	return s.FeedbackError != ""
}

// Pause is advisory: it blocks nothing server-side but is persisted so
// independent callers observe the same state.
func (s *InterviewSession) Pause() error {
	if s.Status != SessionActive {
		return NewSessionNotActiveError(s.ID, s.Status)
	}
	s.Status = SessionPaused
	s.UpdatedAt = time.Now()
	return nil
}

// Resume reverts an advisory pause.
func (s *InterviewSession) Resume() error {
	if s.Status != SessionPaused {
		return NewInvalidInputError("session is not paused")
	}
	s.Status = SessionActive
	s.UpdatedAt = time.Now()
	return nil
}

// InterviewQuestion is immutable once created; only its usage statistics
// are updated afterwards, by the feedback job.
type InterviewQuestion struct {
	ID           string
	SessionID    string
	Ordinal      int
	Category     InterviewType
	Difficulty   Difficulty
	Text         string
	KeyPoints    []string
	Hints        []string
	TimesAsked   int
	AverageScore float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the question
func (q *InterviewQuestion) Validate() error {
	if q.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if q.Text == "" {
		return NewValidationError("question text is required")
	}
	return nil
}

// InterviewAnswer is one response to one question. Score and Feedback are
// absent at creation and written exactly once by the async feedback job.
type InterviewAnswer struct {
	ID              string
	SessionID       string
	QuestionID      string
	UserID          string
	Type            AnswerMode
	Text            string
	AudioURL        string
	Transcript      string
	DurationSeconds int
	Analyzed        bool
	Score           *float64
	Feedback        *AnswerFeedback
	EvaluationError string
	SubmittedAt     time.Time
	AnalyzedAt      *time.Time
}

// MarkEvaluated overwrites the evaluation wholesale so a replayed job converges.
func (a *InterviewAnswer) MarkEvaluated(score float64, feedback *AnswerFeedback) {
	now := time.Now()
	a.Analyzed = true
	a.Score = &score
	a.Feedback = feedback
	a.EvaluationError = ""
	a.AnalyzedAt = &now
}

// MarkEvaluationFailed records a terminal evaluation failure. The answer
// stays unanalyzed so the failure is distinguishable from a pending job.
func (a *InterviewAnswer) MarkEvaluationFailed(reason string) {
	a.Analyzed = false
	a.Score = nil
	a.Feedback = nil
	a.EvaluationError = reason
}

// AnswerFeedback is the structured per-answer evaluation, score in [0, 10].
type AnswerFeedback struct {
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	KeyPointsCovered []string `json:"key_points_covered"`
	KeyPointsMissed  []string `json:"key_points_missed"`
	Suggestions      []string `json:"suggestions"`
	ImprovedAnswer   string   `json:"improved_answer,omitempty"`
}

// NewInterviewAnswer creates an unscored answer.
func NewInterviewAnswer(sessionID, questionID, userID string, mode AnswerMode) *InterviewAnswer {
	return &InterviewAnswer{
		SessionID:   sessionID,
		QuestionID:  questionID,
		UserID:      userID,
		Type:        mode,
		SubmittedAt: time.Now(),
	}
}

// Validate validates the answer
func (a *InterviewAnswer) Validate() error {
	if a.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if a.QuestionID == "" {
		return NewValidationError("question_id is required")
	}
	if a.Type == AnswerModeText && a.Text == "" {
		return NewValidationError("answer text is required for text answers")
	}
	if a.Type == AnswerModeAudio && a.AudioURL == "" {
		return NewValidationError("audio_url is required for audio answers")
	}
	if a.DurationSeconds < 1 {
		return NewValidationError("duration must be at least one second")
	}
	return nil
}

// SessionRepository persists interview sessions
type SessionRepository interface {
	Save(ctx context.Context, session *InterviewSession) error
	GetByID(ctx context.Context, id string) (*InterviewSession, error)
	Update(ctx context.Context, session *InterviewSession) error
}

// QuestionRepository persists interview questions
type QuestionRepository interface {
	SaveBatch(ctx context.Context, questions []*InterviewQuestion) error
	GetByID(ctx context.Context, id string) (*InterviewQuestion, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]*InterviewQuestion, error)
	UpdateStats(ctx context.Context, questionID string, timesAsked int, averageScore float64) error
}

// AnswerRepository persists interview answers
type AnswerRepository interface {
	Save(ctx context.Context, answer *InterviewAnswer) error
	GetByID(ctx context.Context, id string) (*InterviewAnswer, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]*InterviewAnswer, error)
	GetByQuestionID(ctx context.Context, questionID string) ([]*InterviewAnswer, error)
	UpdateEvaluation(ctx context.Context, answer *InterviewAnswer) error
}
