package models

import (
	"database/sql"
	"time"
)

// InterviewSession is the database shape of a session row. Id lists and
// technology tags are delimiter-joined CLOBs; structured feedback is a JSON
// CLOB.
type InterviewSession struct {
	ID                   string          `db:"id"`
	UserID               string          `db:"user_id"`
	Type                 string          `db:"session_type"`
	Difficulty           string          `db:"difficulty"`
	Domain               sql.NullString  `db:"domain"`
	Technologies         sql.NullString  `db:"technologies"`
	NumQuestions         int             `db:"num_questions"`
	Mode                 string          `db:"answer_mode"`
	TimeLimitMinutes     int             `db:"time_limit_minutes"`
	Language             string          `db:"language"`
	Status               string          `db:"status"`
	CurrentQuestionIndex int             `db:"current_question_index"`
	QuestionIDs          sql.NullString  `db:"question_ids"`
	AnswerIDs            sql.NullString  `db:"answer_ids"`
	StartedAt            time.Time       `db:"started_at"`
	CompletedAt          sql.NullTime    `db:"completed_at"`
	OverallScore         sql.NullFloat64 `db:"overall_score"`
	Feedback             sql.NullString  `db:"feedback"`
	FeedbackError        sql.NullString  `db:"feedback_error"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

// InterviewQuestion is the database shape of a question row.
type InterviewQuestion struct {
	ID           string         `db:"id"`
	SessionID    string         `db:"session_id"`
	Ordinal      int            `db:"ordinal"`
	Category     string         `db:"category"`
	Difficulty   string         `db:"difficulty"`
	QuestionText string         `db:"question_text"`
	KeyPoints    sql.NullString `db:"key_points"`
	Hints        sql.NullString `db:"hints"`
	TimesAsked   int            `db:"times_asked"`
	AverageScore float64        `db:"average_score"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// InterviewAnswer is the database shape of an answer row.
type InterviewAnswer struct {
	ID              string          `db:"id"`
	SessionID       string          `db:"session_id"`
	QuestionID      string          `db:"question_id"`
	UserID          string          `db:"user_id"`
	AnswerType      string          `db:"answer_type"`
	AnswerText      sql.NullString  `db:"answer_text"`
	AudioURL        sql.NullString  `db:"audio_url"`
	Transcript      sql.NullString  `db:"transcript"`
	DurationSeconds int             `db:"duration_seconds"`
	Analyzed        int             `db:"analyzed"`
	Score           sql.NullFloat64 `db:"score"`
	Feedback        sql.NullString  `db:"feedback"`
	EvaluationError sql.NullString  `db:"evaluation_error"`
	SubmittedAt     time.Time       `db:"submitted_at"`
	AnalyzedAt      sql.NullTime    `db:"analyzed_at"`
}
