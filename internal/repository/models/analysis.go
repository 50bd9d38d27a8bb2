package models

import (
	"database/sql"
	"time"
)

// AnalysisRecord is the database shape of an uploaded-document analysis row.
// The structured result is a JSON CLOB.
type AnalysisRecord struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	FileName       string         `db:"file_name"`
	FileURL        sql.NullString `db:"file_url"`
	ExtractedText  sql.NullString `db:"extracted_text"`
	JobDescription sql.NullString `db:"job_description"`
	Language       string         `db:"language"`
	Status         string         `db:"status"`
	AnalysisResult sql.NullString `db:"analysis_result"`
	ErrorMessage   sql.NullString `db:"error_message"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// User carries the plan lookup for the quota guard.
type User struct {
	ID        string    `db:"id"`
	Plan      string    `db:"plan"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UsageCounter is one per-user, per-feature monthly bucket.
type UsageCounter struct {
	UserID      string `db:"user_id"`
	Feature     string `db:"feature"`
	UsagePeriod string `db:"usage_period"`
	UsedCount   int    `db:"used_count"`
}
