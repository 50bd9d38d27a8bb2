package domain

import (
	"context"
	"time"
)

// AnalysisStatus is the processing state of an uploaded document
type AnalysisStatus string

const (
	AnalysisPending    AnalysisStatus = "pending"
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisFailed     AnalysisStatus = "failed"
)

// AnalysisRecord tracks one uploaded resume/CV and its async analysis.
// Status transitions pending -> processing -> completed|failed are driven
// solely by the background job; a user-visible re-run resets to processing.
type AnalysisRecord struct {
	ID             string
	UserID         string
	FileName       string
	FileURL        string
	ExtractedText  string
	JobDescription string
	Language       Language
	Status         AnalysisStatus
	Result         *AnalysisResult
	Error          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AnalysisResult is the structured outcome of a document analysis.
type AnalysisResult struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	SkillGaps       []string `json:"skill_gaps"`
	Recommendations []string `json:"recommendations"`
	JobMatchScore   *float64 `json:"job_match_score,omitempty"`
}

// NewAnalysisRecord creates a pending analysis record.
func NewAnalysisRecord(userID, fileName, fileURL string) *AnalysisRecord {
	now := time.Now()
	return &AnalysisRecord{
		UserID:    userID,
		FileName:  fileName,
		FileURL:   fileURL,
		Language:  LanguageEnglish,
		Status:    AnalysisPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the analysis record
func (r *AnalysisRecord) Validate() error {
	if r.UserID == "" {
		return NewValidationError("user_id is required")
	}
	if r.FileName == "" {
		return NewValidationError("file_name is required")
	}
	return nil
}

// Terminal reports whether the record reached a terminal sub-state.
func (r *AnalysisRecord) Terminal() bool {
	return r.Status == AnalysisCompleted || r.Status == AnalysisFailed
}

// MarkProcessing is idempotent so a replayed job converges to the same state.
func (r *AnalysisRecord) MarkProcessing() {
	r.Status = AnalysisProcessing
	r.Error = ""
	r.UpdatedAt = time.Now()
}

// MarkCompleted overwrites the result wholesale.
func (r *AnalysisRecord) MarkCompleted(result *AnalysisResult) {
	r.Status = AnalysisCompleted
	r.Result = result
	r.Error = ""
	r.UpdatedAt = time.Now()
}

// MarkFailed records the terminal failure with a stored error string.
func (r *AnalysisRecord) MarkFailed(reason string) {
	r.Status = AnalysisFailed
	r.Error = reason
	r.UpdatedAt = time.Now()
}

// AnalysisRepository persists analysis records
type AnalysisRepository interface {
	Save(ctx context.Context, record *AnalysisRecord) error
	GetByID(ctx context.Context, id string) (*AnalysisRecord, error)
	Update(ctx context.Context, record *AnalysisRecord) error
}
