package dto

import (
	"time"

	"mockmate/internal/domain"
)

// UploadAnalysisRequest is the request body for a new document analysis
// @Description An extracted resume/CV text to analyze asynchronously
type UploadAnalysisRequest struct {
	FileName       string `json:"fileName"`
	FileURL        string `json:"fileUrl,omitempty"`
	ExtractedText  string `json:"extractedText"`
	JobDescription string `json:"jobDescription,omitempty"`
	Language       string `json:"language,omitempty"`
}

// ToDomain builds the unsaved analysis record from the request.
func (r *UploadAnalysisRequest) ToDomain(userID string) *domain.AnalysisRecord {
	record := domain.NewAnalysisRecord(userID, r.FileName, r.FileURL)
	record.ExtractedText = r.ExtractedText
	record.JobDescription = r.JobDescription
	if r.Language != "" {
		record.Language = domain.Language(r.Language)
	}
	return record
}

// RerunAnalysisRequest is the request body for re-running an analysis
type RerunAnalysisRequest struct {
	JobDescription string `json:"jobDescription,omitempty"`
	Language       string `json:"language,omitempty"`
}

// AnalysisResponse represents an analysis record in the API response
// @Description Analysis record with its processing state and result
type AnalysisResponse struct {
	ID             string                 `json:"id"`
	FileName       string                 `json:"fileName"`
	JobDescription string                 `json:"jobDescription,omitempty"`
	Language       string                 `json:"language"`
	Status         string                 `json:"status"`
	Result         *domain.AnalysisResult `json:"result,omitempty"`
	Error          string                 `json:"error,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// NewAnalysisResponse converts an analysis record to its API shape.
func NewAnalysisResponse(r *domain.AnalysisRecord) AnalysisResponse {
	return AnalysisResponse{
		ID:             r.ID,
		FileName:       r.FileName,
		JobDescription: r.JobDescription,
		Language:       string(r.Language),
		Status:         string(r.Status),
		Result:         r.Result,
		Error:          r.Error,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
