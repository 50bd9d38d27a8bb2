package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"mockmate/internal/domain"
	"mockmate/internal/repository/models"
	"mockmate/internal/util"

	"github.com/jmoiron/sqlx"
)

// AnalysisDatabaseAdapter implements domain.AnalysisRepository using sqlx.DB
type AnalysisDatabaseAdapter struct {
	db *sqlx.DB
}

// NewAnalysisDatabaseAdapter creates a new instance of AnalysisDatabaseAdapter
func NewAnalysisDatabaseAdapter(db *sqlx.DB) domain.AnalysisRepository {
	return &AnalysisDatabaseAdapter{db: db}
}

const analysisColumns = `
	id "id",
	user_id "user_id",
	file_name "file_name",
	file_url "file_url",
	extracted_text "extracted_text",
	job_description "job_description",
	language "language",
	status "status",
	analysis_result "analysis_result",
	error_message "error_message",
	created_at "created_at",
	updated_at "updated_at"`

// Save implements domain.AnalysisRepository
func (a *AnalysisDatabaseAdapter) Save(ctx context.Context, record *domain.AnalysisRecord) error {
	if record.ID == "" {
		record.ID = util.NewULID()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	model, err := toModelAnalysis(record)
	if err != nil {
		return err
	}

	query := `INSERT INTO analysis_records (
		id, user_id, file_name, file_url, extracted_text, job_description,
		language, status, analysis_result, error_message, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12
	)`

	executor := GetExecutor(ctx, a.db)
	_, err = executor.ExecContext(ctx, query,
		model.ID,
		model.UserID,
		model.FileName,
		model.FileURL,
		model.ExtractedText,
		model.JobDescription,
		model.Language,
		model.Status,
		model.AnalysisResult,
		model.ErrorMessage,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis record: %w", err)
	}
	return nil
}

// GetByID implements domain.AnalysisRepository
func (a *AnalysisDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	var model models.AnalysisRecord
	query := `SELECT ` + analysisColumns + `
	FROM analysis_records
	WHERE id = :1`

	executor := GetExecutor(ctx, a.db)
	err := executor.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis record by ID %s: %w", id, err)
	}
	return toDomainAnalysis(&model)
}

// Update implements domain.AnalysisRepository. Status, result and error are
// overwritten wholesale so a replayed job converges.
func (a *AnalysisDatabaseAdapter) Update(ctx context.Context, record *domain.AnalysisRecord) error {
	record.UpdatedAt = time.Now()
	model, err := toModelAnalysis(record)
	if err != nil {
		return err
	}

	query := `UPDATE analysis_records SET
		job_description = :1,
		language = :2,
		status = :3,
		analysis_result = :4,
		error_message = :5,
		updated_at = :6
	WHERE id = :7`

	executor := GetExecutor(ctx, a.db)
	_, err = executor.ExecContext(ctx, query,
		model.JobDescription,
		model.Language,
		model.Status,
		model.AnalysisResult,
		model.ErrorMessage,
		model.UpdatedAt,
		model.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update analysis record %s: %w", record.ID, err)
	}
	return nil
}

func toModelAnalysis(d *domain.AnalysisRecord) (*models.AnalysisRecord, error) {
	m := &models.AnalysisRecord{
		ID:        d.ID,
		UserID:    d.UserID,
		FileName:  d.FileName,
		Language:  string(d.Language),
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.FileURL != "" {
		m.FileURL = sql.NullString{String: d.FileURL, Valid: true}
	}
	if d.ExtractedText != "" {
		m.ExtractedText = sql.NullString{String: d.ExtractedText, Valid: true}
	}
	if d.JobDescription != "" {
		m.JobDescription = sql.NullString{String: d.JobDescription, Valid: true}
	}
	if d.Error != "" {
		m.ErrorMessage = sql.NullString{String: d.Error, Valid: true}
	}
	if d.Result != nil {
		data, err := json.Marshal(d.Result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal analysis result: %w", err)
		}
		m.AnalysisResult = sql.NullString{String: string(data), Valid: true}
	}
	return m, nil
}

func toDomainAnalysis(m *models.AnalysisRecord) (*domain.AnalysisRecord, error) {
	d := &domain.AnalysisRecord{
		ID:             m.ID,
		UserID:         m.UserID,
		FileName:       m.FileName,
		FileURL:        m.FileURL.String,
		ExtractedText:  m.ExtractedText.String,
		JobDescription: m.JobDescription.String,
		Language:       domain.Language(m.Language),
		Status:         domain.AnalysisStatus(m.Status),
		Error:          m.ErrorMessage.String,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.AnalysisResult.Valid && m.AnalysisResult.String != "" {
		var result domain.AnalysisResult
		if err := json.Unmarshal([]byte(m.AnalysisResult.String), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
		}
		d.Result = &result
	}
	return d, nil
}
