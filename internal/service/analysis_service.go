package service

import (
	"context"
	"time"

	"mockmate/internal/domain"
	"mockmate/internal/logger"
	"mockmate/internal/util"

	"go.uber.org/zap"
)

// AnalysisService manages document (resume/CV) analysis records and their
// asynchronous processing.
type AnalysisService interface {
	Upload(ctx context.Context, record *domain.AnalysisRecord) (*domain.AnalysisRecord, error)
	Get(ctx context.Context, userID, recordID string) (*domain.AnalysisRecord, error)
	Rerun(ctx context.Context, userID, recordID, jobDescription string, language domain.Language) (*domain.AnalysisRecord, error)
}

type analysisService struct {
	analysisRepo domain.AnalysisRepository
	quota        domain.QuotaGuard
	enqueuer     domain.Enqueuer
	txManager    domain.TransactionManager
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	analysisRepo domain.AnalysisRepository,
	quota domain.QuotaGuard,
	enqueuer domain.Enqueuer,
	txManager domain.TransactionManager,
) AnalysisService {
	return &analysisService{
		analysisRepo: analysisRepo,
		quota:        quota,
		enqueuer:     enqueuer,
		txManager:    txManager,
	}
}

// Upload stores a pending analysis record and schedules its processing.
// Record creation and enqueue are one unit; the quota is consumed only
// after both are durable.
func (s *analysisService) Upload(ctx context.Context, record *domain.AnalysisRecord) (*domain.AnalysisRecord, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := s.quota.Authorize(ctx, record.UserID, domain.FeatureResumeAnalyses); err != nil {
		return nil, err
	}

	now := time.Now()
	record.ID = util.NewULID()
	record.Status = domain.AnalysisPending
	record.CreatedAt = now
	record.UpdatedAt = now

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.analysisRepo.Save(txCtx, record); err != nil {
			return err
		}
		return s.enqueuer.EnqueueDocumentAnalysis(txCtx, domain.DocumentAnalysisPayload{
			RecordID: record.ID,
			UserID:   record.UserID,
		})
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to create analysis record", err)
	}

	if err := s.quota.Consume(ctx, record.UserID, domain.FeatureResumeAnalyses); err != nil {
		logger.Get().Error("Failed to consume analysis quota",
			zap.String("user_id", record.UserID),
			zap.String("record_id", record.ID),
			zap.Error(err))
	}
	return record, nil
}

// Get implements AnalysisService
func (s *analysisService) Get(ctx context.Context, userID, recordID string) (*domain.AnalysisRecord, error) {
	return s.loadOwnedRecord(ctx, userID, recordID)
}

// Rerun re-analyzes an existing record, optionally against a different
// job description or language. It resets the record to processing so
// pollers see fresh work, and does not charge quota again.
func (s *analysisService) Rerun(ctx context.Context, userID, recordID, jobDescription string, language domain.Language) (*domain.AnalysisRecord, error) {
	record, err := s.loadOwnedRecord(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}
	if jobDescription != "" {
		record.JobDescription = jobDescription
	}
	if language != "" {
		record.Language = language
	}
	record.MarkProcessing()

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.analysisRepo.Update(txCtx, record); err != nil {
			return err
		}
		return s.enqueuer.EnqueueDocumentAnalysis(txCtx, domain.DocumentAnalysisPayload{
			RecordID:       record.ID,
			UserID:         userID,
			JobDescription: record.JobDescription,
			Language:       string(record.Language),
		})
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to rerun analysis", err)
	}
	return record, nil
}

func (s *analysisService) loadOwnedRecord(ctx context.Context, userID, recordID string) (*domain.AnalysisRecord, error) {
	record, err := s.analysisRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load analysis record", err)
	}
	if record == nil || record.UserID != userID {
		return nil, domain.NewAnalysisNotFoundError(recordID)
	}
	return record, nil
}
