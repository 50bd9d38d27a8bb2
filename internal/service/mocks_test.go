package service

import (
	"context"

	"mockmate/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockSessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.InterviewSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*domain.InterviewSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewSession), args.Error(1)
}

func (m *MockSessionRepository) Update(ctx context.Context, session *domain.InterviewSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) SaveBatch(ctx context.Context, questions []*domain.InterviewQuestion) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*domain.InterviewQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewQuestion), args.Error(1)
}

func (m *MockQuestionRepository) GetBySessionID(ctx context.Context, sessionID string) ([]*domain.InterviewQuestion, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InterviewQuestion), args.Error(1)
}

func (m *MockQuestionRepository) UpdateStats(ctx context.Context, questionID string, timesAsked int, averageScore float64) error {
	args := m.Called(ctx, questionID, timesAsked, averageScore)
	return args.Error(0)
}

// --- MockAnswerRepository ---
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Save(ctx context.Context, answer *domain.InterviewAnswer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) GetByID(ctx context.Context, id string) (*domain.InterviewAnswer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewAnswer), args.Error(1)
}

func (m *MockAnswerRepository) GetBySessionID(ctx context.Context, sessionID string) ([]*domain.InterviewAnswer, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InterviewAnswer), args.Error(1)
}

func (m *MockAnswerRepository) GetByQuestionID(ctx context.Context, questionID string) ([]*domain.InterviewAnswer, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InterviewAnswer), args.Error(1)
}

func (m *MockAnswerRepository) UpdateEvaluation(ctx context.Context, answer *domain.InterviewAnswer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

// --- MockAnalysisRepository ---
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Save(ctx context.Context, record *domain.AnalysisRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAnalysisRepository) GetByID(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisRepository) Update(ctx context.Context, record *domain.AnalysisRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- MockUsageRepository ---
type MockUsageRepository struct {
	mock.Mock
}

func (m *MockUsageRepository) GetPlan(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockUsageRepository) GetMonthlyCount(ctx context.Context, userID string, feature domain.Feature, period string) (int, error) {
	args := m.Called(ctx, userID, feature, period)
	return args.Int(0), args.Error(1)
}

func (m *MockUsageRepository) Increment(ctx context.Context, userID string, feature domain.Feature, period string) error {
	args := m.Called(ctx, userID, feature, period)
	return args.Error(0)
}

// --- MockQuotaGuard ---
type MockQuotaGuard struct {
	mock.Mock
}

func (m *MockQuotaGuard) Authorize(ctx context.Context, userID string, feature domain.Feature) error {
	args := m.Called(ctx, userID, feature)
	return args.Error(0)
}

func (m *MockQuotaGuard) Consume(ctx context.Context, userID string, feature domain.Feature) error {
	args := m.Called(ctx, userID, feature)
	return args.Error(0)
}

// --- MockQuestionGenerator ---
type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) Generate(ctx context.Context, session *domain.InterviewSession) ([]domain.GeneratedQuestion, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedQuestion), args.Error(1)
}

func (m *MockQuestionGenerator) GenerateAnswerVariants(ctx context.Context, question *domain.InterviewQuestion, language domain.Language, count int) ([]domain.AnswerVariant, error) {
	args := m.Called(ctx, question, language, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnswerVariant), args.Error(1)
}

// --- MockEnqueuer ---
type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueAnswerFeedback(ctx context.Context, payload domain.AnswerFeedbackPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockEnqueuer) EnqueueSessionFeedback(ctx context.Context, payload domain.SessionFeedbackPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockEnqueuer) EnqueueDocumentAnalysis(ctx context.Context, payload domain.DocumentAnalysisPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// --- MockContextStore ---
type MockContextStore struct {
	mock.Mock
}

func (m *MockContextStore) AddMessage(ctx context.Context, sessionID string, entry domain.ContextEntry) error {
	args := m.Called(ctx, sessionID, entry)
	return args.Error(0)
}

func (m *MockContextStore) Window(ctx context.Context, sessionID string) ([]domain.ContextEntry, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContextEntry), args.Error(1)
}

func (m *MockContextStore) All(ctx context.Context, sessionID string) ([]domain.ContextEntry, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContextEntry), args.Error(1)
}

func (m *MockContextStore) Topics(ctx context.Context, sessionID string) ([]string, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockContextStore) SetContextValue(ctx context.Context, sessionID, key, value string) error {
	args := m.Called(ctx, sessionID, key, value)
	return args.Error(0)
}

func (m *MockContextStore) ContextMap(ctx context.Context, sessionID string) (map[string]string, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockContextStore) Archive(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// --- MockCompletionGateway ---
type MockCompletionGateway struct {
	mock.Mock
}

func (m *MockCompletionGateway) Complete(ctx context.Context, task domain.AITask, prompt string) (string, error) {
	args := m.Called(ctx, task, prompt)
	return args.String(0), args.Error(1)
}

// passthroughTxManager runs the function directly, without a database.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
