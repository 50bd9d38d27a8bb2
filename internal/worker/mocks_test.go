package worker

import (
	"context"

	"mockmate/internal/domain"

	"github.com/stretchr/testify/mock"
)

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

type MockAnswerEvaluator struct {
	mock.Mock
}

func (m *MockAnswerEvaluator) Evaluate(ctx context.Context, question *domain.InterviewQuestion, answer *domain.InterviewAnswer, language domain.Language) (float64, *domain.AnswerFeedback, error) {
	args := m.Called(ctx, question, answer, language)
	var feedback *domain.AnswerFeedback
	if args.Get(1) != nil {
		feedback = args.Get(1).(*domain.AnswerFeedback)
	}
	return args.Get(0).(float64), feedback, args.Error(2)
}

type MockSessionEvaluator struct {
	mock.Mock
}

func (m *MockSessionEvaluator) Evaluate(ctx context.Context, session *domain.InterviewSession, questions []*domain.InterviewQuestion, answers []*domain.InterviewAnswer) (float64, *domain.SessionFeedback, error) {
	args := m.Called(ctx, session, questions, answers)
	var feedback *domain.SessionFeedback
	if args.Get(1) != nil {
		feedback = args.Get(1).(*domain.SessionFeedback)
	}
	return args.Get(0).(float64), feedback, args.Error(2)
}

type MockDocumentAnalyzer struct {
	mock.Mock
}

func (m *MockDocumentAnalyzer) Analyze(ctx context.Context, record *domain.AnalysisRecord) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

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
