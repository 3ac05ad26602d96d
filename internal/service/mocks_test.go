package service

import (
	"context"
	"encoding/json"
	"exam_coach_backend/internal/model"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockPaperStore struct {
	mock.Mock
}

func (m *MockPaperStore) FindAll(ctx context.Context) ([]model.ExamPaper, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExamPaper), args.Error(1)
}

func (m *MockPaperStore) FindByID(ctx context.Context, id string) (*model.ExamPaper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExamPaper), args.Error(1)
}

func (m *MockPaperStore) FindQuestions(ctx context.Context, paperID string, sectionType model.SectionType) ([]model.Question, error) {
	args := m.Called(ctx, paperID, sectionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *MockPaperStore) FindQuestionByID(ctx context.Context, id string) (*model.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

type MockAttemptStore struct {
	mock.Mock
}

func (m *MockAttemptStore) Create(ctx context.Context, attempt *model.ExamAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptStore) FindByIDForUser(ctx context.Context, userID uint, id string) (*model.ExamAttempt, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExamAttempt), args.Error(1)
}

func (m *MockAttemptStore) FindByUser(ctx context.Context, userID uint, paperID string) ([]model.ExamAttempt, error) {
	args := m.Called(ctx, userID, paperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExamAttempt), args.Error(1)
}

type MockGapStore struct {
	mock.Mock
}

func (m *MockGapStore) Create(ctx context.Context, gap *model.LearningGap) error {
	args := m.Called(ctx, gap)
	return args.Error(0)
}

func (m *MockGapStore) FindActiveByUser(ctx context.Context, userID uint) ([]model.LearningGap, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LearningGap), args.Error(1)
}

func (m *MockGapStore) FindByUser(ctx context.Context, userID uint, status model.GapStatus) ([]model.LearningGap, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LearningGap), args.Error(1)
}

func (m *MockGapStore) FindByIDForUser(ctx context.Context, userID uint, id string) (*model.LearningGap, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LearningGap), args.Error(1)
}

func (m *MockGapStore) MarkResolved(ctx context.Context, userID uint, id string, at time.Time) error {
	args := m.Called(ctx, userID, id, at)
	return args.Error(0)
}

type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) CreateBatch(ctx context.Context, tasks []*model.DailyTask) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockTaskStore) FindByIDForUser(ctx context.Context, userID uint, id string) (*model.DailyTask, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailyTask), args.Error(1)
}

func (m *MockTaskStore) FindByUserAndRange(ctx context.Context, userID uint, from, to string) ([]model.DailyTask, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailyTask), args.Error(1)
}

func (m *MockTaskStore) MarkCompleted(ctx context.Context, userID uint, id string, at time.Time, data json.RawMessage) error {
	args := m.Called(ctx, userID, id, at, data)
	return args.Error(0)
}

type MockActionStore struct {
	mock.Mock
}

func (m *MockActionStore) Create(ctx context.Context, action *model.UserAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type MockKnowledgePointStore struct {
	mock.Mock
}

func (m *MockKnowledgePointStore) FindAll(ctx context.Context, category model.GapType) ([]model.KnowledgePoint, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.KnowledgePoint), args.Error(1)
}

func (m *MockKnowledgePointStore) FindByCodes(ctx context.Context, codes []string) ([]model.KnowledgePoint, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.KnowledgePoint), args.Error(1)
}

type MockContentSuggester struct {
	mock.Mock
}

func (m *MockContentSuggester) SuggestContent(ctx context.Context, gc GapContext, taskType model.TaskType) (model.TaskContent, error) {
	args := m.Called(ctx, gc, taskType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.TaskContent), args.Error(1)
}

func (m *MockContentSuggester) Available() bool {
	return m.Called().Bool(0)
}

type MockOptionSuggester struct {
	mock.Mock
}

func (m *MockOptionSuggester) SuggestErrorOptions(ctx context.Context, q *model.Question, gapType model.GapType) ([]string, error) {
	args := m.Called(ctx, q, gapType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOptionSuggester) Available() bool {
	return m.Called().Bool(0)
}

type MockLLMProvider struct {
	mock.Mock
}

func (m *MockLLMProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLMProvider) Name() string { return "mock" }

func strPtr(s string) *string { return &s }

// fixedNow 2024-06-12 是周三
func fixedNow() time.Time {
	return time.Date(2024, 6, 12, 10, 30, 0, 0, time.UTC)
}
