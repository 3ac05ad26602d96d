package service

import (
	"context"
	"errors"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPlanService(gaps *MockGapStore, tasks *MockTaskStore, suggester ContentSuggester) *PlanService {
	s := NewPlanService(gaps, tasks, NewContentGenerator(suggester), 2, time.UTC)
	s.now = fixedNow
	return s
}

func TestGenerateWeeklyPlan_Unauthorized(t *testing.T) {
	s := newTestPlanService(new(MockGapStore), new(MockTaskStore), nil)
	_, err := s.GenerateWeeklyPlan(context.Background(), 0)
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}

func TestGenerateWeeklyPlan_NoGapsNoWrite(t *testing.T) {
	gaps := new(MockGapStore)
	tasks := new(MockTaskStore)
	gaps.On("FindActiveByUser", mock.Anything, uint(7)).Return([]model.LearningGap{}, nil)

	res, err := newTestPlanService(gaps, tasks, nil).GenerateWeeklyPlan(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, NoGapsMessage, res.Message)
	assert.NotNil(t, res.Tasks)
	assert.Empty(t, res.Tasks)
	tasks.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestGenerateWeeklyPlan_FallbackCompleteness(t *testing.T) {
	gaps := new(MockGapStore)
	tasks := new(MockTaskStore)
	gaps.On("FindActiveByUser", mock.Anything, uint(1)).Return([]model.LearningGap{
		gap("v1", model.GapVocab, "abandon"),
		gap("v2", model.GapVocab, "acquire"),
		gap("g1", model.GapGrammar, "被动语态"),
		gap("l1", model.GapLogic, "转折"),
		gap("c1", model.GapCareless, model.CarelessPlaceholder),
	}, nil)
	tasks.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	// 建议方始终返回空内容
	suggester := new(MockContentSuggester)
	suggester.On("Available").Return(true)
	suggester.On("SuggestContent", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	res, err := newTestPlanService(gaps, tasks, suggester).GenerateWeeklyPlan(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, res.Tasks, 4)
	assert.True(t, res.AIEnabled)
	assert.Contains(t, res.Message, "4")

	dates := map[string]string{}
	for _, task := range res.Tasks {
		require.NotNil(t, task.SourceGapID)
		assert.Equal(t, uint(1), task.UserID)
		assert.NotEmpty(t, task.ID)
		assert.False(t, task.IsCompleted)

		content, err := task.TypedContent()
		require.NoError(t, err, "task %s", *task.SourceGapID)
		assert.Equal(t, task.TaskType, content.TaskType())

		switch c := content.(type) {
		case model.VocabCardContent:
			assert.Equal(t, *task.SourceGapID, c.GapID)
		case model.GrammarVideoContent:
			assert.Equal(t, *task.SourceGapID, c.GapID)
		case model.ExerciseContent:
			assert.Equal(t, *task.SourceGapID, c.GapID)
		}
		dates[*task.SourceGapID] = task.ScheduledDate
	}
	assert.Equal(t, map[string]string{
		"v1": "2024-06-10",
		"v2": "2024-06-12",
		"g1": "2024-06-11",
		"l1": "2024-06-14",
	}, dates)

	tasks.AssertNumberOfCalls(t, "CreateBatch", 1)
}

func TestGenerateWeeklyPlan_AIContentKeepsRealGapID(t *testing.T) {
	gaps := new(MockGapStore)
	tasks := new(MockTaskStore)
	gaps.On("FindActiveByUser", mock.Anything, uint(1)).Return([]model.LearningGap{
		gap("g1", model.GapGrammar, "被动语态"),
	}, nil)
	tasks.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	suggester := new(MockContentSuggester)
	suggester.On("Available").Return(true)
	suggester.On("SuggestContent", mock.Anything, mock.MatchedBy(func(gc GapContext) bool { return gc.GapID == "g1" }), model.TaskGrammarVideo).
		Return(model.GrammarVideoContent{KnowledgePoint: "被动语态", Explanation: "be + done", GapID: "made-up"}, nil)

	res, err := newTestPlanService(gaps, tasks, suggester).GenerateWeeklyPlan(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)

	content, err := res.Tasks[0].TypedContent()
	require.NoError(t, err)
	video := content.(model.GrammarVideoContent)
	assert.Equal(t, "be + done", video.Explanation)
	assert.Equal(t, "g1", video.GapID)
}

func TestGenerateWeeklyPlan_BatchFailure(t *testing.T) {
	gaps := new(MockGapStore)
	tasks := new(MockTaskStore)
	gaps.On("FindActiveByUser", mock.Anything, uint(1)).Return([]model.LearningGap{
		gap("v1", model.GapVocab, "abandon"),
	}, nil)
	tasks.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("deadlock found"))

	res, err := newTestPlanService(gaps, tasks, nil).GenerateWeeklyPlan(context.Background(), 1)
	assert.Nil(t, res)

	var perr *util.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "deadlock found")
	gaps.AssertNotCalled(t, "MarkResolved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateWeeklyPlan_GapFetchFailure(t *testing.T) {
	gaps := new(MockGapStore)
	gaps.On("FindActiveByUser", mock.Anything, uint(1)).Return(nil, errors.New("connection refused"))

	_, err := newTestPlanService(gaps, new(MockTaskStore), nil).GenerateWeeklyPlan(context.Background(), 1)
	var perr *util.PersistenceError
	assert.ErrorAs(t, err, &perr)
}

// 重复生成会产生新的一批任务，排期相同但 ID 不同
func TestGenerateWeeklyPlan_RerunCreatesDuplicates(t *testing.T) {
	gaps := new(MockGapStore)
	tasks := new(MockTaskStore)
	gaps.On("FindActiveByUser", mock.Anything, uint(1)).Return([]model.LearningGap{
		gap("v1", model.GapVocab, "abandon"),
		gap("l1", model.GapLogic, "转折"),
	}, nil)
	tasks.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	s := newTestPlanService(gaps, tasks, nil)
	first, err := s.GenerateWeeklyPlan(context.Background(), 1)
	require.NoError(t, err)
	second, err := s.GenerateWeeklyPlan(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, first.Tasks, 2)
	require.Len(t, second.Tasks, 2)
	for i := range first.Tasks {
		assert.Equal(t, first.Tasks[i].ScheduledDate, second.Tasks[i].ScheduledDate)
		assert.Equal(t, *first.Tasks[i].SourceGapID, *second.Tasks[i].SourceGapID)
		assert.NotEqual(t, first.Tasks[i].ID, second.Tasks[i].ID)
	}
	tasks.AssertNumberOfCalls(t, "CreateBatch", 2)
	assert.False(t, first.AIEnabled)
	assert.Contains(t, first.Message, "AI 未启用")
}

func TestGenerateWeeklyPlan_OnlyCarelessWritesNothing(t *testing.T) {
	gaps := new(MockGapStore)
	tasks := new(MockTaskStore)
	gaps.On("FindActiveByUser", mock.Anything, uint(1)).Return([]model.LearningGap{
		gap("c1", model.GapCareless, model.CarelessPlaceholder),
	}, nil)

	res, err := newTestPlanService(gaps, tasks, nil).GenerateWeeklyPlan(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, res.Tasks)
	tasks.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}
