package service

import (
	"context"
	"encoding/json"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDailyTaskService(tasks *MockTaskStore, actions *MockActionStore) *DailyTaskService {
	s := NewDailyTaskService(tasks, actions, time.UTC)
	s.now = fixedNow
	return s
}

func TestListTasks_DefaultsToCurrentWeek(t *testing.T) {
	tasks := new(MockTaskStore)
	tasks.On("FindByUserAndRange", mock.Anything, uint(1), "2024-06-10", "2024-06-16").Return([]model.DailyTask{}, nil)

	got, err := newTestDailyTaskService(tasks, nil).ListTasks(context.Background(), 1, "", "")
	require.NoError(t, err)
	assert.Empty(t, got)
	tasks.AssertExpectations(t)
}

func TestListTasks_InvalidRange(t *testing.T) {
	s := newTestDailyTaskService(new(MockTaskStore), nil)

	_, err := s.ListTasks(context.Background(), 1, "2024-06-14", "2024-06-10")
	assert.ErrorIs(t, err, util.ErrInvalidDateRange)

	_, err = s.ListTasks(context.Background(), 1, "06/10/2024", "")
	assert.ErrorIs(t, err, util.ErrInvalidDateRange)
}

func TestCompleteTask_Idempotent(t *testing.T) {
	tasks := new(MockTaskStore)
	actions := new(MockActionStore)
	gapID := "gap-1"
	task := &model.DailyTask{UUIDBase: model.UUIDBase{ID: "t1"}, UserID: 1, SourceGapID: &gapID}
	data := json.RawMessage(`{"known":true}`)

	tasks.On("FindByIDForUser", mock.Anything, uint(1), "t1").Return(task, nil).Once()
	tasks.On("MarkCompleted", mock.Anything, uint(1), "t1", fixedNow(), data).Return(nil).Once()
	actions.On("Create", mock.Anything, mock.MatchedBy(func(a *model.UserAction) bool {
		return a.ActionType == model.ActionCompleteTask && a.TaskID == "t1" && a.GapID == "gap-1"
	})).Return(nil).Once()

	s := newTestDailyTaskService(tasks, actions)
	done, err := s.CompleteTask(context.Background(), 1, "t1", data)
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)
	require.NotNil(t, done.CompletedAt)

	// 第二次读取到已完成的任务，直接返回
	completedAt := *done.CompletedAt
	tasks.On("FindByIDForUser", mock.Anything, uint(1), "t1").
		Return(&model.DailyTask{UUIDBase: model.UUIDBase{ID: "t1"}, UserID: 1, IsCompleted: true, CompletedAt: &completedAt}, nil).Once()

	again, err := s.CompleteTask(context.Background(), 1, "t1", nil)
	require.NoError(t, err)
	assert.True(t, again.IsCompleted)
	assert.Equal(t, completedAt, *again.CompletedAt)

	tasks.AssertNumberOfCalls(t, "MarkCompleted", 1)
	actions.AssertNumberOfCalls(t, "Create", 1)
}

func TestCompleteTask_OtherUsersTask(t *testing.T) {
	tasks := new(MockTaskStore)
	tasks.On("FindByIDForUser", mock.Anything, uint(2), "t1").Return(nil, gorm.ErrRecordNotFound)

	_, err := newTestDailyTaskService(tasks, nil).CompleteTask(context.Background(), 2, "t1", nil)
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
	tasks.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
