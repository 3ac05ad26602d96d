package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/util"
	"exam_coach_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DailyTaskService struct {
	TaskRepo   TaskStore
	ActionRepo ActionStore
	loc        *time.Location
	now        func() time.Time
}

func NewDailyTaskService(taskRepo TaskStore, actionRepo ActionStore, loc *time.Location) *DailyTaskService {
	if loc == nil {
		loc = time.Local
	}
	return &DailyTaskService{
		TaskRepo:   taskRepo,
		ActionRepo: actionRepo,
		loc:        loc,
		now:        time.Now,
	}
}

// ListTasks 返回 [from, to] 范围内的任务，未指定时为本周一到周日
func (s *DailyTaskService) ListTasks(ctx context.Context, userID uint, from, to string) ([]model.DailyTask, error) {
	if userID == 0 {
		return nil, util.ErrUnauthorized
	}

	monday := util.WeekMonday(s.now().In(s.loc))
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" {
		from = monday.Format(util.DateFormat)
	}
	if to == "" {
		to = monday.AddDate(0, 0, 6).Format(util.DateFormat)
	}

	fromDate, err := util.ParseDate(from, s.loc)
	if err != nil {
		return nil, util.ErrInvalidDateRange
	}
	toDate, err := util.ParseDate(to, s.loc)
	if err != nil || toDate.Before(fromDate) {
		return nil, util.ErrInvalidDateRange
	}

	tasks, err := s.TaskRepo.FindByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, util.NewPersistenceError("list daily tasks", err)
	}
	return tasks, nil
}

func (s *DailyTaskService) GetTask(ctx context.Context, userID uint, id string) (*model.DailyTask, error) {
	if userID == 0 {
		return nil, util.ErrUnauthorized
	}
	task, err := s.TaskRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTaskNotFound
		}
		return nil, util.NewPersistenceError("find daily task", err)
	}
	return task, nil
}

// CompleteTask 完成任务只能从未完成变为完成，重复完成直接返回
func (s *DailyTaskService) CompleteTask(ctx context.Context, userID uint, id string, data json.RawMessage) (*model.DailyTask, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted {
		return task, nil
	}

	now := s.now()
	if err := s.TaskRepo.MarkCompleted(ctx, userID, task.ID, now, data); err != nil {
		return nil, util.NewPersistenceError("complete daily task", err)
	}
	task.IsCompleted = true
	task.CompletedAt = &now
	if len(data) > 0 {
		task.CompletionData = data
	}

	action := &model.UserAction{
		UserID:     userID,
		ActionType: model.ActionCompleteTask,
		TaskID:     task.ID,
		Payload:    data,
	}
	if task.SourceGapID != nil {
		action.GapID = *task.SourceGapID
	}
	if s.ActionRepo != nil {
		if err := s.ActionRepo.Create(ctx, action); err != nil {
			logger.Log.Warn("写入用户行为日志失败", zap.Uint("userID", userID), zap.String("taskID", task.ID), zap.Error(err))
		}
	}
	return task, nil
}
