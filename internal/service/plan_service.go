package service

import (
	"context"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/util"
	"exam_coach_backend/pkg/logger"
	"exam_coach_backend/pkg/monitoring"
	"exam_coach_backend/pkg/tracing"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	NoGapsMessage         = "暂无需要巩固的薄弱点"
	defaultMaxConcurrency = 4
)

type PlanService struct {
	GapRepo        GapStore
	TaskRepo       TaskStore
	Generator      *ContentGenerator
	maxConcurrency int
	loc            *time.Location
	now            func() time.Time
}

func NewPlanService(gapRepo GapStore, taskRepo TaskStore, generator *ContentGenerator, maxConcurrency int, loc *time.Location) *PlanService {
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}
	if loc == nil {
		loc = time.Local
	}
	return &PlanService{
		GapRepo:        gapRepo,
		TaskRepo:       taskRepo,
		Generator:      generator,
		maxConcurrency: maxConcurrency,
		loc:            loc,
		now:            time.Now,
	}
}

type PlanResult struct {
	Message   string             `json:"message"`
	Tasks     []*model.DailyTask `json:"tasks"`
	AIEnabled bool               `json:"aiEnabled"`
}

// GenerateWeeklyPlan 根据当前用户未解决的错因生成本周任务。
// 重复调用会再次生成同样排期的任务，不做去重。
func (s *PlanService) GenerateWeeklyPlan(ctx context.Context, userID uint) (*PlanResult, error) {
	if userID == 0 {
		return nil, util.ErrUnauthorized
	}

	ctx, span := tracing.Tracer.Start(ctx, "PlanService.GenerateWeeklyPlan")
	defer span.End()

	aiEnabled := s.Generator.AIAvailable()

	gaps, err := s.GapRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, util.NewPersistenceError("load active gaps", err)
	}
	if len(gaps) == 0 {
		return &PlanResult{Message: NoGapsMessage, Tasks: []*model.DailyTask{}, AIEnabled: aiEnabled}, nil
	}

	weekdays := util.WeekdayDates(s.now().In(s.loc))
	scheduled := ScheduleGaps(gaps, weekdays)
	span.SetAttributes(
		attribute.Int("plan.gaps", len(gaps)),
		attribute.Int("plan.tasks", len(scheduled)),
		attribute.Bool("plan.ai_enabled", aiEnabled),
	)

	contents := s.generateContents(ctx, scheduled)

	tasks := make([]*model.DailyTask, 0, len(scheduled))
	for i, item := range scheduled {
		encoded, err := model.EncodeContent(contents[i])
		if err != nil {
			return nil, err
		}
		gapID := item.Gap.ID
		tasks = append(tasks, &model.DailyTask{
			UUIDBase:      model.UUIDBase{ID: model.GenerateUUID()},
			UserID:        userID,
			ScheduledDate: item.Date,
			TaskType:      item.TaskType,
			Content:       encoded,
			SourceGapID:   &gapID,
		})
	}

	if len(tasks) > 0 {
		if err := s.TaskRepo.CreateBatch(ctx, tasks); err != nil {
			span.SetStatus(codes.Error, err.Error())
			logger.Log.Error("批量写入周计划任务失败", zap.Uint("userID", userID), zap.Int("tasks", len(tasks)), zap.Error(err))
			return nil, util.NewPersistenceError("create daily tasks", err)
		}
		monitoring.PlanTasksCreated.Add(float64(len(tasks)))
	}

	logger.Log.Info("周计划已生成",
		zap.Uint("userID", userID),
		zap.Int("gaps", len(gaps)),
		zap.Int("tasks", len(tasks)),
		zap.Bool("aiEnabled", aiEnabled))

	return &PlanResult{
		Message:   planMessage(len(tasks), aiEnabled),
		Tasks:     tasks,
		AIEnabled: aiEnabled,
	}, nil
}

// generateContents 并发生成内容，每个 goroutine 只写自己的下标
func (s *PlanService) generateContents(ctx context.Context, scheduled []ScheduledGap) []model.TaskContent {
	contents := make([]model.TaskContent, len(scheduled))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i := range scheduled {
		i := i
		g.Go(func() error {
			contents[i] = s.Generator.Generate(ctx, scheduled[i].Gap, scheduled[i].TaskType)
			return nil
		})
	}
	_ = g.Wait()
	return contents
}

func planMessage(count int, aiEnabled bool) string {
	if aiEnabled {
		return fmt.Sprintf("已为本周生成 %d 个巩固任务（AI 增强已启用）", count)
	}
	return fmt.Sprintf("已为本周生成 %d 个巩固任务（AI 未启用，使用规则模板）", count)
}
