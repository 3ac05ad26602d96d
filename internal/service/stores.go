package service

import (
	"context"
	"encoding/json"
	"exam_coach_backend/internal/model"
	"time"
)

// 以下接口由 repository 包中的实现满足，服务层只依赖这些窄接口

type PaperStore interface {
	FindAll(ctx context.Context) ([]model.ExamPaper, error)
	FindByID(ctx context.Context, id string) (*model.ExamPaper, error)
	FindQuestions(ctx context.Context, paperID string, sectionType model.SectionType) ([]model.Question, error)
	FindQuestionByID(ctx context.Context, id string) (*model.Question, error)
}

type AttemptStore interface {
	Create(ctx context.Context, attempt *model.ExamAttempt) error
	FindByIDForUser(ctx context.Context, userID uint, id string) (*model.ExamAttempt, error)
	FindByUser(ctx context.Context, userID uint, paperID string) ([]model.ExamAttempt, error)
}

type GapStore interface {
	Create(ctx context.Context, gap *model.LearningGap) error
	FindActiveByUser(ctx context.Context, userID uint) ([]model.LearningGap, error)
	FindByUser(ctx context.Context, userID uint, status model.GapStatus) ([]model.LearningGap, error)
	FindByIDForUser(ctx context.Context, userID uint, id string) (*model.LearningGap, error)
	MarkResolved(ctx context.Context, userID uint, id string, at time.Time) error
}

type TaskStore interface {
	CreateBatch(ctx context.Context, tasks []*model.DailyTask) error
	FindByIDForUser(ctx context.Context, userID uint, id string) (*model.DailyTask, error)
	FindByUserAndRange(ctx context.Context, userID uint, from, to string) ([]model.DailyTask, error)
	MarkCompleted(ctx context.Context, userID uint, id string, at time.Time, data json.RawMessage) error
}

type ActionStore interface {
	Create(ctx context.Context, action *model.UserAction) error
}

type KnowledgePointStore interface {
	FindAll(ctx context.Context, category model.GapType) ([]model.KnowledgePoint, error)
	FindByCodes(ctx context.Context, codes []string) ([]model.KnowledgePoint, error)
}
