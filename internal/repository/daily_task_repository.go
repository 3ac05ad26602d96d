package repository

import (
	"context"
	"encoding/json"
	"exam_coach_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

const taskBatchSize = 100

type DailyTaskRepository struct {
	DB *gorm.DB
}

func NewDailyTaskRepository(db *gorm.DB) *DailyTaskRepository {
	return &DailyTaskRepository{DB: db}
}

// CreateBatch 在一个事务里写入全部任务，任一失败则整体回滚
func (r *DailyTaskRepository) CreateBatch(ctx context.Context, tasks []*model.DailyTask) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(tasks, taskBatchSize).Error
	})
}

func (r *DailyTaskRepository) FindByIDForUser(ctx context.Context, userID uint, id string) (*model.DailyTask, error) {
	var task model.DailyTask
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByUserAndRange 日期为闭区间，格式 YYYY-MM-DD 可以直接按字符串比较
func (r *DailyTaskRepository) FindByUserAndRange(ctx context.Context, userID uint, from, to string) ([]model.DailyTask, error) {
	var tasks []model.DailyTask
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND scheduled_date >= ? AND scheduled_date <= ?", userID, from, to).
		Order("scheduled_date asc, created_at asc").
		Find(&tasks).Error
	return tasks, err
}

// MarkCompleted 只会把未完成的任务置为完成
func (r *DailyTaskRepository) MarkCompleted(ctx context.Context, userID uint, id string, at time.Time, data json.RawMessage) error {
	updates := map[string]interface{}{
		"is_completed": true,
		"completed_at": at,
	}
	if len(data) > 0 {
		updates["completion_data"] = data
	}
	return r.DB.WithContext(ctx).Model(&model.DailyTask{}).
		Where("id = ? AND user_id = ? AND is_completed = ?", id, userID, false).
		Updates(updates).Error
}
