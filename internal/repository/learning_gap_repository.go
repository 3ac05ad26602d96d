package repository

import (
	"context"
	"exam_coach_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type LearningGapRepository struct {
	DB *gorm.DB
}

func NewLearningGapRepository(db *gorm.DB) *LearningGapRepository {
	return &LearningGapRepository{DB: db}
}

func (r *LearningGapRepository) Create(ctx context.Context, gap *model.LearningGap) error {
	return r.DB.WithContext(ctx).Create(gap).Error
}

// FindActiveByUser 按创建时间从早到晚返回未解决的错因，并带出题目
func (r *LearningGapRepository) FindActiveByUser(ctx context.Context, userID uint) ([]model.LearningGap, error) {
	return r.FindByUser(ctx, userID, model.GapActive)
}

func (r *LearningGapRepository) FindByUser(ctx context.Context, userID uint, status model.GapStatus) ([]model.LearningGap, error) {
	var gaps []model.LearningGap
	query := r.DB.WithContext(ctx).Preload("Question").Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at asc, id asc").Find(&gaps).Error
	return gaps, err
}

func (r *LearningGapRepository) FindByIDForUser(ctx context.Context, userID uint, id string) (*model.LearningGap, error) {
	var gap model.LearningGap
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&gap).Error
	if err != nil {
		return nil, err
	}
	return &gap, nil
}

// MarkResolved 只更新仍处于 active 的记录
func (r *LearningGapRepository) MarkResolved(ctx context.Context, userID uint, id string, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&model.LearningGap{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, model.GapActive).
		Updates(map[string]interface{}{
			"status":      model.GapResolved,
			"resolved_at": at,
		}).Error
}
