package repository

import (
	"context"
	"exam_coach_backend/internal/model"

	"gorm.io/gorm"
)

type ExamAttemptRepository struct {
	DB *gorm.DB
}

func NewExamAttemptRepository(db *gorm.DB) *ExamAttemptRepository {
	return &ExamAttemptRepository{DB: db}
}

func (r *ExamAttemptRepository) Create(ctx context.Context, attempt *model.ExamAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

// FindByIDForUser 只返回属于该用户的记录
func (r *ExamAttemptRepository) FindByIDForUser(ctx context.Context, userID uint, id string) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *ExamAttemptRepository) FindByUser(ctx context.Context, userID uint, paperID string) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if paperID != "" {
		query = query.Where("paper_id = ?", paperID)
	}
	err := query.Order("created_at desc").Find(&attempts).Error
	return attempts, err
}
