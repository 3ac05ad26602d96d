package repository

import (
	"context"
	"exam_coach_backend/internal/model"

	"gorm.io/gorm"
)

type UserActionRepository struct {
	DB *gorm.DB
}

func NewUserActionRepository(db *gorm.DB) *UserActionRepository {
	return &UserActionRepository{DB: db}
}

func (r *UserActionRepository) Create(ctx context.Context, action *model.UserAction) error {
	return r.DB.WithContext(ctx).Create(action).Error
}
