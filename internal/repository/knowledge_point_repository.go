package repository

import (
	"context"
	"exam_coach_backend/internal/model"

	"gorm.io/gorm"
)

type KnowledgePointRepository struct {
	DB *gorm.DB
}

func NewKnowledgePointRepository(db *gorm.DB) *KnowledgePointRepository {
	return &KnowledgePointRepository{DB: db}
}

func (r *KnowledgePointRepository) FindAll(ctx context.Context, category model.GapType) ([]model.KnowledgePoint, error) {
	var points []model.KnowledgePoint
	query := r.DB.WithContext(ctx).Where("enabled = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("`order` asc").Find(&points).Error
	return points, err
}

func (r *KnowledgePointRepository) FindByCodes(ctx context.Context, codes []string) ([]model.KnowledgePoint, error) {
	var points []model.KnowledgePoint
	if len(codes) == 0 {
		return points, nil
	}
	err := r.DB.WithContext(ctx).Where("code IN ?", codes).Find(&points).Error
	return points, err
}
