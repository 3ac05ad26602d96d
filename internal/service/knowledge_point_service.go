package service

import (
	"context"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/util"
)

type KnowledgePointService struct {
	Repo KnowledgePointStore
}

func NewKnowledgePointService(repo KnowledgePointStore) *KnowledgePointService {
	return &KnowledgePointService{Repo: repo}
}

func (s *KnowledgePointService) ListKnowledgePoints(ctx context.Context, category model.GapType) ([]model.KnowledgePoint, error) {
	if category != "" && !category.Valid() {
		return nil, util.ErrInvalidGapType
	}
	points, err := s.Repo.FindAll(ctx, category)
	if err != nil {
		return nil, util.NewPersistenceError("list knowledge points", err)
	}
	return points, nil
}
