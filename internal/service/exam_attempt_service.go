package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/util"
	"exam_coach_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ExamAttemptService struct {
	PaperRepo   PaperStore
	AttemptRepo AttemptStore
}

func NewExamAttemptService(paperRepo PaperStore, attemptRepo AttemptStore) *ExamAttemptService {
	return &ExamAttemptService{PaperRepo: paperRepo, AttemptRepo: attemptRepo}
}

type CreateAttemptRequest struct {
	PaperID     string            `json:"paperId" binding:"required"`
	UserAnswers map[string]string `json:"userAnswers"`
	SectionType model.SectionType `json:"sectionType"`
}

type CreateAttemptResult struct {
	Attempt        *model.ExamAttempt `json:"attempt"`
	CorrectCount   int                `json:"correctCount"`
	TotalQuestions int                `json:"totalQuestions"`
	Results        []QuestionResult   `json:"results"`
}

// CreateAttempt 判分并保存一次答题记录，userID 只能来自登录身份
func (s *ExamAttemptService) CreateAttempt(ctx context.Context, userID uint, req CreateAttemptRequest) (*CreateAttemptResult, error) {
	if userID == 0 {
		return nil, util.ErrUnauthorized
	}
	paperID := strings.TrimSpace(req.PaperID)
	if paperID == "" || req.UserAnswers == nil {
		return nil, util.ErrMissingFields
	}

	section := req.SectionType
	if section == "" {
		section = model.SectionFull
	}
	if !section.IsAttemptScope() {
		return nil, util.ErrInvalidSectionType
	}

	questions, err := s.PaperRepo.FindQuestions(ctx, paperID, section)
	if err != nil {
		return nil, util.NewPersistenceError("load questions", err)
	}

	score, err := ScoreAnswers(questions, req.UserAnswers)
	if err != nil {
		return nil, err
	}

	answers, err := json.Marshal(req.UserAnswers)
	if err != nil {
		return nil, err
	}

	attempt := &model.ExamAttempt{
		UserID:      userID,
		PaperID:     paperID,
		SectionType: section,
		UserAnswers: answers,
		Score:       score.Score,
	}
	if err := s.AttemptRepo.Create(ctx, attempt); err != nil {
		logger.Log.Error("保存答题记录失败", zap.Uint("userID", userID), zap.String("paperID", paperID), zap.Error(err))
		return nil, util.NewPersistenceError("create attempt", err)
	}

	logger.Log.Info("答题记录已保存",
		zap.Uint("userID", userID),
		zap.String("attemptID", attempt.ID),
		zap.Int("score", score.Score),
		zap.Int("correct", score.CorrectCount),
		zap.Int("total", score.Total))

	return &CreateAttemptResult{
		Attempt:        attempt,
		CorrectCount:   score.CorrectCount,
		TotalQuestions: score.Total,
		Results:        score.Results,
	}, nil
}

func (s *ExamAttemptService) GetAttempt(ctx context.Context, userID uint, id string) (*model.ExamAttempt, error) {
	if userID == 0 {
		return nil, util.ErrUnauthorized
	}
	attempt, err := s.AttemptRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, util.NewPersistenceError("find attempt", err)
	}
	return attempt, nil
}

func (s *ExamAttemptService) ListAttempts(ctx context.Context, userID uint, paperID string) ([]model.ExamAttempt, error) {
	if userID == 0 {
		return nil, util.ErrUnauthorized
	}
	attempts, err := s.AttemptRepo.FindByUser(ctx, userID, strings.TrimSpace(paperID))
	if err != nil {
		return nil, util.NewPersistenceError("list attempts", err)
	}
	return attempts, nil
}
