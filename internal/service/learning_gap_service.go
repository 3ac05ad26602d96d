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

type LearningGapService struct {
	GapRepo     GapStore
	AttemptRepo AttemptStore
	PaperRepo   PaperStore
	ActionRepo  ActionStore
	now         func() time.Time
}

func NewLearningGapService(gapRepo GapStore, attemptRepo AttemptStore, paperRepo PaperStore, actionRepo ActionStore) *LearningGapService {
	return &LearningGapService{
		GapRepo:     gapRepo,
		AttemptRepo: attemptRepo,
		PaperRepo:   paperRepo,
		ActionRepo:  actionRepo,
		now:         time.Now,
	}
}

type RecordGapRequest struct {
	QuestionID      string        `json:"questionId" binding:"required"`
	AttemptID       string        `json:"attemptId" binding:"required"`
	GapType         model.GapType `json:"gapType" binding:"required"`
	GapDetail       string        `json:"gapDetail"`
	KnowledgePoints []string      `json:"knowledgePoints"`
	UserAnswer      string        `json:"userAnswer"`
	CorrectAnswer   string        `json:"correctAnswer"`
}

// RecordGap 为一道错题记录错因。答题记录必须属于当前用户。
func (s *LearningGapService) RecordGap(ctx context.Context, userID uint, req RecordGapRequest) (*model.LearningGap, error) {
	if userID == 0 {
		return nil, util.ErrUnauthorized
	}
	questionID := strings.TrimSpace(req.QuestionID)
	attemptID := strings.TrimSpace(req.AttemptID)
	if questionID == "" || attemptID == "" {
		return nil, util.ErrMissingFields
	}
	if !req.GapType.Valid() {
		return nil, util.ErrInvalidGapType
	}

	detail := strings.TrimSpace(req.GapDetail)
	if detail == "" {
		if req.GapType != model.GapCareless {
			return nil, util.ErrEmptyGapDetail
		}
		detail = model.CarelessPlaceholder
	}

	attempt, err := s.AttemptRepo.FindByIDForUser(ctx, userID, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, util.NewPersistenceError("find attempt", err)
	}
	question, err := s.PaperRepo.FindQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, util.NewPersistenceError("find question", err)
	}
	// 错因只能记在本次答题的试卷题目上
	if question.PaperID != attempt.PaperID {
		return nil, util.ErrQuestionNotInPaper
	}

	kps := req.KnowledgePoints
	if kps == nil {
		kps = []string{}
	}
	kpJSON, err := json.Marshal(kps)
	if err != nil {
		return nil, err
	}

	gap := &model.LearningGap{
		UserID:          userID,
		QuestionID:      questionID,
		AttemptID:       attemptID,
		GapType:         req.GapType,
		GapDetail:       detail,
		KnowledgePoints: kpJSON,
		Status:          model.GapActive,
	}
	if err := s.GapRepo.Create(ctx, gap); err != nil {
		logger.Log.Error("保存错因失败", zap.Uint("userID", userID), zap.String("questionID", questionID), zap.Error(err))
		return nil, util.NewPersistenceError("create learning gap", err)
	}

	s.recordAction(ctx, &model.UserAction{
		UserID:        userID,
		ActionType:    model.ActionRecordGap,
		QuestionID:    questionID,
		AttemptID:     attemptID,
		GapID:         gap.ID,
		UserAnswer:    req.UserAnswer,
		CorrectAnswer: req.CorrectAnswer,
	})

	return gap, nil
}

// ResolveGap 将错因标记为已掌握，重复调用直接返回当前状态
func (s *LearningGapService) ResolveGap(ctx context.Context, userID uint, gapID string) (*model.LearningGap, error) {
	if userID == 0 {
		return nil, util.ErrUnauthorized
	}
	gap, err := s.findGap(ctx, userID, gapID)
	if err != nil {
		return nil, err
	}
	if gap.Status == model.GapResolved {
		return gap, nil
	}

	now := s.now()
	if err := s.GapRepo.MarkResolved(ctx, userID, gap.ID, now); err != nil {
		return nil, util.NewPersistenceError("resolve learning gap", err)
	}
	gap.Status = model.GapResolved
	gap.ResolvedAt = &now

	s.recordAction(ctx, &model.UserAction{
		UserID:     userID,
		ActionType: model.ActionResolveGap,
		QuestionID: gap.QuestionID,
		AttemptID:  gap.AttemptID,
		GapID:      gap.ID,
	})
	return gap, nil
}

func (s *LearningGapService) ListGaps(ctx context.Context, userID uint, status model.GapStatus) ([]model.LearningGap, error) {
	if userID == 0 {
		return nil, util.ErrUnauthorized
	}
	if status != "" && status != model.GapActive && status != model.GapResolved {
		return nil, util.ErrInvalidGapStatus
	}
	gaps, err := s.GapRepo.FindByUser(ctx, userID, status)
	if err != nil {
		return nil, util.NewPersistenceError("list learning gaps", err)
	}
	return gaps, nil
}

func (s *LearningGapService) findGap(ctx context.Context, userID uint, gapID string) (*model.LearningGap, error) {
	gap, err := s.GapRepo.FindByIDForUser(ctx, userID, gapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGapNotFound
		}
		return nil, util.NewPersistenceError("find learning gap", err)
	}
	return gap, nil
}

// recordAction 行为日志写失败只记录日志，不影响主流程
func (s *LearningGapService) recordAction(ctx context.Context, action *model.UserAction) {
	if s.ActionRepo == nil {
		return
	}
	if err := s.ActionRepo.Create(ctx, action); err != nil {
		logger.Log.Warn("写入用户行为日志失败",
			zap.Uint("userID", action.UserID),
			zap.String("action", string(action.ActionType)),
			zap.Error(err))
	}
}
