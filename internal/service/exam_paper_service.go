package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/util"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// QuestionDTO 答题时下发的题目，不含答案和解析
type QuestionDTO struct {
	ID          string            `json:"id"`
	PaperID     string            `json:"paperId"`
	SectionType model.SectionType `json:"sectionType"`
	OrderIndex  int               `json:"orderIndex"`
	Content     string            `json:"content"`
	Options     json.RawMessage   `json:"options,omitempty"`
	Metadata    json.RawMessage   `json:"metadata,omitempty"`
}

type ExamPaperService struct {
	Repo PaperStore
}

func NewExamPaperService(repo PaperStore) *ExamPaperService {
	return &ExamPaperService{Repo: repo}
}

func (s *ExamPaperService) ListPapers(ctx context.Context) ([]model.ExamPaper, error) {
	papers, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, util.NewPersistenceError("list exam papers", err)
	}
	return papers, nil
}

func (s *ExamPaperService) ListQuestions(ctx context.Context, paperID string, sectionType model.SectionType) ([]QuestionDTO, error) {
	if sectionType != "" && !sectionType.IsAttemptScope() {
		return nil, util.ErrInvalidSectionType
	}
	if _, err := s.Repo.FindByID(ctx, paperID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPaperNotFound
		}
		return nil, util.NewPersistenceError("find exam paper", err)
	}

	questions, err := s.Repo.FindQuestions(ctx, paperID, sectionType)
	if err != nil {
		return nil, util.NewPersistenceError("list questions", err)
	}

	dtos := make([]QuestionDTO, 0, len(questions))
	if err := copier.Copy(&dtos, &questions); err != nil {
		return nil, err
	}
	return dtos, nil
}
