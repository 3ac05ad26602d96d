package repository

import (
	"context"
	"exam_coach_backend/internal/model"

	"gorm.io/gorm"
)

type ExamPaperRepository struct {
	DB *gorm.DB
}

func NewExamPaperRepository(db *gorm.DB) *ExamPaperRepository {
	return &ExamPaperRepository{DB: db}
}

func (r *ExamPaperRepository) FindAll(ctx context.Context) ([]model.ExamPaper, error) {
	var papers []model.ExamPaper
	err := r.DB.WithContext(ctx).Order("year desc, created_at desc").Find(&papers).Error
	return papers, err
}

func (r *ExamPaperRepository) FindByID(ctx context.Context, id string) (*model.ExamPaper, error) {
	var paper model.ExamPaper
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&paper).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

// FindQuestions 按题号返回试卷题目，sectionType 为空或 full 时返回整套
func (r *ExamPaperRepository) FindQuestions(ctx context.Context, paperID string, sectionType model.SectionType) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.WithContext(ctx).Where("paper_id = ?", paperID)
	if sectionType != "" && sectionType != model.SectionFull {
		query = query.Where("section_type = ?", sectionType)
	}
	err := query.Order("order_index asc").Find(&questions).Error
	return questions, err
}

func (r *ExamPaperRepository) FindQuestionByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}
