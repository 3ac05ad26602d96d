package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestExamPaperService_ListQuestionsHidesAnswerKey(t *testing.T) {
	repo := new(MockPaperStore)
	repo.On("FindByID", mock.Anything, "paper-1").Return(&model.ExamPaper{UUIDBase: model.UUIDBase{ID: "paper-1"}}, nil)
	repo.On("FindQuestions", mock.Anything, "paper-1", model.SectionCloze).Return([]model.Question{
		{
			UUIDBase:      model.UUIDBase{ID: "q1"},
			PaperID:       "paper-1",
			SectionType:   model.SectionCloze,
			OrderIndex:    1,
			Content:       "I ___ here since 2010.",
			Options:       json.RawMessage(`["A. live","B. have lived"]`),
			CorrectAnswer: strPtr("B"),
			Analysis:      strPtr("since 引导完成时"),
		},
	}, nil)

	s := NewExamPaperService(repo)
	questions, err := s.ListQuestions(context.Background(), "paper-1", model.SectionCloze)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, 1, questions[0].OrderIndex)

	raw, err := json.Marshal(questions)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correctAnswer")
	assert.NotContains(t, string(raw), "since 引导完成时")
}

func TestExamPaperService_ListQuestionsErrors(t *testing.T) {
	repo := new(MockPaperStore)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByID", mock.Anything, "broken").Return(nil, errors.New("too many connections"))
	s := NewExamPaperService(repo)

	_, err := s.ListQuestions(context.Background(), "paper-1", "essay")
	assert.ErrorIs(t, err, util.ErrInvalidSectionType)

	_, err = s.ListQuestions(context.Background(), "missing", "")
	assert.ErrorIs(t, err, util.ErrPaperNotFound)

	_, err = s.ListQuestions(context.Background(), "broken", "")
	var perr *util.PersistenceError
	assert.ErrorAs(t, err, &perr)
}

func TestKnowledgePointService_List(t *testing.T) {
	repo := new(MockKnowledgePointStore)
	repo.On("FindAll", mock.Anything, model.GapGrammar).Return([]model.KnowledgePoint{
		{Code: "grammar_passive", Name: "被动语态", Category: model.GapGrammar},
	}, nil)
	s := NewKnowledgePointService(repo)

	points, err := s.ListKnowledgePoints(context.Background(), model.GapGrammar)
	require.NoError(t, err)
	assert.Len(t, points, 1)

	_, err = s.ListKnowledgePoints(context.Background(), "spelling")
	assert.ErrorIs(t, err, util.ErrInvalidGapType)
	repo.AssertNumberOfCalls(t, "FindAll", 1)
}
