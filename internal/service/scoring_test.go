package service

import (
	"errors"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/util"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeQuestions(answers ...string) []model.Question {
	qs := make([]model.Question, len(answers))
	for i, a := range answers {
		qs[i] = model.Question{
			UUIDBase:      model.UUIDBase{ID: fmt.Sprintf("q%d", i+1)},
			SectionType:   model.SectionSingleChoice,
			OrderIndex:    i + 1,
			CorrectAnswer: strPtr(a),
		}
	}
	return qs
}

func TestScoreAnswers(t *testing.T) {
	tests := []struct {
		name        string
		answers     []string
		submitted   map[string]string
		wantCorrect int
		wantScore   int
	}{
		{"all correct", []string{"A", "B", "C"}, map[string]string{"q1": "A", "q2": "B", "q3": "C"}, 3, 100},
		{"two of three", []string{"A", "B", "C"}, map[string]string{"q1": "A", "q2": "X", "q3": "C"}, 2, 67},
		{"one of three", []string{"A", "B", "C"}, map[string]string{"q1": "A"}, 1, 33},
		{"half", []string{"A", "B", "C", "D"}, map[string]string{"q1": "A", "q2": "B"}, 2, 50},
		{"none answered", []string{"A", "B"}, map[string]string{}, 0, 0},
		{"one of eight rounds half up", []string{"A", "A", "A", "A", "A", "A", "A", "A"}, map[string]string{"q1": "A"}, 1, 13},
		{"padding trimmed", []string{"A"}, map[string]string{"q1": " A \n"}, 1, 100},
		{"case sensitive", []string{"A"}, map[string]string{"q1": "a"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ScoreAnswers(makeQuestions(tt.answers...), tt.submitted)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCorrect, res.CorrectCount)
			assert.Equal(t, len(tt.answers), res.Total)
			assert.Equal(t, tt.wantScore, res.Score)
			assert.LessOrEqual(t, res.CorrectCount, res.Total)
			assert.Len(t, res.Results, len(tt.answers))
		})
	}
}

func TestScoreAnswers_EmptyScope(t *testing.T) {
	res, err := ScoreAnswers(nil, map[string]string{"q1": "A"})
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, util.ErrNoQuestionsInScope))
	assert.True(t, errors.Is(err, util.ErrValidation))
}

func TestScoreAnswers_UngradedQuestionNeverCorrect(t *testing.T) {
	qs := makeQuestions("A")
	qs = append(qs, model.Question{UUIDBase: model.UUIDBase{ID: "essay"}, SectionType: model.SectionWriting})

	res, err := ScoreAnswers(qs, map[string]string{"q1": "A", "essay": ""})
	require.NoError(t, err)
	assert.Equal(t, 1, res.CorrectCount)
	assert.Equal(t, 50, res.Score)
	assert.False(t, res.Results[1].IsCorrect)
}

func TestRoundPercentMatchesExactDivision(t *testing.T) {
	for total := 1; total <= 20; total++ {
		for correct := 0; correct <= total; correct++ {
			if (100*correct)%total == 0 {
				assert.Equal(t, 100*correct/total, roundPercent(correct, total), "%d/%d", correct, total)
			}
		}
	}
}
