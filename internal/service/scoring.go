package service

import (
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/util"
	"strings"
)

// QuestionResult 单题判分结果
type QuestionResult struct {
	QuestionID    string `json:"questionId"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

type ScoreResult struct {
	CorrectCount int              `json:"correctCount"`
	Total        int              `json:"totalQuestions"`
	Score        int              `json:"score"`
	Results      []QuestionResult `json:"results"`
}

// ScoreAnswers 计算答题范围内的得分，未作答视为错误。
// 分数为 100*correct/total 四舍五入（0.5 进位）。
func ScoreAnswers(questions []model.Question, submitted map[string]string) (*ScoreResult, error) {
	total := len(questions)
	if total == 0 {
		return nil, util.ErrNoQuestionsInScope
	}

	result := &ScoreResult{
		Total:   total,
		Results: make([]QuestionResult, 0, total),
	}
	for i := range questions {
		q := &questions[i]
		answer, ok := submitted[q.ID]
		answer = strings.TrimSpace(answer)
		correct := q.Answer()
		isCorrect := ok && correct != "" && answer == correct
		if isCorrect {
			result.CorrectCount++
		}
		result.Results = append(result.Results, QuestionResult{
			QuestionID:    q.ID,
			UserAnswer:    answer,
			CorrectAnswer: correct,
			IsCorrect:     isCorrect,
		})
	}

	result.Score = roundPercent(result.CorrectCount, total)
	return result, nil
}

func roundPercent(correct, total int) int {
	return (200*correct + total) / (2 * total)
}
