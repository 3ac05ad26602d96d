package model

import "encoding/json"

// ExamAttempt 一次提交评分记录，创建后不可修改
// swagger:model ExamAttempt
type ExamAttempt struct {
	UUIDBase
	UserID      uint            `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	PaperID     string          `gorm:"index;type:varchar(36);not null" json:"paperId"`
	SectionType SectionType     `gorm:"size:20;not null" json:"sectionType"`
	UserAnswers json.RawMessage `gorm:"type:json" json:"userAnswers"` // JSON: map[questionId]answer
	Score       int             `gorm:"not null;default:0" json:"score"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

func (a *ExamAttempt) AnswerMap() map[string]string {
	answers := map[string]string{}
	if len(a.UserAnswers) > 0 {
		_ = json.Unmarshal(a.UserAnswers, &answers)
	}
	return answers
}
