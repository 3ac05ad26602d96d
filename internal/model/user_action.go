package model

import "encoding/json"

type ActionType string

const (
	ActionRecordGap    ActionType = "record_gap"
	ActionResolveGap   ActionType = "resolve_gap"
	ActionCompleteTask ActionType = "complete_task"
)

// UserAction 只追加的行为日志，核心流程从不读取
type UserAction struct {
	UUIDBase
	UserID        uint            `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	ActionType    ActionType      `gorm:"size:30;not null" json:"actionType"`
	QuestionID    string          `gorm:"type:varchar(36)" json:"questionId,omitempty"`
	AttemptID     string          `gorm:"type:varchar(36)" json:"attemptId,omitempty"`
	GapID         string          `gorm:"type:varchar(36)" json:"gapId,omitempty"`
	TaskID        string          `gorm:"type:varchar(36)" json:"taskId,omitempty"`
	UserAnswer    string          `gorm:"type:text" json:"userAnswer,omitempty"`
	CorrectAnswer string          `gorm:"type:text" json:"correctAnswer,omitempty"`
	Payload       json.RawMessage `gorm:"type:json" json:"payload,omitempty"`
}

func (UserAction) TableName() string {
	return "user_actions"
}
