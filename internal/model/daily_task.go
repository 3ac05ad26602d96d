package model

import (
	"encoding/json"
	"time"
)

type TaskType string

const (
	TaskVocabCard    TaskType = "vocab_card"
	TaskGrammarVideo TaskType = "grammar_video"
	TaskExercise     TaskType = "exercise"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskVocabCard, TaskGrammarVideo, TaskExercise:
		return true
	}
	return false
}

// DailyTask 周计划中的一个巩固任务，只能由完成操作修改
// swagger:model DailyTask
type DailyTask struct {
	UUIDBase
	UserID         uint            `gorm:"index:idx_task_user_date;type:bigint unsigned;not null" json:"userId"`
	ScheduledDate  string          `gorm:"index:idx_task_user_date;type:varchar(10);not null" json:"scheduledDate"` // YYYY-MM-DD
	TaskType       TaskType        `gorm:"size:20;not null" json:"taskType"`
	Content        json.RawMessage `gorm:"type:json;not null" json:"content"`
	SourceGapID    *string         `gorm:"type:varchar(36);index" json:"sourceGapId,omitempty"`
	IsCompleted    bool            `gorm:"default:false" json:"isCompleted"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty"`
	CompletionData json.RawMessage `gorm:"type:json" json:"completionData,omitempty"`
}

func (DailyTask) TableName() string {
	return "daily_tasks"
}

// TypedContent 按 TaskType 解析 Content
func (t *DailyTask) TypedContent() (TaskContent, error) {
	return DecodeContent(t.TaskType, t.Content)
}
