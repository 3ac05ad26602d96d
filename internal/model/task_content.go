package model

import (
	"encoding/json"
	"fmt"
)

// TaskContent 任务内容，具体形状由 TaskType 决定
type TaskContent interface {
	TaskType() TaskType
	// WithGapID 返回绑定了来源错因的副本
	WithGapID(gapID string) TaskContent
}

type VocabCardContent struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	GapID      string `json:"gap_id"`
}

func (VocabCardContent) TaskType() TaskType { return TaskVocabCard }

func (c VocabCardContent) WithGapID(gapID string) TaskContent {
	c.GapID = gapID
	return c
}

type PracticeQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

type GrammarVideoContent struct {
	KnowledgePoint    string             `json:"knowledge_point"`
	Explanation       string             `json:"explanation"`
	Examples          []string           `json:"examples"`
	PracticeQuestions []PracticeQuestion `json:"practice_questions"`
	GapID             string             `json:"gap_id"`
}

func (GrammarVideoContent) TaskType() TaskType { return TaskGrammarVideo }

func (c GrammarVideoContent) WithGapID(gapID string) TaskContent {
	if c.Examples == nil {
		c.Examples = []string{}
	}
	if c.PracticeQuestions == nil {
		c.PracticeQuestions = []PracticeQuestion{}
	}
	c.GapID = gapID
	return c
}

type ExerciseContent struct {
	Questions   []PracticeQuestion `json:"questions"`
	Explanation string             `json:"explanation"`
	ReadingTip  string             `json:"reading_tip"`
	GapID       string             `json:"gap_id"`
}

func (ExerciseContent) TaskType() TaskType { return TaskExercise }

func (c ExerciseContent) WithGapID(gapID string) TaskContent {
	if c.Questions == nil {
		c.Questions = []PracticeQuestion{}
	}
	c.GapID = gapID
	return c
}

func EncodeContent(c TaskContent) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("task content is nil")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// DecodeContent 把存储的 JSON 还原成对应的内容类型
func DecodeContent(t TaskType, raw json.RawMessage) (TaskContent, error) {
	switch t {
	case TaskVocabCard:
		var c VocabCardContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case TaskGrammarVideo:
		var c GrammarVideoContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case TaskExercise:
		var c ExerciseContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown task type: %s", t)
	}
}
