package model

import (
	"encoding/json"
	"strings"
)

type SectionType string

const (
	SectionSingleChoice SectionType = "single_choice"
	SectionCloze        SectionType = "cloze"
	SectionReading      SectionType = "reading"
	SectionWriting      SectionType = "writing"
	// SectionFull 表示整套试卷，仅用于答题范围
	SectionFull SectionType = "full"
)

func (s SectionType) IsQuestionSection() bool {
	switch s {
	case SectionSingleChoice, SectionCloze, SectionReading, SectionWriting:
		return true
	}
	return false
}

// IsAttemptScope 答题范围可以是具体题型或整套试卷
func (s SectionType) IsAttemptScope() bool {
	return s == SectionFull || s.IsQuestionSection()
}

// Question 试卷中的一道题
// swagger:model Question
type Question struct {
	UUIDBase
	PaperID       string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_paper_order" json:"paperId"`
	SectionType   SectionType     `gorm:"size:20;not null;index" json:"sectionType"`
	OrderIndex    int             `gorm:"not null;uniqueIndex:idx_paper_order" json:"orderIndex"`
	Content       string          `gorm:"type:text;not null" json:"content"`
	Options       json.RawMessage `gorm:"type:json" json:"options,omitempty"` // JSON: []string
	CorrectAnswer *string         `gorm:"type:text" json:"correctAnswer,omitempty"`
	Analysis      *string         `gorm:"type:text" json:"analysis,omitempty"`
	Metadata      json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionMetadata 是 metadata 中核心关心的字段，其余字段原样保留
type QuestionMetadata struct {
	KnowledgePoints []string `json:"knowledgePoints,omitempty"`
	SourceArticle   string   `json:"sourceArticle,omitempty"`
}

func (q *Question) ParsedMetadata() QuestionMetadata {
	var meta QuestionMetadata
	if len(q.Metadata) == 0 {
		return meta
	}
	_ = json.Unmarshal(q.Metadata, &meta)
	return meta
}

func (q *Question) OptionList() []string {
	var opts []string
	if len(q.Options) == 0 {
		return nil
	}
	_ = json.Unmarshal(q.Options, &opts)
	return opts
}

func (q *Question) Answer() string {
	if q.CorrectAnswer == nil {
		return ""
	}
	return strings.TrimSpace(*q.CorrectAnswer)
}

func (q *Question) AnalysisText() string {
	if q.Analysis == nil {
		return ""
	}
	return *q.Analysis
}
