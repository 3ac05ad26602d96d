package model

import (
	"encoding/json"
	"time"
)

type GapType string

const (
	GapVocab    GapType = "vocab"
	GapGrammar  GapType = "grammar"
	GapLogic    GapType = "logic"
	GapCareless GapType = "careless"
)

func (t GapType) Valid() bool {
	switch t {
	case GapVocab, GapGrammar, GapLogic, GapCareless:
		return true
	}
	return false
}

type GapStatus string

const (
	GapActive   GapStatus = "active"
	GapResolved GapStatus = "resolved"
)

// CarelessPlaceholder 粗心类错因未填写详情时的默认文案
const CarelessPlaceholder = "粗心大意"

// LearningGap 一道错题的错因归因
// swagger:model LearningGap
type LearningGap struct {
	UUIDBase
	UserID          uint            `gorm:"index:idx_gap_user_status;type:bigint unsigned;not null" json:"userId"`
	QuestionID      string          `gorm:"index;type:varchar(36);not null" json:"questionId"`
	AttemptID       string          `gorm:"index;type:varchar(36);not null" json:"attemptId"`
	GapType         GapType         `gorm:"size:20;not null" json:"gapType"`
	GapDetail       string          `gorm:"type:text" json:"gapDetail"`
	KnowledgePoints json.RawMessage `gorm:"type:json" json:"knowledgePoints"` // JSON: []string
	Status          GapStatus       `gorm:"size:20;not null;default:'active';index:idx_gap_user_status" json:"status"`
	ResolvedAt      *time.Time      `json:"resolvedAt,omitempty"`

	Question *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (LearningGap) TableName() string {
	return "learning_gaps"
}

func (g *LearningGap) KnowledgePointList() []string {
	var kps []string
	if len(g.KnowledgePoints) > 0 {
		_ = json.Unmarshal(g.KnowledgePoints, &kps)
	}
	return kps
}
