package model

// KnowledgePoint 知识点目录，题目 metadata 和错因中保存的是 Code
type KnowledgePoint struct {
	BaseModel
	Code        string  `gorm:"size:100;uniqueIndex" json:"code"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Category    GapType `gorm:"size:20;index" json:"category"`
	Description string  `gorm:"type:text" json:"description"`
	Order       int     `gorm:"default:0" json:"order"`
	Enabled     bool    `gorm:"default:true" json:"enabled"`
}

func (KnowledgePoint) TableName() string {
	return "knowledge_points"
}
