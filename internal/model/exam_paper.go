package model

// ExamPaper 导入或录入的一套试卷
// swagger:model ExamPaper
type ExamPaper struct {
	UUIDBase
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Year        int        `gorm:"default:0" json:"year"`
	Questions   []Question `gorm:"foreignKey:PaperID" json:"questions,omitempty"`
}

func (ExamPaper) TableName() string {
	return "exam_papers"
}
