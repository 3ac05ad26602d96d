package service

import "exam_coach_backend/internal/model"

// ScheduledGap 一个错因在本周的排期
type ScheduledGap struct {
	Gap      *model.LearningGap
	Date     string
	TaskType model.TaskType
}

// ScheduleGaps 按固定规则把错因分配到周一至周五：
// 词汇按序号奇偶落在周一/周三，语法落在周二/周四，逻辑全部落在周五，粗心不排期。
// 每天不设上限，同一输入在同一天得到相同的结果。
func ScheduleGaps(gaps []model.LearningGap, weekdays [5]string) []ScheduledGap {
	var vocab, grammar, logic []*model.LearningGap
	for i := range gaps {
		g := &gaps[i]
		switch g.GapType {
		case model.GapVocab:
			vocab = append(vocab, g)
		case model.GapGrammar:
			grammar = append(grammar, g)
		case model.GapLogic:
			logic = append(logic, g)
		}
	}

	out := make([]ScheduledGap, 0, len(vocab)+len(grammar)+len(logic))
	for i, g := range vocab {
		day := weekdays[0]
		if i%2 == 1 {
			day = weekdays[2]
		}
		out = append(out, ScheduledGap{Gap: g, Date: day, TaskType: model.TaskVocabCard})
	}
	for i, g := range grammar {
		day := weekdays[1]
		if i%2 == 1 {
			day = weekdays[3]
		}
		out = append(out, ScheduledGap{Gap: g, Date: day, TaskType: model.TaskGrammarVideo})
	}
	for _, g := range logic {
		out = append(out, ScheduledGap{Gap: g, Date: weekdays[4], TaskType: model.TaskExercise})
	}
	return out
}
