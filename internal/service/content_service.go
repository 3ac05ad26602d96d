package service

import (
	"context"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/pkg/logger"
	"exam_coach_backend/pkg/monitoring"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	vocabDefinitionTip = "查阅词典，记录该词的词性、中文释义和常见搭配"
	vocabExampleTip    = "用该词写一个完整的英文句子，并标出搭配"
	grammarExplainTip  = "回顾该语法点的构成规则，对照错题找出用错的结构"
	exerciseExplainTip = "重读原文，找到题干对应的句子，梳理段落之间的逻辑关系"
	exerciseReadingTip = "先读题干再读原文，留意转折、因果、让步等逻辑连接词"
)

// ContentGenerator 为错因生成任务内容。优先使用 AI，任何失败都回退到规则模板，从不返回错误。
type ContentGenerator struct {
	suggester ContentSuggester
}

func NewContentGenerator(suggester ContentSuggester) *ContentGenerator {
	return &ContentGenerator{suggester: suggester}
}

func (g *ContentGenerator) AIAvailable() bool {
	return g.suggester != nil && g.suggester.Available()
}

// Generate 返回的内容 gap_id 一定是传入错因的 ID
func (g *ContentGenerator) Generate(ctx context.Context, gap *model.LearningGap, taskType model.TaskType) (content model.TaskContent) {
	if !g.AIAvailable() {
		monitoring.ContentFallbackCounter.WithLabelValues(string(taskType), "unavailable").Inc()
		return FallbackContent(gap, taskType)
	}

	defer func() {
		if r := recover(); r != nil {
			g.fallbackWarn(gap, taskType, "panic", fmt.Errorf("%v", r))
			content = FallbackContent(gap, taskType)
		}
	}()

	suggested, err := g.suggester.SuggestContent(ctx, NewGapContext(gap), taskType)
	switch {
	case err != nil:
		g.fallbackWarn(gap, taskType, "error", err)
		return FallbackContent(gap, taskType)
	case suggested == nil:
		g.fallbackWarn(gap, taskType, "empty", nil)
		return FallbackContent(gap, taskType)
	case suggested.TaskType() != taskType:
		g.fallbackWarn(gap, taskType, "mismatch", fmt.Errorf("got %s", suggested.TaskType()))
		return FallbackContent(gap, taskType)
	}
	return fillKeyField(suggested, gap).WithGapID(gap.ID)
}

// fillKeyField AI 漏填单词或语法点时，用错因详情补齐，其余字段保留 AI 的结果
func fillKeyField(content model.TaskContent, gap *model.LearningGap) model.TaskContent {
	switch c := content.(type) {
	case model.VocabCardContent:
		if strings.TrimSpace(c.Word) == "" {
			c.Word = FallbackContent(gap, model.TaskVocabCard).(model.VocabCardContent).Word
		}
		return c
	case model.GrammarVideoContent:
		if strings.TrimSpace(c.KnowledgePoint) == "" {
			c.KnowledgePoint = FallbackContent(gap, model.TaskGrammarVideo).(model.GrammarVideoContent).KnowledgePoint
		}
		return c
	}
	return content
}

func (g *ContentGenerator) fallbackWarn(gap *model.LearningGap, taskType model.TaskType, reason string, err error) {
	monitoring.ContentFallbackCounter.WithLabelValues(string(taskType), reason).Inc()
	logger.Log.Warn("AI 内容生成失败，使用规则模板",
		zap.String("gapID", gap.ID),
		zap.String("taskType", string(taskType)),
		zap.String("reason", reason),
		zap.Error(err))
}

// FallbackContent 规则模板，结果只取决于错因和任务类型
func FallbackContent(gap *model.LearningGap, taskType model.TaskType) model.TaskContent {
	detail := strings.TrimSpace(gap.GapDetail)

	switch taskType {
	case model.TaskVocabCard:
		word := detail
		if word == "" {
			word = "unknown"
		}
		return model.VocabCardContent{
			Word:       word,
			Definition: vocabDefinitionTip,
			Example:    vocabExampleTip,
		}.WithGapID(gap.ID)
	case model.TaskGrammarVideo:
		point := detail
		if point == "" {
			point = "语法点"
		}
		return model.GrammarVideoContent{
			KnowledgePoint: point,
			Explanation:    grammarExplainTip,
		}.WithGapID(gap.ID)
	default:
		return model.ExerciseContent{
			Explanation: exerciseExplainTip,
			ReadingTip:  exerciseReadingTip,
		}.WithGapID(gap.ID)
	}
}
