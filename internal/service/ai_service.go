package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/pkg/monitoring"
	"fmt"
	"strings"
	"sync"
	"time"
)

// GapContext 生成巩固内容时提供给大模型的错因上下文
type GapContext struct {
	GapID           string
	GapType         model.GapType
	GapDetail       string
	KnowledgePoints []string
	QuestionContent string
	CorrectAnswer   string
	Analysis        string
	SourceArticle   string
}

func NewGapContext(gap *model.LearningGap) GapContext {
	gc := GapContext{
		GapID:           gap.ID,
		GapType:         gap.GapType,
		GapDetail:       gap.GapDetail,
		KnowledgePoints: gap.KnowledgePointList(),
	}
	if q := gap.Question; q != nil {
		gc.QuestionContent = q.Content
		gc.CorrectAnswer = q.Answer()
		gc.Analysis = q.AnalysisText()
		gc.SourceArticle = q.ParsedMetadata().SourceArticle
	}
	return gc
}

// ContentSuggester 外部内容建议能力；返回 nil, nil 表示没有内容
type ContentSuggester interface {
	SuggestContent(ctx context.Context, gc GapContext, taskType model.TaskType) (model.TaskContent, error)
	Available() bool
}

// OptionSuggester 为错题生成候选错因
type OptionSuggester interface {
	SuggestErrorOptions(ctx context.Context, q *model.Question, gapType model.GapType) ([]string, error)
	Available() bool
}

var errAIUnavailable = errors.New("ai provider is not configured")

type AIService struct {
	mu       sync.RWMutex
	provider LLMProvider
	timeout  time.Duration
}

func NewAIService(provider LLMProvider, timeout time.Duration) *AIService {
	return &AIService{provider: provider, timeout: timeout}
}

func (s *AIService) Available() bool {
	if s == nil {
		return false
	}
	provider, _ := s.current()
	return provider != nil
}

// Reload 替换底层 provider，返回旧的 provider 由调用方负责关闭
func (s *AIService) Reload(provider LLMProvider, timeout time.Duration) LLMProvider {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.provider
	s.provider = provider
	s.timeout = timeout
	return old
}

func (s *AIService) current() (LLMProvider, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider, s.timeout
}

const contentSystemPrompt = "你是一名经验丰富的高中英语老师，负责根据学生的错题生成简短的巩固练习。" +
	"只输出一个 JSON 对象，不要输出 Markdown 或额外解释。"

func (s *AIService) SuggestContent(ctx context.Context, gc GapContext, taskType model.TaskType) (model.TaskContent, error) {
	if !s.Available() {
		return nil, nil
	}

	prompt, err := buildContentPrompt(gc, taskType)
	if err != nil {
		return nil, err
	}

	raw, err := s.complete(ctx, contentSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	obj := extractJSON(raw, '{', '}')
	if obj == "" {
		return nil, fmt.Errorf("ai response is not a json object")
	}
	content, err := model.DecodeContent(taskType, json.RawMessage(obj))
	if err != nil {
		return nil, fmt.Errorf("decode ai content: %w", err)
	}
	if isBlankContent(content) {
		return nil, nil
	}
	return content, nil
}

func (s *AIService) SuggestErrorOptions(ctx context.Context, q *model.Question, gapType model.GapType) ([]string, error) {
	if !s.Available() || q == nil {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString("学生做错了下面这道英语题，请从")
	sb.WriteString(gapTypeLabel(gapType))
	sb.WriteString("的角度给出 3 到 5 个可能的错误原因，每个不超过 20 个字。\n")
	sb.WriteString("只输出 JSON 字符串数组，例如 [\"原因一\",\"原因二\"]。\n\n")
	sb.WriteString("题目：")
	sb.WriteString(q.Content)
	if opts := q.OptionList(); len(opts) > 0 {
		sb.WriteString("\n选项：")
		sb.WriteString(strings.Join(opts, " / "))
	}
	if ans := q.Answer(); ans != "" {
		sb.WriteString("\n正确答案：")
		sb.WriteString(ans)
	}
	if analysis := q.AnalysisText(); analysis != "" {
		sb.WriteString("\n解析：")
		sb.WriteString(analysis)
	}

	raw, err := s.complete(ctx, "你是一名高中英语老师，擅长分析学生的错因。", sb.String())
	if err != nil {
		return nil, err
	}

	arr := extractJSON(raw, '[', ']')
	if arr == "" {
		return nil, fmt.Errorf("ai response is not a json array")
	}
	var options []string
	if err := json.Unmarshal([]byte(arr), &options); err != nil {
		return nil, fmt.Errorf("decode ai options: %w", err)
	}
	return normalizeOptions(options), nil
}

func (s *AIService) complete(ctx context.Context, system, prompt string) (string, error) {
	provider, timeout := s.current()
	if provider == nil {
		return "", errAIUnavailable
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	start := time.Now()
	raw, err := provider.Complete(ctx, system, prompt)
	monitoring.ObserveAI(provider.Name(), start, err)
	return raw, err
}

func buildContentPrompt(gc GapContext, taskType model.TaskType) (string, error) {
	var sb strings.Builder
	sb.WriteString("错因类型：")
	sb.WriteString(gapTypeLabel(gc.GapType))
	sb.WriteString("\n错因描述：")
	sb.WriteString(gc.GapDetail)
	if len(gc.KnowledgePoints) > 0 {
		sb.WriteString("\n相关知识点：")
		sb.WriteString(strings.Join(gc.KnowledgePoints, "、"))
	}
	if gc.QuestionContent != "" {
		sb.WriteString("\n原题：")
		sb.WriteString(gc.QuestionContent)
	}
	if gc.CorrectAnswer != "" {
		sb.WriteString("\n正确答案：")
		sb.WriteString(gc.CorrectAnswer)
	}
	if gc.Analysis != "" {
		sb.WriteString("\n解析：")
		sb.WriteString(gc.Analysis)
	}
	if gc.SourceArticle != "" {
		sb.WriteString("\n原文节选：")
		sb.WriteString(truncateRunes(gc.SourceArticle, 800))
	}
	sb.WriteString("\n\n")

	switch taskType {
	case model.TaskVocabCard:
		sb.WriteString(`生成一张单词卡，格式：{"word":"单词","definition":"中文释义和词性","example":"英文例句及翻译"}`)
	case model.TaskGrammarVideo:
		sb.WriteString(`生成一个语法讲解，格式：{"knowledge_point":"语法点名称","explanation":"讲解","examples":["例句"],"practice_questions":[{"question":"题干","options":["A. ..."],"answer":"A","explanation":"解析"}]}`)
	case model.TaskExercise:
		sb.WriteString(`生成一组阅读逻辑练习，格式：{"questions":[{"question":"题干","options":["A. ..."],"answer":"A","explanation":"解析"}],"explanation":"思路讲解","reading_tip":"阅读技巧"}`)
	default:
		return "", fmt.Errorf("unknown task type: %s", taskType)
	}
	return sb.String(), nil
}

// extractJSON 截取第一个 open 到最后一个 closing 之间的内容，兼容模型输出 ```json 代码块
func extractJSON(raw string, open, closing byte) string {
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, closing)
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func isBlankContent(c model.TaskContent) bool {
	switch v := c.(type) {
	case model.VocabCardContent:
		return strings.TrimSpace(v.Word) == "" && strings.TrimSpace(v.Definition) == ""
	case model.GrammarVideoContent:
		return strings.TrimSpace(v.Explanation) == ""
	case model.ExerciseContent:
		return len(v.Questions) == 0 && strings.TrimSpace(v.Explanation) == ""
	}
	return true
}

func gapTypeLabel(t model.GapType) string {
	switch t {
	case model.GapVocab:
		return "词汇"
	case model.GapGrammar:
		return "语法"
	case model.GapLogic:
		return "逻辑理解"
	case model.GapCareless:
		return "粗心"
	}
	return string(t)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func normalizeOptions(options []string) []string {
	seen := make(map[string]struct{}, len(options))
	out := make([]string, 0, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}
