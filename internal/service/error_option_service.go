package service

import (
	"context"
	"errors"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/util"
	"exam_coach_backend/pkg/logger"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxErrorOptions = 5

// OptionInput 错因候选策略的输入
type OptionInput struct {
	Question *model.Question
	GapType  model.GapType
}

// OptionStrategy 一种生成候选错因的方式，返回空表示不适用
type OptionStrategy interface {
	Name() string
	Suggest(ctx context.Context, in *OptionInput) ([]string, error)
}

// RunOptionStrategies 按顺序尝试，返回第一个非空结果及其来源
func RunOptionStrategies(ctx context.Context, strategies []OptionStrategy, in *OptionInput) ([]string, string) {
	for _, s := range strategies {
		options, err := s.Suggest(ctx, in)
		if err != nil {
			logger.Log.Warn("错因候选策略失败", zap.String("strategy", s.Name()), zap.Error(err))
			continue
		}
		if options = normalizeOptions(options); len(options) > 0 {
			if len(options) > maxErrorOptions {
				options = options[:maxErrorOptions]
			}
			return options, s.Name()
		}
	}
	return nil, ""
}

type OptionSuggestion struct {
	Options []string `json:"options"`
	Source  string   `json:"source"`
}

type ErrorOptionService struct {
	PaperRepo  PaperStore
	strategies []OptionStrategy
}

func NewErrorOptionService(paperRepo PaperStore, kpRepo KnowledgePointStore, ai OptionSuggester) *ErrorOptionService {
	return &ErrorOptionService{
		PaperRepo:  paperRepo,
		strategies: DefaultOptionStrategies(kpRepo, ai),
	}
}

// DefaultOptionStrategies 解析提取 → 知识点 → AI → 规则默认值
func DefaultOptionStrategies(kpRepo KnowledgePointStore, ai OptionSuggester) []OptionStrategy {
	strategies := []OptionStrategy{&AnalysisStrategy{}}
	if kpRepo != nil {
		strategies = append(strategies, &KnowledgePointStrategy{Repo: kpRepo})
	}
	if ai != nil {
		strategies = append(strategies, &AIOptionStrategy{AI: ai})
	}
	return append(strategies, &RuleStrategy{})
}

func (s *ErrorOptionService) SuggestErrorOptions(ctx context.Context, userID uint, questionID string, gapType model.GapType) (*OptionSuggestion, error) {
	if userID == 0 {
		return nil, util.ErrUnauthorized
	}
	if strings.TrimSpace(questionID) == "" {
		return nil, util.ErrMissingFields
	}
	if !gapType.Valid() {
		return nil, util.ErrInvalidGapType
	}

	q, err := s.PaperRepo.FindQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, util.NewPersistenceError("find question", err)
	}

	options, source := RunOptionStrategies(ctx, s.strategies, &OptionInput{Question: q, GapType: gapType})
	if options == nil {
		options = []string{}
	}
	return &OptionSuggestion{Options: options, Source: source}, nil
}

var (
	clauseSplitter = regexp.MustCompile(`[，。；！？,;!?\n]+`)
	gapKeywords    = map[model.GapType][]string{
		model.GapVocab:   {"词义", "意为", "意思", "短语", "搭配", "词性", "单词", "固定用法"},
		model.GapGrammar: {"时态", "语态", "从句", "非谓语", "主谓一致", "倒装", "虚拟", "语法", "结构", "不定式", "分词"},
		model.GapLogic:   {"转折", "因果", "推断", "主旨", "细节", "上下文", "逻辑", "态度", "指代"},
	}
)

// AnalysisStrategy 从题目解析中摘出与错因类型相关的短句
type AnalysisStrategy struct{}

func (AnalysisStrategy) Name() string { return "analysis" }

func (AnalysisStrategy) Suggest(_ context.Context, in *OptionInput) ([]string, error) {
	keywords := gapKeywords[in.GapType]
	analysis := in.Question.AnalysisText()
	if len(keywords) == 0 || strings.TrimSpace(analysis) == "" {
		return nil, nil
	}

	var out []string
	for _, clause := range clauseSplitter.Split(analysis, -1) {
		clause = strings.TrimSpace(clause)
		if clause == "" || len([]rune(clause)) > 30 {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(clause, kw) {
				out = append(out, "没有掌握："+clause)
				break
			}
		}
	}
	return out, nil
}

// KnowledgePointStrategy 用题目标注的知识点生成候选
type KnowledgePointStrategy struct {
	Repo KnowledgePointStore
}

func (KnowledgePointStrategy) Name() string { return "knowledge_points" }

func (s *KnowledgePointStrategy) Suggest(ctx context.Context, in *OptionInput) ([]string, error) {
	if in.GapType == model.GapCareless {
		return nil, nil
	}
	codes := in.Question.ParsedMetadata().KnowledgePoints
	if len(codes) == 0 {
		return nil, nil
	}
	points, err := s.Repo.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	var matched, others []string
	for _, p := range points {
		label := "不熟悉" + p.Name
		if p.Category == in.GapType {
			matched = append(matched, label)
		} else {
			others = append(others, label)
		}
	}
	if len(matched) > 0 {
		return matched, nil
	}
	return others, nil
}

type AIOptionStrategy struct {
	AI OptionSuggester
}

func (AIOptionStrategy) Name() string { return "ai" }

func (s *AIOptionStrategy) Suggest(ctx context.Context, in *OptionInput) ([]string, error) {
	if in.GapType == model.GapCareless || !s.AI.Available() {
		return nil, nil
	}
	return s.AI.SuggestErrorOptions(ctx, in.Question, in.GapType)
}

var defaultErrorOptions = map[model.GapType][]string{
	model.GapVocab:    {"单词不认识", "熟词僻义", "固定搭配不熟", "近义词辨析不清"},
	model.GapGrammar:  {"时态判断错误", "从句引导词不会选", "非谓语动词形式不清", "主谓一致没注意"},
	model.GapLogic:    {"没读懂上下文逻辑", "忽略转折或因果关系", "细节定位错误", "过度推断"},
	model.GapCareless: {"看错题干", "审题不仔细", "誊写或涂卡错误", "时间紧张仓促作答"},
}

// RuleStrategy 兜底的固定候选
type RuleStrategy struct{}

func (RuleStrategy) Name() string { return "rules" }

func (RuleStrategy) Suggest(_ context.Context, in *OptionInput) ([]string, error) {
	defaults := defaultErrorOptions[in.GapType]
	out := make([]string, len(defaults))
	copy(out, defaults)
	return out, nil
}
