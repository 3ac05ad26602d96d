package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"exam_coach_backend/internal/model"
	"exam_coach_backend/pkg/logger"
	"exam_coach_backend/pkg/monitoring"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const contentCachePrefix = "exam:content:"

// CachedSuggester 用 Redis 缓存 AI 生成的内容，同一错因描述不重复调用大模型
type CachedSuggester struct {
	next  ContentSuggester
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedSuggester redis 为 nil 时直接返回 next
func NewCachedSuggester(next ContentSuggester, rdb *redis.Client, ttl time.Duration) ContentSuggester {
	if rdb == nil || next == nil {
		return next
	}
	return &CachedSuggester{next: next, redis: rdb, ttl: ttl}
}

func (c *CachedSuggester) Available() bool {
	return c.next.Available()
}

func (c *CachedSuggester) SuggestContent(ctx context.Context, gc GapContext, taskType model.TaskType) (model.TaskContent, error) {
	if !c.next.Available() {
		return nil, nil
	}
	key := contentCacheKey(gc, taskType)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if content, derr := model.DecodeContent(taskType, data); derr == nil {
			monitoring.ContentCacheCounter.WithLabelValues("hit").Inc()
			return content, nil
		}
	case err != redis.Nil:
		logger.Log.Warn("读取内容缓存失败", zap.String("key", key), zap.Error(err))
	}
	monitoring.ContentCacheCounter.WithLabelValues("miss").Inc()

	content, err := c.next.SuggestContent(ctx, gc, taskType)
	if err != nil || content == nil {
		return content, err
	}

	// 缓存中的 gap_id 没有意义，读取方会重新绑定
	encoded, err := model.EncodeContent(content.WithGapID(""))
	if err == nil {
		if serr := c.redis.Set(ctx, key, []byte(encoded), c.ttl).Err(); serr != nil {
			logger.Log.Warn("写入内容缓存失败", zap.String("key", key), zap.Error(serr))
		}
	}
	return content, nil
}

func contentCacheKey(gc GapContext, taskType model.TaskType) string {
	h := sha1.New()
	h.Write([]byte(strings.Join([]string{
		string(taskType),
		string(gc.GapType),
		strings.TrimSpace(gc.GapDetail),
		strings.Join(gc.KnowledgePoints, ","),
		gc.QuestionContent,
	}, "\x00")))
	return contentCachePrefix + string(taskType) + ":" + hex.EncodeToString(h.Sum(nil))
}
