package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"groupmate/backend/internal/model"
	"groupmate/backend/pkg/cache"
)

// RefreshFunc 重新计算一门课程的互评汇总
type RefreshFunc func(ctx context.Context, courseID string) (*model.CourseSummary, error)

// SummaryCache 课程汇总的进程内缓存
// 刷新经 TTL 节流并对并发刷新去重；缓存只是尽力而为的加速手段，
// 调用方可 force 绕过，事件订阅方通过 Invalidate 使缓存失效。
type SummaryCache struct {
	mu       sync.Mutex
	stores   map[string]*Store[*model.CourseSummary]
	throttle *cache.Throttle
	refresh  RefreshFunc
	logger   *zap.Logger
}

// NewSummaryCache 创建课程汇总缓存
func NewSummaryCache(ttl time.Duration, refresh RefreshFunc, logger *zap.Logger) *SummaryCache {
	return &SummaryCache{
		stores:   make(map[string]*Store[*model.CourseSummary]),
		throttle: cache.NewThrottle(ttl),
		refresh:  refresh,
		logger:   logger,
	}
}

func (c *SummaryCache) storeFor(courseID string) *Store[*model.CourseSummary] {
	c.mu.Lock()
	defer c.mu.Unlock()
	store, ok := c.stores[courseID]
	if !ok {
		store = NewStore[*model.CourseSummary](nil)
		c.stores[courseID] = store
	}
	return store
}

// Get 返回课程汇总；TTL 内直接给出缓存快照，必要时刷新
func (c *SummaryCache) Get(ctx context.Context, courseID string, force bool) (*model.CourseSummary, error) {
	store := c.storeFor(courseID)

	_, err := c.throttle.Do("summary:"+courseID, force, func() error {
		summary, err := c.refresh(ctx, courseID)
		if err != nil {
			return err
		}
		store.Set(summary)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if snapshot := store.Get(); snapshot != nil {
		return snapshot, nil
	}

	// 刷新被并发去重跳过且尚无快照：直接算一次，不经节流
	summary, err := c.refresh(ctx, courseID)
	if err != nil {
		return nil, err
	}
	store.Set(summary)
	return summary, nil
}

// Invalidate 使课程的缓存失效，下一次 Get 必然重新计算
func (c *SummaryCache) Invalidate(courseID string) {
	c.throttle.Invalidate("summary:" + courseID)
	c.logger.Debug("课程汇总缓存已失效", zap.String("course_id", courseID))
}

// Subscribe 订阅课程汇总快照的变化
func (c *SummaryCache) Subscribe(courseID string, fn func(*model.CourseSummary)) (cancel func()) {
	return c.storeFor(courseID).Subscribe(fn)
}
