package cache

import (
	"sync"
	"time"
)

// Throttle 按字符串键节流的刷新执行器
// 同一键在 TTL 窗口内的重复刷新会被跳过；执行中的键会对并发调用去重。
// 这是尽力而为的缓存手段，不是正确性机制，调用方可通过 force 强制绕过。
type Throttle struct {
	mu       sync.Mutex
	ttl      time.Duration
	lastRun  map[string]time.Time
	inflight map[string]struct{}
	now      func() time.Time
}

// NewThrottle 创建节流器
func NewThrottle(ttl time.Duration) *Throttle {
	return &Throttle{
		ttl:      ttl,
		lastRun:  make(map[string]time.Time),
		inflight: make(map[string]struct{}),
		now:      time.Now,
	}
}

// Do 在键未处于 TTL 窗口内且无同键任务执行中时运行 fn
// 返回值 ran 表示 fn 是否真正执行；被跳过时 ran=false 且 err=nil。
// fn 失败不记录刷新时间，下一次调用会重试。
func (t *Throttle) Do(key string, force bool, fn func() error) (ran bool, err error) {
	t.mu.Lock()
	if _, running := t.inflight[key]; running {
		t.mu.Unlock()
		return false, nil
	}
	if !force {
		if last, ok := t.lastRun[key]; ok && t.now().Sub(last) < t.ttl {
			t.mu.Unlock()
			return false, nil
		}
	}
	t.inflight[key] = struct{}{}
	t.mu.Unlock()

	err = fn()

	t.mu.Lock()
	delete(t.inflight, key)
	if err == nil {
		t.lastRun[key] = t.now()
	}
	t.mu.Unlock()

	return true, err
}

// Invalidate 清除键的刷新记录，使下一次 Do 必然执行
func (t *Throttle) Invalidate(key string) {
	t.mu.Lock()
	delete(t.lastRun, key)
	t.mu.Unlock()
}
