package state

import "sync"

// Store 不可变快照状态容器
// Get 返回当前快照；Set 以写时复制的方式整体替换快照并通知观察者。
// 快照发布后不再原地修改，观察者拿到的永远是完整替换的新值。
type Store[T any] struct {
	mu       sync.RWMutex
	snapshot T
	subs     map[int]func(T)
	nextID   int
}

// NewStore 创建状态容器
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{
		snapshot: initial,
		subs:     make(map[int]func(T)),
	}
}

// Get 返回当前快照
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Set 整体替换快照并通知全部观察者
func (s *Store[T]) Set(snapshot T) {
	s.mu.Lock()
	s.snapshot = snapshot
	observers := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

// Subscribe 注册观察者，返回取消函数
func (s *Store[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
