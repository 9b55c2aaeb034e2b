package bus

import (
	"sync"

	"go.uber.org/zap"
)

// Handler 事件处理函数
type Handler func(payload interface{})

// Bus 进程内按主题分发的发布/订阅总线
// Publish 即发即忘，不返回结果；每个监听器在 recover 保护下执行，
// 单个监听器 panic 不影响其余监听器收到通知。
type Bus struct {
	mu     sync.RWMutex
	subs   map[string]map[int]Handler
	nextID int
	logger *zap.Logger
}

// New 创建事件总线
func New(logger *zap.Logger) *Bus {
	return &Bus{
		subs:   make(map[string]map[int]Handler),
		logger: logger,
	}
}

// Subscribe 订阅主题，返回取消订阅函数
func (b *Bus) Subscribe(topic string, h Handler) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.subs[topic][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

// Publish 向主题的全部监听器分发事件
func (b *Bus) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, h := range b.subs[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.invoke(topic, h, payload)
	}
}

func (b *Bus) invoke(topic string, h Handler, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("事件监听器 panic",
				zap.String("topic", topic),
				zap.Any("panic", r),
			)
		}
	}()
	h(payload)
}
