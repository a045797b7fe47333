// Package sequence 同一视图的并发请求以最新一次为准
package sequence

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize 默认跟踪的视图数
const DefaultSize = 4096

type view struct {
	seq    uint64
	cancel context.CancelFunc
}

// Tracker 按视图键（会话 id + 资源）分配递增序号，新请求取消旧请求
type Tracker struct {
	mu    sync.Mutex
	next  uint64
	views *lru.Cache[string, *view]
}

// New 创建跟踪器，超出容量时淘汰最久未用的视图并取消其在途请求
func New(size int) (*Tracker, error) {
	if size <= 0 {
		size = DefaultSize
	}
	views, err := lru.NewWithEvict[string, *view](size, func(_ string, v *view) {
		v.cancel()
	})
	if err != nil {
		return nil, err
	}
	return &Tracker{views: views}, nil
}

// Ticket 一次请求的序号
type Ticket struct {
	t   *Tracker
	key string
	seq uint64
}

// Begin 开始一次请求，返回的 ctx 在被更新的请求取代时取消
func (t *Tracker) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	if prev, ok := t.views.Peek(key); ok {
		prev.cancel()
	}
	t.views.Add(key, &view{seq: t.next, cancel: cancel})
	return ctx, Ticket{t: t, key: key, seq: t.next}
}

// Seq 序号
func (k Ticket) Seq() uint64 {
	return k.seq
}

// Latest 是否仍是该视图的最新请求
func (k Ticket) Latest() bool {
	k.t.mu.Lock()
	defer k.t.mu.Unlock()
	v, ok := k.t.views.Peek(k.key)
	return ok && v.seq == k.seq
}

// Done 结束请求并释放 ctx
func (k Ticket) Done() {
	k.t.mu.Lock()
	defer k.t.mu.Unlock()
	if v, ok := k.t.views.Peek(k.key); ok && v.seq == k.seq {
		k.t.views.Remove(k.key)
	}
}

// Len 当前跟踪的视图数
func (t *Tracker) Len() int {
	return t.views.Len()
}
