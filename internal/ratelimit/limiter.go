package ratelimit

import (
	"sync"
	"time"

	"github.com/bytedance/gopkg/util/gopool"

	"travel_agent/pkg/logger"
)

const (
	windowSize    = time.Minute
	sweepInterval = 5 * time.Minute
)

type window struct {
	count     int
	resetTime time.Time
}

// Limiter 是固定窗口计数限流器。key 由调用方拼装（客户端 IP、
// "login:<ip>"、"user:<identity>"），同一个数据结构服务全部三种范围。
type Limiter struct {
	limit int

	mu      sync.Mutex
	windows map[string]*window

	now  func() time.Time
	done chan struct{}
}

// New 创建限流器，limit 为每分钟每 key 的请求上限。
func New(limit int) *Limiter {
	return &Limiter{
		limit:   limit,
		windows: make(map[string]*window),
		now:     time.Now,
		done:    make(chan struct{}),
	}
}

// Allow 报告 key 在当前 60 秒窗口内是否还可以发起请求。
// 窗口不存在或已过期时重新开窗；计数先加后比较。
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetTime) {
		w = &window{resetTime: now.Add(windowSize)}
		l.windows[key] = w
	}
	w.count++
	return w.count <= l.limit
}

// StartSweeper 启动后台清理，剔除已过期的窗口，独立于查询流量回收内存。
func (l *Limiter) StartSweeper() {
	gopool.Go(func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := l.sweep(); n > 0 {
					logger.Infof("[RateLimit] 清理过期窗口 %d 个", n)
				}
			case <-l.done:
				return
			}
		}
	})
}

// Close 停止后台清理
func (l *Limiter) Close() {
	close(l.done)
}

func (l *Limiter) sweep() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.windows {
		if now.After(w.resetTime) {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}
