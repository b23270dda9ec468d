package session

import (
	"sync"
	"time"
)

// DefaultTTL 是会话的闲置过期时间
const DefaultTTL = 2 * time.Hour

// Store 持有全部活跃会话。纯内存实现，进程重启即清空；
// 过期回收由请求驱动（SweepExpired 在每次对话请求开头调用），
// 零流量时不回收——对本系统的规模可以接受。
type Store struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]*Session

	now func() time.Time
}

// NewStore 创建会话存储，ttl <= 0 时使用 DefaultTTL。
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// GetOrCreate 返回已有会话，不存在时惰性创建空会话。
// 每次查找都会刷新 LastActiveAt。
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		sess = &Session{ID: id}
		st.sessions[id] = sess
	}
	sess.LastActiveAt = st.now()
	return sess
}

// Clear 删除会话。删除是终态：同 id 的后续请求会得到全新的空会话。
func (st *Store) Clear(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// SweepExpired 移除所有闲置超过 TTL 的会话，返回移除数量。
func (st *Store) SweepExpired() int {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.sessions {
		if now.Sub(sess.LastActiveAt) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len 返回当前活跃会话数。
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
