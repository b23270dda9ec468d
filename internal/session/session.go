package session

import (
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
)

// Session 是一条对话在服务端的全部状态。History 按时间顺序保存逐字消息，
// Summary 是压缩后的累积摘要（未压缩过为空），两者共同构成模型可见的上下文。
//
// mu 串行化整个对话轮次：一次 Chat 从追加用户消息到追加助手回复横跨多次
// 网络往返，期间不允许同一会话的另一轮并发修改 History。
type Session struct {
	ID           string
	History      []*schema.Message
	Summary      string
	LastActiveAt time.Time

	mu sync.Mutex
}

// Lock 独占该会话，直到本轮对话完成。
func (s *Session) Lock() { s.mu.Lock() }

// Unlock 释放会话。
func (s *Session) Unlock() { s.mu.Unlock() }

// Append 在持有锁的前提下追加一条消息。
func (s *Session) Append(msg *schema.Message) {
	s.History = append(s.History, msg)
}
