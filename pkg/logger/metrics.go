package logger

import (
	"time"

	"github.com/elastic/go-elasticsearch/v7"
)

const (
	MetricsIndex = "travel_logs"

	// LogType 常量 — 用于 ES 过滤，标识上报来源
	LTChatTurn       = "chat.turn"        // 一次非流式对话轮次
	LTChatStream     = "chat.stream"      // 一次流式对话轮次
	LTChatError      = "chat.error"       // 对话处理失败
	LTCompaction     = "chat.compaction"  // 历史压缩完成
	LTCompactionSkip = "chat.compaction_skip" // 摘要调用失败，跳过压缩
	LTLogin          = "auth.login"       // 微信登录
	LTLoginH5        = "auth.login_h5"    // GitHub H5 登录
	LTSessionClear   = "session.cleared"  // 会话被显式清除
	LTSessionSweep   = "session.sweep"    // 过期会话回收
)

// MetricsEvent 是写入 ES 的打点事件结构
type MetricsEvent struct {
	Timestamp  time.Time   `json:"@timestamp"`
	LogType    string      `json:"log_type"`
	SessionID  string      `json:"session_id,omitempty"`
	Identity   string      `json:"identity,omitempty"`
	DurationMs int64       `json:"duration_ms,omitempty"`
	Error      string      `json:"error,omitempty"`
	Detail     interface{} `json:"detail,omitempty"` // 自定义附加数据
}

// Metrics 是 ES 打点上报器
type Metrics struct {
	es    *elasticsearch.Client
	index string
}

// NewMetrics 创建打点上报器；es 为 nil 时所有上报静默跳过（不影响主流程）
func NewMetrics(es *elasticsearch.Client) *Metrics {
	return &Metrics{es: es, index: MetricsIndex}
}

// Emit 上报一条打点事件；失败仅打 warn 日志，不阻断业务
func (m *Metrics) Emit(evt MetricsEvent) {
	if m == nil || m.es == nil {
		return
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	if err := SendWrappedLog(m.es, m.index, evt.LogType, evt); err != nil {
		Warnf("[Metrics] ES 写入失败 (log_type=%s): %v", evt.LogType, err)
	}
}

// Timer 用于方便地测量耗时
type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) ElapsedMs() int64 {
	return time.Since(t.start).Milliseconds()
}
