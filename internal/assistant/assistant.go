// Package assistant 把会话存储、历史压缩和 react agent 串成完整的对话回合。
// 每个回合持有会话锁，保证同一 session 的并发请求串行执行。
package assistant

import (
	"context"
	"io"
	"strings"

	"github.com/cloudwego/eino/flow/agent"
	"github.com/cloudwego/eino/schema"

	"travel_agent/internal/session"
	"travel_agent/internal/summary"
	"travel_agent/pkg/logger"
)

// FallbackReply 在模型返回空内容时兜底，保证接口永远有可读回复。
const FallbackReply = "抱歉，我无法处理这个请求。"

// ChatAgent is the subset of the react agent the assistant depends on.
// Tests substitute a fake; production wires react.NewAgent.
type ChatAgent interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...agent.AgentOption) (*schema.Message, error)
	Stream(ctx context.Context, input []*schema.Message, opts ...agent.AgentOption) (*schema.StreamReader[*schema.Message], error)
}

// Assistant owns the conversational state machine for all sessions.
type Assistant struct {
	agent     ChatAgent
	compactor *summary.Compactor
	sessions  *session.Store
	persona   string
	metrics   *logger.Metrics
	agentOpts []agent.AgentOption
}

type Config struct {
	Agent     ChatAgent
	Compactor *summary.Compactor
	Sessions  *session.Store
	Persona   string
	Metrics   *logger.Metrics
	// AgentOpts 附加到每次模型调用，比如 compose.WithCallbacks。
	AgentOpts []agent.AgentOption
}

func New(cfg Config) *Assistant {
	m := cfg.Metrics
	if m == nil {
		m = logger.NewMetrics(nil)
	}
	return &Assistant{
		agent:     cfg.Agent,
		compactor: cfg.Compactor,
		sessions:  cfg.Sessions,
		persona:   cfg.Persona,
		metrics:   m,
		agentOpts: cfg.AgentOpts,
	}
}

// sweepSessions 请求驱动的过期会话回收，零流量时不触发。
func (a *Assistant) sweepSessions() {
	if n := a.sessions.SweepExpired(); n > 0 {
		logger.Infof("[会话] 回收 %d 个过期会话", n)
		a.metrics.Emit(logger.MetricsEvent{
			LogType: logger.LTSessionSweep,
			Detail:  map[string]any{"removed": n},
		})
	}
}

// Chat 执行一个完整回合：追加用户消息、按需压缩历史、调用模型、落账回复。
func (a *Assistant) Chat(ctx context.Context, sessionID, text string) (string, error) {
	a.sweepSessions()

	sess := a.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	sess.Append(schema.UserMessage(text))
	a.compactor.Compact(ctx, sess)

	timer := logger.NewTimer()
	reply, err := a.agent.Generate(ctx, a.buildMessages(sess), a.agentOpts...)
	if err != nil {
		a.metrics.Emit(logger.MetricsEvent{
			LogType:    logger.LTChatError,
			SessionID:  sess.ID,
			DurationMs: timer.ElapsedMs(),
			Error:      err.Error(),
		})
		return "", err
	}

	content := reply.Content
	if strings.TrimSpace(content) == "" {
		content = FallbackReply
	}
	sess.Append(schema.AssistantMessage(content, nil))

	a.metrics.Emit(logger.MetricsEvent{
		LogType:    logger.LTChatTurn,
		SessionID:  sess.ID,
		DurationMs: timer.ElapsedMs(),
		Detail:     map[string]any{"history_len": len(sess.History)},
	})
	return content, nil
}

// StreamChat 与 Chat 共享同一套提示构建和历史落账逻辑，区别只在消费方式：
// 每个增量片段经 onChunk 回调推给调用方，onChunk 返回错误则中止读取。
// 返回拼接后的完整回复，已追加进会话历史。
func (a *Assistant) StreamChat(ctx context.Context, sessionID, text string, onChunk func(chunk string) error) (string, error) {
	a.sweepSessions()

	sess := a.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	sess.Append(schema.UserMessage(text))
	a.compactor.Compact(ctx, sess)

	timer := logger.NewTimer()
	sr, err := a.agent.Stream(ctx, a.buildMessages(sess), a.agentOpts...)
	if err != nil {
		a.metrics.Emit(logger.MetricsEvent{
			LogType:    logger.LTChatError,
			SessionID:  sess.ID,
			DurationMs: timer.ElapsedMs(),
			Error:      err.Error(),
		})
		return "", err
	}
	defer sr.Close()

	var full strings.Builder
	for {
		msg, recvErr := sr.Recv()
		if recvErr == io.EOF {
			break
		}
		if recvErr != nil {
			// 中途失败：已推送的片段无法收回，不把半截回复写进历史
			a.metrics.Emit(logger.MetricsEvent{
				LogType:    logger.LTChatError,
				SessionID:  sess.ID,
				DurationMs: timer.ElapsedMs(),
				Error:      recvErr.Error(),
			})
			return "", recvErr
		}
		if msg.Content == "" {
			continue
		}
		full.WriteString(msg.Content)
		if cbErr := onChunk(msg.Content); cbErr != nil {
			return "", cbErr
		}
	}

	content := full.String()
	if strings.TrimSpace(content) == "" {
		content = FallbackReply
		if cbErr := onChunk(content); cbErr != nil {
			return "", cbErr
		}
	}
	sess.Append(schema.AssistantMessage(content, nil))

	a.metrics.Emit(logger.MetricsEvent{
		LogType:    logger.LTChatStream,
		SessionID:  sess.ID,
		DurationMs: timer.ElapsedMs(),
		Detail:     map[string]any{"history_len": len(sess.History), "reply_len": len(content)},
	})
	return content, nil
}

// ClearHistory 丢弃整个会话，下一次同 id 请求从零开始。
func (a *Assistant) ClearHistory(sessionID string) {
	a.sessions.Clear(sessionID)
	a.metrics.Emit(logger.MetricsEvent{
		LogType:   logger.LTSessionClear,
		SessionID: sessionID,
	})
}

// buildMessages 组装发给模型的完整上下文：
// 人设 system + 摘要 system（如有）+ 未压缩的历史消息。
func (a *Assistant) buildMessages(sess *session.Session) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(sess.History)+2)
	msgs = append(msgs, schema.SystemMessage(a.persona))
	if sess.Summary != "" {
		msgs = append(msgs, schema.SystemMessage("以下是之前对话的摘要：\n"+sess.Summary))
	}
	msgs = append(msgs, sess.History...)
	return msgs
}
