package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"travel_agent/internal/session"
	"travel_agent/pkg/logger"
)

// New 创建历史压缩器。摘要链为 ChatTemplate(SystemPrompt) -> ChatModel，
// 每次压缩恰好两条消息：系统指令 + 拼装好的用户内容。
func New(ctx context.Context, cfg *Config) (*Compactor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = PromptOfSummary
	}

	tpl := prompt.FromMessages(schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{previous_summary}新的对话内容：\n{conversation}\n\n请生成摘要："))

	summarizer, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(tpl).
		AppendChatModel(cfg.Model).
		Compile(ctx, compose.WithGraphName("HistorySummarizer"))
	if err != nil {
		return nil, fmt.Errorf("compile summarizer failed, err=%w", err)
	}

	counter := cfg.Counter
	if counter == nil {
		counter = defaultCounter
	}

	return &Compactor{
		threshold:        cfg.GetThreshold(),
		keepRecent:       cfg.GetKeepRecent(),
		maxHistoryTokens: cfg.MaxHistoryTokens,
		counter:          counter,
		summarizer:       summarizer,
		metrics:          cfg.Metrics,
	}, nil
}

// Compactor 把过长的会话历史折叠为「累积摘要 + 最近几条逐字消息」，
// 保证无论聊多久，发给模型的上下文量始终有界。
type Compactor struct {
	threshold        int
	keepRecent       int
	maxHistoryTokens int
	counter          TokenCounter
	summarizer       compose.Runnable[map[string]any, *schema.Message]
	metrics          *logger.Metrics
}

// Threshold 返回触发压缩的消息条数阈值。
func (c *Compactor) Threshold() int { return c.threshold }

// KeepRecent 返回压缩后保留的最近消息条数。
func (c *Compactor) KeepRecent() int { return c.keepRecent }

// Compact 在需要时压缩会话历史，返回是否发生了压缩。调用方必须持有会话锁。
//
// 流程：把 History 切成 [0, len-KeepRecent) 和最近 KeepRecent 两段，
// 旧段渲染成带角色标签的文本，连同上一轮摘要（如有）交给摘要模型，
// 得到的新摘要整体替换 Summary（累积语义），History 只留最近段。
//
// 摘要调用失败不致命：跳过本次压缩，本轮继续带着未压缩历史走，
// 下一轮越过阈值时重试。
func (c *Compactor) Compact(ctx context.Context, sess *session.Session) bool {
	if !c.shouldCompact(ctx, sess.History) {
		return false
	}

	cut := len(sess.History) - c.keepRecent
	toSummarize := sess.History[:cut]
	recent := sess.History[cut:]

	prevSummary := ""
	if sess.Summary != "" {
		prevSummary = "之前的摘要：" + sess.Summary + "\n\n"
	}

	msg, err := c.summarizer.Invoke(ctx, map[string]any{
		"previous_summary": prevSummary,
		"conversation":     renderTranscript(toSummarize),
	})
	if err != nil {
		logger.Warnf("[摘要压缩] 会话 %s 摘要调用失败，本轮跳过压缩: %v", sess.ID, err)
		c.metrics.Emit(logger.MetricsEvent{
			LogType:   logger.LTCompactionSkip,
			SessionID: sess.ID,
			Error:     err.Error(),
		})
		return false
	}

	summaryText := ""
	if msg != nil {
		summaryText = msg.Content
	}

	// token 统计仅用于观测，计数失败不影响压缩
	dropped, _ := c.counter(ctx, toSummarize)

	sess.Summary = summaryText
	sess.History = append([]*schema.Message(nil), recent...)

	logger.Infof("[摘要压缩] 会话 %s：将 %d 条消息（约 %d tokens）压缩为摘要，保留最近 %d 条",
		sess.ID, len(toSummarize), dropped, len(recent))
	c.metrics.Emit(logger.MetricsEvent{
		LogType:   logger.LTCompaction,
		SessionID: sess.ID,
		Detail: map[string]any{
			"summarized_messages": len(toSummarize),
			"summarized_tokens":   dropped,
			"kept_messages":       len(recent),
		},
	})
	return true
}

func (c *Compactor) shouldCompact(ctx context.Context, history []*schema.Message) bool {
	if len(history) <= c.keepRecent {
		return false
	}
	if len(history) > c.threshold {
		return true
	}
	if c.maxHistoryTokens > 0 {
		total, err := c.counter(ctx, history)
		if err == nil && total > int64(c.maxHistoryTokens) {
			return true
		}
	}
	return false
}

// renderTranscript 把消息渲染成带角色标签的平文本，供摘要模型阅读。
func renderTranscript(msgs []*schema.Message) string {
	var sb strings.Builder
	for _, m := range msgs {
		if m == nil || m.Content == "" {
			continue
		}
		sb.WriteString(roleLabel(m.Role))
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

func roleLabel(role schema.RoleType) string {
	switch role {
	case schema.User:
		return "用户"
	case schema.Assistant:
		return "助手"
	default:
		return "系统"
	}
}
