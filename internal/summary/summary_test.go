package summary

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_agent/internal/session"
)

// fakeModel 记录收到的渲染后消息，按配置返回摘要或失败
type fakeModel struct {
	reply     string
	fail      bool
	calls     int
	lastInput []*schema.Message
}

func (m *fakeModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.calls++
	m.lastInput = input
	if m.fail {
		return nil, errors.New("upstream unavailable")
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *fakeModel) Stream(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// 测试用计数器：每条消息按 10 token 估算，避免依赖 tiktoken 的编码文件下载
func stubCounter(_ context.Context, msgs []*schema.Message) (int64, error) {
	return int64(len(msgs)) * 10, nil
}

func newCompactor(t *testing.T, m *fakeModel) *Compactor {
	t.Helper()
	c, err := New(context.Background(), &Config{
		Model:   m,
		Counter: stubCounter,
	})
	require.NoError(t, err)
	return c
}

func makeSession(id string, msgCount int) *session.Session {
	sess := &session.Session{ID: id}
	for i := 0; i < msgCount; i++ {
		if i%2 == 0 {
			sess.History = append(sess.History, schema.UserMessage(fmt.Sprintf("用户消息 %d", i)))
		} else {
			sess.History = append(sess.History, schema.AssistantMessage(fmt.Sprintf("助手回复 %d", i), nil))
		}
	}
	return sess
}

func TestNewRequiresModel(t *testing.T) {
	_, err := New(context.Background(), &Config{})
	assert.ErrorIs(t, err, ErrModelRequired)

	var nilCfg *Config
	_, err = New(context.Background(), nilCfg)
	assert.ErrorIs(t, err, ErrConfigNil)
}

func TestNoopBelowThreshold(t *testing.T) {
	m := &fakeModel{reply: "摘要"}
	c := newCompactor(t, m)
	sess := makeSession("s1", 20) // 恰好等于阈值，不触发

	compacted := c.Compact(context.Background(), sess)

	assert.False(t, compacted)
	assert.Len(t, sess.History, 20)
	assert.Empty(t, sess.Summary)
	assert.Zero(t, m.calls, "threshold not crossed, summarizer must not be invoked")
}

func TestCompactAboveThreshold(t *testing.T) {
	m := &fakeModel{reply: "用户计划五一去成都，偏好美食"}
	c := newCompactor(t, m)
	sess := makeSession("s1", 21)
	wantTail := append([]*schema.Message(nil), sess.History[15:]...)

	compacted := c.Compact(context.Background(), sess)

	require.True(t, compacted)
	assert.Equal(t, "用户计划五一去成都，偏好美食", sess.Summary)
	require.Len(t, sess.History, DefaultKeepRecent)
	assert.Equal(t, wantTail, sess.History, "keep window must survive verbatim")

	// 摘要请求恰好两条消息：系统指令 + 拼装内容
	require.Len(t, m.lastInput, 2)
	assert.Equal(t, schema.System, m.lastInput[0].Role)
	assert.Equal(t, PromptOfSummary, m.lastInput[0].Content, "unset SystemPrompt falls back to the package default")
	assert.Equal(t, schema.User, m.lastInput[1].Role)
	assert.Contains(t, m.lastInput[1].Content, "新的对话内容")
	assert.Contains(t, m.lastInput[1].Content, "用户: 用户消息 0")
	assert.Contains(t, m.lastInput[1].Content, "助手: 助手回复 13")
	assert.NotContains(t, m.lastInput[1].Content, "之前的摘要", "first compaction has no prior summary")
	assert.NotContains(t, m.lastInput[1].Content, "用户消息 16", "keep window must not be summarized")
}

func TestSummaryIsCumulative(t *testing.T) {
	m := &fakeModel{reply: "合并后的新摘要"}
	c := newCompactor(t, m)
	sess := makeSession("s1", 21)
	sess.Summary = "用户想去北京看故宫"

	compacted := c.Compact(context.Background(), sess)

	require.True(t, compacted)
	assert.Contains(t, m.lastInput[1].Content, "之前的摘要：用户想去北京看故宫")
	// 新摘要整体取代旧摘要，而不是拼接
	assert.Equal(t, "合并后的新摘要", sess.Summary)
}

func TestFailureSkipsCompaction(t *testing.T) {
	m := &fakeModel{fail: true}
	c := newCompactor(t, m)
	sess := makeSession("s1", 21)
	sess.Summary = "旧摘要"

	compacted := c.Compact(context.Background(), sess)

	assert.False(t, compacted)
	assert.Len(t, sess.History, 21, "failed compaction must leave history untouched")
	assert.Equal(t, "旧摘要", sess.Summary)

	// 故障恢复后，下一次检查重新压缩
	m.fail = false
	m.reply = "恢复后的摘要"
	require.True(t, c.Compact(context.Background(), sess))
	assert.Len(t, sess.History, DefaultKeepRecent)
}

func TestCompactIsIdempotent(t *testing.T) {
	m := &fakeModel{reply: "摘要"}
	c := newCompactor(t, m)
	sess := makeSession("s1", 25)

	require.True(t, c.Compact(context.Background(), sess))
	assert.Equal(t, 1, m.calls)

	// 压缩后长度回到 KeepRecent，再压缩是 no-op
	assert.False(t, c.Compact(context.Background(), sess))
	assert.Equal(t, 1, m.calls)
	assert.Len(t, sess.History, DefaultKeepRecent)
}

func TestTokenBasedSecondaryTrigger(t *testing.T) {
	m := &fakeModel{reply: "摘要"}
	c, err := New(context.Background(), &Config{
		Model:            m,
		Counter:          stubCounter, // 10 tokens/条
		MaxHistoryTokens: 80,
	})
	require.NoError(t, err)

	// 10 条 = 100 tokens > 80：条数未过阈值但 token 触发
	sess := makeSession("s1", 10)
	require.True(t, c.Compact(context.Background(), sess))
	assert.Len(t, sess.History, DefaultKeepRecent)
}
