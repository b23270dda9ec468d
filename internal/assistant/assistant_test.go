package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/flow/agent"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_agent/internal/session"
	"travel_agent/internal/summary"
)

// fakeAgent 记录收到的消息并返回预置回复。
type fakeAgent struct {
	reply     string
	chunks    []string
	fail      bool
	lastInput []*schema.Message
}

func (f *fakeAgent) Generate(ctx context.Context, input []*schema.Message, _ ...agent.AgentOption) (*schema.Message, error) {
	f.lastInput = input
	if f.fail {
		return nil, errors.New("model unavailable")
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeAgent) Stream(ctx context.Context, input []*schema.Message, _ ...agent.AgentOption) (*schema.StreamReader[*schema.Message], error) {
	f.lastInput = input
	if f.fail {
		return nil, errors.New("model unavailable")
	}
	msgs := make([]*schema.Message, 0, len(f.chunks))
	for _, c := range f.chunks {
		msgs = append(msgs, schema.AssistantMessage(c, nil))
	}
	return schema.StreamReaderFromArray(msgs), nil
}

// fakeSummaryModel 给压缩器用的摘要模型。
type fakeSummaryModel struct {
	reply string
}

func (f *fakeSummaryModel) Generate(ctx context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeSummaryModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, in, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func stubCounter(_ context.Context, msgs []*schema.Message) (int64, error) {
	return int64(len(msgs)) * 10, nil
}

func newTestAssistant(t *testing.T, ag ChatAgent) (*Assistant, *session.Store) {
	t.Helper()
	compactor, err := summary.New(context.Background(), &summary.Config{
		Model:   &fakeSummaryModel{reply: "用户在规划一次旅行。"},
		Counter: stubCounter,
	})
	require.NoError(t, err)

	store := session.NewStore(2 * time.Hour)
	return New(Config{
		Agent:     ag,
		Compactor: compactor,
		Sessions:  store,
		Persona:   "你是旅伴。",
	}), store
}

func TestChatAppendsBothSides(t *testing.T) {
	ag := &fakeAgent{reply: "成都五月很舒服。"}
	a, store := newTestAssistant(t, ag)

	reply, err := a.Chat(context.Background(), "s1", "五月去成都怎么样？")
	require.NoError(t, err)
	assert.Equal(t, "成都五月很舒服。", reply)

	sess := store.GetOrCreate("s1")
	require.Len(t, sess.History, 2)
	assert.Equal(t, schema.User, sess.History[0].Role)
	assert.Equal(t, "五月去成都怎么样？", sess.History[0].Content)
	assert.Equal(t, schema.Assistant, sess.History[1].Role)

	// 发给模型的上下文以人设开头
	require.NotEmpty(t, ag.lastInput)
	assert.Equal(t, schema.System, ag.lastInput[0].Role)
	assert.Equal(t, "你是旅伴。", ag.lastInput[0].Content)
}

func TestChatEmptyReplyFallsBack(t *testing.T) {
	a, store := newTestAssistant(t, &fakeAgent{reply: "  "})

	reply, err := a.Chat(context.Background(), "s1", "你好")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
	assert.Equal(t, FallbackReply, store.GetOrCreate("s1").History[1].Content)
}

func TestChatModelErrorKeepsUserMessage(t *testing.T) {
	a, store := newTestAssistant(t, &fakeAgent{fail: true})

	_, err := a.Chat(context.Background(), "s1", "你好")
	require.Error(t, err)

	// 用户消息已落账，助手侧没有半截回复
	sess := store.GetOrCreate("s1")
	require.Len(t, sess.History, 1)
	assert.Equal(t, schema.User, sess.History[0].Role)
}

func TestCompactionKicksInAndSummaryEntersPrompt(t *testing.T) {
	ag := &fakeAgent{reply: "好的。"}
	a, store := newTestAssistant(t, ag)

	// 10 个回合正好 20 条，不触发压缩
	for i := 0; i < 10; i++ {
		_, err := a.Chat(context.Background(), "s1", fmt.Sprintf("问题 %d", i))
		require.NoError(t, err)
	}
	sess := store.GetOrCreate("s1")
	assert.Len(t, sess.History, 20)
	assert.Empty(t, sess.Summary)

	// 第 11 回合：追加用户消息后 21 > 20，压缩到 6 条再加本轮回复
	_, err := a.Chat(context.Background(), "s1", "第十一个问题")
	require.NoError(t, err)
	assert.Len(t, sess.History, 7)
	assert.Equal(t, "用户在规划一次旅行。", sess.Summary)

	// 下一回合的上下文带上摘要 system 消息
	_, err = a.Chat(context.Background(), "s1", "继续")
	require.NoError(t, err)
	require.True(t, len(ag.lastInput) >= 2)
	assert.Equal(t, schema.System, ag.lastInput[1].Role)
	assert.Contains(t, ag.lastInput[1].Content, "以下是之前对话的摘要：")
	assert.Contains(t, ag.lastInput[1].Content, "用户在规划一次旅行。")
}

func TestStreamChatConcatenatesChunks(t *testing.T) {
	a, store := newTestAssistant(t, &fakeAgent{chunks: []string{"成都", "五月", "很舒服。"}})

	var got []string
	full, err := a.StreamChat(context.Background(), "s1", "五月去成都？", func(c string) error {
		got = append(got, c)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "成都五月很舒服。", full)
	assert.Equal(t, []string{"成都", "五月", "很舒服。"}, got)

	sess := store.GetOrCreate("s1")
	require.Len(t, sess.History, 2)
	assert.Equal(t, "成都五月很舒服。", sess.History[1].Content)
}

func TestStreamChatEmptyStreamFallsBack(t *testing.T) {
	a, _ := newTestAssistant(t, &fakeAgent{chunks: nil})

	var got strings.Builder
	full, err := a.StreamChat(context.Background(), "s1", "你好", func(c string) error {
		got.WriteString(c)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, full)
	assert.Equal(t, FallbackReply, got.String())
}

func TestStreamChatCallbackErrorAborts(t *testing.T) {
	a, store := newTestAssistant(t, &fakeAgent{chunks: []string{"a", "b"}})

	sentinel := errors.New("client gone")
	_, err := a.StreamChat(context.Background(), "s1", "你好", func(string) error {
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	// 断流的回合不落账助手消息
	assert.Len(t, store.GetOrCreate("s1").History, 1)
}

func TestClearHistory(t *testing.T) {
	a, store := newTestAssistant(t, &fakeAgent{reply: "好的。"})

	_, err := a.Chat(context.Background(), "s1", "你好")
	require.NoError(t, err)
	require.Len(t, store.GetOrCreate("s1").History, 2)

	a.ClearHistory("s1")
	assert.Empty(t, store.GetOrCreate("s1").History)
}
