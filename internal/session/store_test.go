package session

import (
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate(t *testing.T) {
	st := NewStore(0)

	sess := st.GetOrCreate("abc")
	require.NotNil(t, sess)
	assert.Equal(t, "abc", sess.ID)
	assert.Empty(t, sess.History)
	assert.Empty(t, sess.Summary)
	assert.False(t, sess.LastActiveAt.IsZero())

	// 同 id 再次查找拿到同一个会话
	sess.Append(schema.UserMessage("你好"))
	again := st.GetOrCreate("abc")
	assert.Same(t, sess, again)
	assert.Len(t, again.History, 1)
	assert.Equal(t, 1, st.Len())
}

func TestLookupRefreshesLastActive(t *testing.T) {
	st := NewStore(0)
	base := time.Now()
	st.now = func() time.Time { return base }

	sess := st.GetOrCreate("abc")
	assert.Equal(t, base, sess.LastActiveAt)

	st.now = func() time.Time { return base.Add(time.Hour) }
	st.GetOrCreate("abc")
	assert.Equal(t, base.Add(time.Hour), sess.LastActiveAt)
}

func TestClearIsDestructive(t *testing.T) {
	st := NewStore(0)

	sess := st.GetOrCreate("abc")
	sess.Append(schema.UserMessage("第一句"))
	sess.Summary = "旧摘要"

	st.Clear("abc")
	assert.Equal(t, 0, st.Len())

	// 同 id 重建得到全新空会话，旧状态不复活
	fresh := st.GetOrCreate("abc")
	assert.NotSame(t, sess, fresh)
	assert.Empty(t, fresh.History)
	assert.Empty(t, fresh.Summary)
}

func TestSweepExpired(t *testing.T) {
	st := NewStore(2 * time.Hour)
	base := time.Now()
	st.now = func() time.Time { return base }

	st.GetOrCreate("stale")
	st.now = func() time.Time { return base.Add(90 * time.Minute) }
	st.GetOrCreate("live")

	st.now = func() time.Time { return base.Add(2*time.Hour + time.Minute) }
	removed := st.SweepExpired()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, st.Len())
}
