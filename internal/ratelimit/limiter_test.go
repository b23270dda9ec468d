package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowWithinCeiling(t *testing.T) {
	l := New(3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "request %d should pass", i+1)
	}
	assert.False(t, l.Allow("1.2.3.4"), "request over ceiling should be rejected")
	assert.False(t, l.Allow("1.2.3.4"))
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(1)

	assert.True(t, l.Allow("user:a"))
	assert.False(t, l.Allow("user:a"))
	assert.True(t, l.Allow("user:b"))
	assert.True(t, l.Allow("login:1.2.3.4"))
}

func TestWindowResets(t *testing.T) {
	l := New(2)
	base := time.Now()
	l.now = func() time.Time { return base }

	assert.True(t, l.Allow("k"))
	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))

	// 61 秒后窗口重开，计数归零
	l.now = func() time.Time { return base.Add(61 * time.Second) }
	assert.True(t, l.Allow("k"))
}

func TestSweepRemovesElapsedWindows(t *testing.T) {
	l := New(2)
	base := time.Now()
	l.now = func() time.Time { return base }

	l.Allow("stale")
	l.now = func() time.Time { return base.Add(30 * time.Second) }
	l.Allow("live")

	l.now = func() time.Time { return base.Add(70 * time.Second) }
	removed := l.sweep()

	assert.Equal(t, 1, removed)
	l.mu.Lock()
	_, staleOK := l.windows["stale"]
	_, liveOK := l.windows["live"]
	l.mu.Unlock()
	assert.False(t, staleOK)
	assert.True(t, liveOK)
}
