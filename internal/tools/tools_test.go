package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllRegistersFiveTools(t *testing.T) {
	all := All()
	require.Len(t, all, 5)

	names := make(map[string]bool)
	for _, bt := range all {
		info, err := bt.Info(context.Background())
		require.NoError(t, err)
		names[info.Name] = true
	}
	for _, want := range []string{
		"get_destination_weather", "recommend_attractions",
		"plan_itinerary", "estimate_budget", "get_current_time",
	} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}

func TestWeatherTool(t *testing.T) {
	w := NewWeatherTool()

	out, err := w.InvokableRun(context.Background(), `{"city":"成都","date":"2026-05-01"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "成都")
	assert.Contains(t, out, "盆地气候")
	assert.Contains(t, out, "2026-05-01")

	// 未收录城市给兜底文案而不是报错
	out, err = w.InvokableRun(context.Background(), `{"city":"里斯本"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "里斯本")
	assert.Contains(t, out, "天气预报")

	_, err = w.InvokableRun(context.Background(), `{}`)
	assert.Error(t, err, "missing city is a tool error")
}

func TestAttractionToolPreferenceFilter(t *testing.T) {
	a := NewAttractionTool()

	out, err := a.InvokableRun(context.Background(), `{"city":"西安","preference":"美食"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "回民街")
	assert.NotContains(t, out, "兵马俑")

	// 偏好无匹配时回退到全量推荐
	out, err = a.InvokableRun(context.Background(), `{"city":"西安","preference":"滑雪"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "兵马俑")
}

func TestItineraryToolTruncatesToDays(t *testing.T) {
	it := NewItineraryTool()

	out, err := it.InvokableRun(context.Background(), `{"city":"北京","days":2}`)
	require.NoError(t, err)
	assert.Contains(t, out, "第 1 天")
	assert.Contains(t, out, "第 2 天")
	assert.NotContains(t, out, "第 3 天")

	// 默认 3 天
	out, err = it.InvokableRun(context.Background(), `{"city":"杭州"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "3 天行程推荐")
}

func TestBudgetToolLevels(t *testing.T) {
	b := NewBudgetTool()

	out, err := b.InvokableRun(context.Background(), `{"city":"三亚","days":4,"level":"豪华"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "豪华档")
	assert.Contains(t, out, "¥2000+/晚")
	assert.Contains(t, out, "4 天")

	out, err = b.InvokableRun(context.Background(), `{"city":"拉萨"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "暂无 拉萨")
}

type failingTool struct{}

func (failingTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{Name: "boom"}, nil
}

func (failingTool) InvokableRun(ctx context.Context, _ string, _ ...tool.Option) (string, error) {
	return "", errors.New("table missing")
}

func TestSafeWrapperTurnsErrorsIntoResults(t *testing.T) {
	wrapped := WrapToolSafe(failingTool{})

	out, err := wrapped.InvokableRun(context.Background(), `{}`)
	require.NoError(t, err, "wrapper must swallow the error")
	assert.Contains(t, out, "[Tool Error]")
	assert.Contains(t, out, "table missing")
}
