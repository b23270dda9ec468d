package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

type itineraryTool struct{}

// NewItineraryTool 生成按天的行程规划。
func NewItineraryTool() tool.InvokableTool {
	return &itineraryTool{}
}

func (t *itineraryTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "plan_itinerary",
		Desc: "为用户生成旅行行程规划，包含每天的景点安排和建议",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"city":        {Type: schema.String, Desc: "目的地城市", Required: true},
			"days":        {Type: schema.Integer, Desc: "旅行天数，默认 3 天"},
			"preferences": {Type: schema.String, Desc: "旅行偏好，如：文化历史、美食、购物、亲子、浪漫等"},
		}),
	}, nil
}

func (t *itineraryTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var args struct {
		City        string `json:"city"`
		Days        int    `json:"days"`
		Preferences string `json:"preferences"`
	}
	if err := json.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		return "", fmt.Errorf("参数解析失败: %w", err)
	}
	if args.City == "" {
		return "", fmt.Errorf("缺少 city 参数")
	}
	days := args.Days
	if days <= 0 {
		days = 3
	}

	template, ok := itineraryData[args.City]
	if !ok {
		return fmt.Sprintf("暂无 %s 的预设行程模板。建议 %d 天行程安排：\n- 第 1 天：城市地标 + 适应当地节奏\n- 中间几天：核心景点 + 特色体验\n- 最后 1 天：购物/自由活动/返程\n\n可以告诉我更多偏好，我帮你定制。",
			args.City, days), nil
	}

	plan := template
	if days < len(template) {
		plan = template[:days]
	}
	prefNote := ""
	if args.Preferences != "" {
		prefNote = fmt.Sprintf("\n\n🎯 根据你的偏好「%s」，以上行程可灵活调整顺序和取舍。", args.Preferences)
	}

	return fmt.Sprintf("📋 %s %d 天行程推荐：\n\n%s%s\n\n💡 以上为参考行程，可根据实际情况灵活调整。需要我调整某天的安排吗？",
		args.City, days, strings.Join(plan, "\n\n"), prefNote), nil
}
