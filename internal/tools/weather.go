package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

type weatherTool struct{}

// NewWeatherTool 查询目的地天气和气候信息。
func NewWeatherTool() tool.InvokableTool {
	return &weatherTool{}
}

func (t *weatherTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "get_destination_weather",
		Desc: "查询旅行目的地的天气和气候信息，帮助用户决定出行时间和穿着",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"city": {Type: schema.String, Desc: "目的地城市名称", Required: true},
			"date": {Type: schema.String, Desc: "计划出行日期，如：2026-03-15"},
		}),
	}, nil
}

func (t *weatherTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var args struct {
		City string `json:"city"`
		Date string `json:"date"`
	}
	if err := json.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		return "", fmt.Errorf("参数解析失败: %w", err)
	}
	if args.City == "" {
		return "", fmt.Errorf("缺少 city 参数")
	}

	info, ok := weatherData[args.City]
	if !ok {
		info = fmt.Sprintf("%s：建议查阅当地近期天气预报获取详细信息。", args.City)
	}
	dateHint := ""
	if args.Date != "" {
		dateHint = fmt.Sprintf("\n出行日期 %s 附近", args.Date)
	}
	return fmt.Sprintf("🌤️ %s 旅行天气参考：\n%s%s\n\n💡 出发前建议查看实时天气预报，合理准备衣物。",
		args.City, info, dateHint), nil
}
