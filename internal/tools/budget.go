package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

type budgetTool struct{}

// NewBudgetTool 估算旅行费用预算。
func NewBudgetTool() tool.InvokableTool {
	return &budgetTool{}
}

func (t *budgetTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "estimate_budget",
		Desc: "估算旅行目的地的费用预算，包括住宿、餐饮、交通、门票等",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"city":  {Type: schema.String, Desc: "目的地城市", Required: true},
			"days":  {Type: schema.Integer, Desc: "旅行天数，默认 3 天"},
			"level": {Type: schema.String, Desc: "消费档次，默认中等", Enum: []string{"经济", "中等", "豪华"}},
		}),
	}, nil
}

func (t *budgetTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var args struct {
		City  string `json:"city"`
		Days  int    `json:"days"`
		Level string `json:"level"`
	}
	if err := json.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		return "", fmt.Errorf("参数解析失败: %w", err)
	}
	if args.City == "" {
		return "", fmt.Errorf("缺少 city 参数")
	}
	level := args.Level
	if level == "" {
		level = "中等"
	}
	days := args.Days
	if days <= 0 {
		days = 3
	}

	cityBudget, ok := budgetData[args.City][level]
	if !ok {
		return fmt.Sprintf("暂无 %s（%s档）的预算数据。国内城市一般参考：经济型 ¥250-500/天，中等 ¥600-1200/天，豪华 ¥1500+/天。%d 天预计总费用需乘以天数，另加往返交通费。",
			args.City, level, days), nil
	}

	return fmt.Sprintf(`💰 %s %d 天旅行预算估算（%s档）：

🏨 住宿：%s
🍜 餐饮：%s
🚌 市内交通：%s
🎫 门票/活动：%s

📊 每日合计：%s
📊 %d 天预估：以上日均 × %d（不含往返大交通）

💡 省钱tips：提前订机票酒店可省20-30%%，淡季出行更划算，关注各平台优惠券。`,
		args.City, days, level,
		cityBudget.Accommodation, cityBudget.Food, cityBudget.Transport, cityBudget.Tickets,
		cityBudget.Total, days, days), nil
}
