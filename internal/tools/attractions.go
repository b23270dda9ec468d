package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

type attractionTool struct{}

// NewAttractionTool 推荐目的地热门景点，支持按偏好筛选。
func NewAttractionTool() tool.InvokableTool {
	return &attractionTool{}
}

func (t *attractionTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "recommend_attractions",
		Desc: "推荐旅行目的地的热门景点，支持按偏好筛选（如文化、美食、自然、购物等）",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"city":       {Type: schema.String, Desc: "目的地城市名称", Required: true},
			"preference": {Type: schema.String, Desc: "偏好类型，如：文化、美食、自然、购物、休闲"},
		}),
	}, nil
}

func (t *attractionTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var args struct {
		City       string `json:"city"`
		Preference string `json:"preference"`
	}
	if err := json.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		return "", fmt.Errorf("参数解析失败: %w", err)
	}
	if args.City == "" {
		return "", fmt.Errorf("缺少 city 参数")
	}

	cityAttractions, ok := attractionsData[args.City]
	if !ok {
		return fmt.Sprintf("暂无 %s 的详细景点数据，建议搜索「%s 必去景点」获取最新推荐。一般建议关注：当地地标建筑、特色美食街、自然风光和文化遗产。",
			args.City, args.City), nil
	}

	filtered := cityAttractions
	if args.Preference != "" {
		var matched []Attraction
		for _, a := range cityAttractions {
			if strings.Contains(a.Type, args.Preference) ||
				strings.Contains(a.Desc, args.Preference) ||
				strings.Contains(a.Name, args.Preference) {
				matched = append(matched, a)
			}
		}
		if len(matched) > 0 {
			filtered = matched
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏛️ %s 景点推荐：\n", args.City)
	for i, a := range filtered {
		fmt.Fprintf(&sb, "\n%d. **%s**（%s）\n   %s\n   ⏱️ %s | 💰 %s\n", i+1, a.Name, a.Type, a.Desc, a.Time, a.Cost)
	}
	return sb.String(), nil
}
