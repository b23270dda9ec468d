package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

type timeTool struct {
	now func() time.Time
}

// NewTimeTool 获取当前日期和时间（东八区），帮助模型判断出行季节。
func NewTimeTool() tool.InvokableTool {
	return &timeTool{now: time.Now}
}

func (t *timeTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "get_current_time",
		Desc: "获取当前日期和时间，帮助判断出行季节和时间",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}, nil
}

func (t *timeTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		loc = time.FixedZone("CST", 8*3600)
	}
	now := t.now().In(loc)
	weekdays := []string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}
	return fmt.Sprintf("当前时间：%s %s", now.Format("2006-01-02 15:04:05"), weekdays[now.Weekday()]), nil
}
