// Package tools 提供旅行领域的查询工具：天气、景点、行程、预算、当前时间。
// 每个工具是结构化输入到格式化文本的纯函数，由模型编排层按需调用。
package tools

import (
	"github.com/cloudwego/eino/components/tool"
)

// All 返回注册给 react agent 的全部旅行工具，统一套上安全包装，
// 工具内部的错误以文本形式回给模型而不是中断整轮对话。
func All() []tool.BaseTool {
	invokables := []tool.InvokableTool{
		NewWeatherTool(),
		NewAttractionTool(),
		NewItineraryTool(),
		NewBudgetTool(),
		NewTimeTool(),
	}

	out := make([]tool.BaseTool, 0, len(invokables))
	for _, t := range invokables {
		out = append(out, WrapToolSafe(t))
	}
	return out
}
