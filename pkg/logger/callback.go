package logger

import (
	"context"
	"errors"
	"io"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/schema"
	"github.com/elastic/go-elasticsearch/v7"
)

// CallbackLogger 挂在 eino 编排图上，记录模型/工具节点的执行情况。
// 服务端场景下输出保持克制：单行日志 + 可选 ES 上报。
type CallbackLogger struct {
	Es *elasticsearch.Client
}

func (cb *CallbackLogger) OnStart(ctx context.Context, info *callbacks.RunInfo, input callbacks.CallbackInput) context.Context {
	if info == nil {
		return ctx
	}
	if err := SendWrappedLog(cb.Es, MetricsIndex, "callback.start", input); err != nil {
		Warnf("[Callback] ES 日志写入失败: %v", err)
	}
	Infof("[Agent] %s/%s 开始", info.Component, info.Name)
	return ctx
}

func (cb *CallbackLogger) OnEnd(ctx context.Context, info *callbacks.RunInfo, output callbacks.CallbackOutput) context.Context {
	if info == nil {
		return ctx
	}
	if err := SendWrappedLog(cb.Es, MetricsIndex, "callback.end", output); err != nil {
		Warnf("[Callback] ES 日志写入失败: %v", err)
	}
	if msg, ok := output.(*schema.Message); ok {
		if len(msg.ToolCalls) > 0 {
			for _, tc := range msg.ToolCalls {
				Infof("[Agent] %s 调用工具 %s", info.Name, tc.Function.Name)
			}
		} else {
			Infof("[Agent] %s 完成: %s", info.Name, truncate(msg.Content, 80))
		}
	} else {
		Infof("[Agent] %s/%s 完成", info.Component, info.Name)
	}
	return ctx
}

func (cb *CallbackLogger) OnError(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
	name := "unknown"
	if info != nil {
		name = info.Name
	}
	Errorf("[Agent] %s 出错: %v", name, err)
	return ctx
}

func (cb *CallbackLogger) OnStartWithStreamInput(ctx context.Context, info *callbacks.RunInfo,
	input *schema.StreamReader[callbacks.CallbackInput]) context.Context {
	defer input.Close()
	return ctx
}

func (cb *CallbackLogger) OnEndWithStreamOutput(ctx context.Context, info *callbacks.RunInfo,
	output *schema.StreamReader[callbacks.CallbackOutput]) context.Context {

	go func() {
		defer func() {
			if err := recover(); err != nil {
				Warnf("[Callback] 流式输出 panic: %v", err)
			}
		}()
		defer output.Close() // remember to close the stream in defer

		for {
			_, err := output.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return
			}
		}
	}()
	return ctx
}

// 辅助函数
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
