// Package events 定义推送给前端的 SSE 事件结构。
package events

import (
	"encoding/json"
	"fmt"
	"io"
)

// Event types for frontend consumption.
const (
	// 一段增量回复文本
	TypeChunk = "chunk"
	// 回复结束，content 为拼接后的完整回复
	TypeDone = "done"
	// 出错，content 为用户可读的错误文案
	TypeError = "error"
)

// Event is the unified event structure streamed to the frontend over SSE.
type Event struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

func Chunk(content string) Event { return Event{Type: TypeChunk, Content: content} }

// Done 收尾事件，带上完整回复，客户端可据此校验拼接结果。
func Done(fullReply string) Event { return Event{Type: TypeDone, Content: fullReply} }

func Error(message string) Event { return Event{Type: TypeError, Content: message} }

// WriteTo 按 SSE 线格式写出一条 `data: {...}` 事件。
// 调用方负责在写出后 Flush。
func (e Event) WriteTo(w io.Writer) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", raw)
	return err
}
