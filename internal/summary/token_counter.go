package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/cloudwego/eino/schema"
)

// TokenCounter 估算一组消息的总 token 数。
type TokenCounter func(ctx context.Context, msgs []*schema.Message) (int64, error)

// defaultCounter 使用 tiktoken 的 cl100k_base 编码计数，
// 角色和正文都计入（与 OpenAI 系模型的 chat 计费口径接近）。
func defaultCounter(ctx context.Context, msgs []*schema.Message) (int64, error) {
	const encoding = "cl100k_base"
	tkt, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return 0, fmt.Errorf("get encoding failed, encoding=%v, err=%w", encoding, err)
	}

	var total int64
	for _, m := range msgs {
		if m == nil {
			continue
		}

		var sb strings.Builder
		if m.Role != "" {
			sb.WriteString(string(m.Role))
			sb.WriteString("\n")
		}
		if m.Content != "" {
			sb.WriteString(m.Content)
			sb.WriteString("\n")
		}

		text := sb.String()
		if text == "" {
			continue
		}
		total += int64(len(tkt.Encode(text, nil, nil)))
	}
	return total, nil
}
