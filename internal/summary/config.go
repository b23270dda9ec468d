package summary

import (
	"errors"

	"github.com/cloudwego/eino/components/model"

	"travel_agent/pkg/logger"
)

var (
	// ErrConfigNil is returned when the config is nil.
	ErrConfigNil = errors.New("config is nil")

	// ErrModelRequired is returned when the summarizer model is not provided.
	ErrModelRequired = errors.New("model is required in config")
)

// 默认压缩参数：超过 20 条触发，压缩后保留最近 6 条逐字消息
const (
	DefaultThreshold  = 20
	DefaultKeepRecent = 6
)

// Config 控制历史压缩的触发时机和压缩方式。
//
// Required fields:
//   - Model: 生成摘要用的模型（建议低温度、小输出上限的独立配置）
//
// Optional fields:
//   - Threshold: 消息条数触发阈值（默认 20）
//   - KeepRecent: 压缩后保留的最近消息条数（默认 6）
//   - MaxHistoryTokens: 按 token 的辅助触发阈值，0 表示关闭（默认关闭）
//   - SystemPrompt: 摘要指令（默认 PromptOfSummary）
//   - Counter: 自定义 token 计数器（默认 cl100k_base 编码）
//   - Metrics: ES 打点上报器，nil 时跳过
type Config struct {
	// Model is the language model used to generate summaries.
	Model model.BaseChatModel

	// Threshold 是触发压缩的消息条数。历史条数 > Threshold 时才会压缩，
	// 短对话因此零摘要开销。
	Threshold int

	// KeepRecent 是压缩后逐字保留的最近消息条数。
	KeepRecent int

	// MaxHistoryTokens 是可选的 token 辅助触发阈值：历史总 token 超过该值时
	// 即使条数未达 Threshold 也触发压缩。0 或负数表示关闭。
	MaxHistoryTokens int

	// SystemPrompt is the system prompt for the summarizer model.
	SystemPrompt string

	// Counter is a custom function for counting tokens in messages.
	Counter TokenCounter

	// Metrics 上报压缩事件；nil 时静默跳过。
	Metrics *logger.Metrics
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}
	if c.Model == nil {
		return ErrModelRequired
	}
	return nil
}

// GetThreshold returns the effective threshold, using default if not set.
func (c *Config) GetThreshold() int {
	if c.Threshold <= 0 {
		return DefaultThreshold
	}
	return c.Threshold
}

// GetKeepRecent returns the effective keep window, using default if not set.
func (c *Config) GetKeepRecent() int {
	if c.KeepRecent <= 0 {
		return DefaultKeepRecent
	}
	return c.KeepRecent
}
