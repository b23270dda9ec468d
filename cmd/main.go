package main

import (
	"context"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/elastic/go-elasticsearch/v7"

	"travel_agent/internal/assistant"
	"travel_agent/internal/auth"
	"travel_agent/internal/config"
	"travel_agent/internal/prompts"
	"travel_agent/internal/ratelimit"
	"travel_agent/internal/server"
	"travel_agent/internal/session"
	conversationsummary "travel_agent/internal/summary"
	"travel_agent/internal/tools"
	"travel_agent/pkg/logger"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	logger.Infof("🌍 旅伴 · 旅行规划助手启动中")
	if cfg.Model.APIKey == "" {
		logger.Warnf("💡 提示：未配置 OPENAI_API_KEY，模型调用将失败")
	}

	promptMap, err := prompts.GetPrompts()
	if err != nil {
		logger.Fatalf("failed to load prompts: %v", err)
	}

	// ES 可选，不配地址就只打本地日志
	var esClient *elasticsearch.Client
	if cfg.ES.Address != "" {
		esClient, err = elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{cfg.ES.Address},
			Username:  cfg.ES.Username,
			Password:  cfg.ES.Password,
		})
		if err != nil {
			logger.Warnf("创建 ES 客户端失败，降级为本地日志: %v", err)
			esClient = nil
		}
	}
	metrics := logger.NewMetrics(esClient)

	chatModel, err := newChatModel(ctx, cfg, 0.7, 0)
	if err != nil {
		logger.Fatalf("failed to create chat model: %v", err)
	}
	// 摘要走独立的模型实例：温度 0 求稳定，输出限长
	summaryModel, err := newChatModel(ctx, cfg, 0, 500)
	if err != nil {
		logger.Fatalf("failed to create summary model: %v", err)
	}

	compactor, err := conversationsummary.New(ctx, &conversationsummary.Config{
		Model:   summaryModel,
		Metrics: metrics,
	})
	if err != nil {
		logger.Fatalf("create history compactor failed: %v", err)
	}

	rAgent, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: chatModel,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: tools.All(),
		},
		MaxStep: 20,
	})
	if err != nil {
		logger.Fatalf("failed to create agent: %v", err)
	}

	sessions := session.NewStore(session.DefaultTTL)

	tokens := auth.NewTokenStore(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	tokens.StartSweeper()
	defer tokens.Close()

	limiter := ratelimit.New(cfg.Security.RateLimitPerMinute)
	limiter.StartSweeper()
	defer limiter.Close()

	bot := assistant.New(assistant.Config{
		Agent:     rAgent,
		Compactor: compactor,
		Sessions:  sessions,
		Persona:   promptMap["persona"],
		Metrics:   metrics,
		AgentOpts: []agent.AgentOption{
			agent.WithComposeOptions(compose.WithCallbacks(&logger.CallbackLogger{Es: esClient})),
		},
	})

	srv := server.New(cfg, bot, tokens, limiter, metrics)
	logger.Infof("🤖 模型: %s | 限流: %d 次/分钟 | token 有效期: %v",
		cfg.Model.Name, cfg.Security.RateLimitPerMinute, cfg.Auth.TokenTTL)
	if err := srv.Run(); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}

func newChatModel(ctx context.Context, cfg *config.Config, temperature float32, maxTokens int) (model.ToolCallingChatModel, error) {
	mc := &openai.ChatModelConfig{
		APIKey:      cfg.Model.APIKey,
		Model:       cfg.Model.Name,
		BaseURL:     cfg.Model.BaseURL,
		Temperature: &temperature,
		Timeout:     90 * time.Second,
	}
	if maxTokens > 0 {
		mc.MaxTokens = &maxTokens
	}
	return openai.NewChatModel(ctx, mc)
}
