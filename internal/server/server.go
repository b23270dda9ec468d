// Package server 提供 HTTP 网关：登录签发 token、聊天（同步 + SSE 流式）、
// 会话清除，以及 IP/用户双层限流。
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"travel_agent/internal/config"
	"travel_agent/internal/ratelimit"
	"travel_agent/pkg/logger"
)

// ChatService 是网关依赖的对话能力，生产环境由 assistant.Assistant 实现。
type ChatService interface {
	Chat(ctx context.Context, sessionID, text string) (string, error)
	StreamChat(ctx context.Context, sessionID, text string, onChunk func(chunk string) error) (string, error)
	ClearHistory(sessionID string)
}

// TokenVerifier 校验 bearer token 并返回绑定的身份。
type TokenVerifier interface {
	Issue(identity string) string
	Verify(token string) (string, bool)
}

type Server struct {
	cfg     *config.Config
	chat    ChatService
	tokens  TokenVerifier
	limiter *ratelimit.Limiter
	metrics *logger.Metrics
	handler http.Handler
}

func New(cfg *config.Config, chat ChatService, tokens TokenVerifier, limiter *ratelimit.Limiter, metrics *logger.Metrics) *Server {
	if metrics == nil {
		metrics = logger.NewMetrics(nil)
	}
	s := &Server{
		cfg:     cfg,
		chat:    chat,
		tokens:  tokens,
		limiter: limiter,
		metrics: metrics,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/login/h5", s.handleLoginH5).Methods(http.MethodPost)
	r.Handle("/api/chat", s.protected(s.handleChat)).Methods(http.MethodPost)
	r.Handle("/api/chat/stream", s.protected(s.handleChatStream)).Methods(http.MethodPost)
	r.Handle("/api/clear", s.protected(s.handleClear)).Methods(http.MethodPost)
	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)

	origins := cfg.Security.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	s.handler = c.Handler(r)
	return s
}

// Handler 暴露完整的处理链，测试用 httptest 直接打。
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		// SSE 响应不能设 WriteTimeout，长对话流会被掐断
	}
	logger.Infof("[Server] listening on http://localhost:%s", s.cfg.Port)
	return srv.ListenAndServe()
}
