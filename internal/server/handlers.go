package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"travel_agent/internal/auth"
	"travel_agent/internal/config"
	"travel_agent/internal/events"
	"travel_agent/pkg/logger"
)

// 单个回合允许模型跑多步工具调用，给足余量
const chatTimeout = 2 * time.Minute

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

type loginRequest struct {
	Code string `json:"code"`
}

// handleLogin 小程序登录：code 换 openid，签发 bearer token。
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Wx.AppID == "" || s.cfg.Wx.Secret == "" {
		writeError(w, http.StatusInternalServerError, "微信登录未配置")
		return
	}
	ip := clientIP(r)
	if !s.limiter.Allow("login:" + ip) {
		writeError(w, http.StatusTooManyRequests, "请求过于频繁")
		return
	}

	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "缺少 code 参数")
		return
	}

	wxSess, err := auth.WxCode2Session(r.Context(), s.cfg.Wx.AppID, s.cfg.Wx.Secret, req.Code)
	if err != nil {
		logger.Warnf("[登录] code2Session 失败: %v", err)
		writeError(w, http.StatusUnauthorized, "微信登录失败，请重试")
		return
	}

	token := s.tokens.Issue(wxSess.OpenID)
	logger.Infof("[登录] 用户 %s*** 登录成功", head(wxSess.OpenID, 8))
	s.metrics.Emit(logger.MetricsEvent{LogType: logger.LTLogin, Identity: wxSess.OpenID})
	writeJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_in": int64(s.cfg.Auth.TokenTTL.Seconds()),
	})
}

// handleLoginH5 H5 端 GitHub OAuth 登录。
func (s *Server) handleLoginH5(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Github.ClientID == "" || s.cfg.Github.ClientSecret == "" {
		writeError(w, http.StatusInternalServerError, "GitHub 登录未配置")
		return
	}
	ip := clientIP(r)
	if !s.limiter.Allow("login:" + ip) {
		writeError(w, http.StatusTooManyRequests, "请求过于频繁")
		return
	}

	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "缺少 code 参数")
		return
	}

	ghUser, err := auth.GithubOAuth(r.Context(), s.cfg.Github.ClientID, s.cfg.Github.ClientSecret, req.Code)
	if err != nil {
		logger.Warnf("[H5登录] GitHub OAuth 失败: %v", err)
		writeError(w, http.StatusUnauthorized, "GitHub 授权失败，请重试")
		return
	}

	identity := "gh:" + ghUser.ID
	token := s.tokens.Issue(identity)
	logger.Infof("[H5登录] GitHub 用户 %s 登录成功", ghUser.Login)
	s.metrics.Emit(logger.MetricsEvent{LogType: logger.LTLoginH5, Identity: identity})
	writeJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_in": int64(s.cfg.Auth.TokenTTL.Seconds()),
		"user": map[string]string{
			"login":      ghUser.Login,
			"avatar_url": ghUser.AvatarURL,
		},
	})
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// validateChat 解析并校验聊天请求，失败时已写出响应并返回 false。
func (s *Server) validateChat(w http.ResponseWriter, r *http.Request) (chatRequest, bool) {
	var req chatRequest
	if err := decodeBody(w, r, &req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "缺少 message 参数")
		return req, false
	}
	if utf8.RuneCountInString(req.Message) > config.MaxMessageLength {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("消息过长，请控制在 %d 字以内", config.MaxMessageLength))
		return req, false
	}
	if req.SessionID == "" {
		// 未带会话 id 时为其新开一个，响应里回传
		req.SessionID = uuid.NewString()
	}
	return req, true
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	req, ok := s.validateChat(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()

	reply, err := s.chat.Chat(ctx, req.SessionID, req.Message)
	if err != nil {
		logger.Errorf("[Chat] session=%s: %v", req.SessionID, err)
		writeError(w, http.StatusInternalServerError, "服务处理异常，请稍后重试")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"reply":      reply,
		"session_id": req.SessionID,
	})
}

// handleChatStream 以 SSE 推送增量回复。
// 响应头写出之后出错只能走带内 error 事件，没法再改状态码。
func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.validateChat(w, r)
	if !ok {
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		writeError(w, http.StatusInternalServerError, "服务处理异常，请稍后重试")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	full, err := s.chat.StreamChat(ctx, req.SessionID, req.Message, func(chunk string) error {
		if werr := events.Chunk(chunk).WriteTo(w); werr != nil {
			return werr
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		logger.Errorf("[ChatStream] session=%s: %v", req.SessionID, err)
		_ = events.Error("服务处理异常，请稍后重试").WriteTo(w)
		flusher.Flush()
		return
	}

	_ = events.Done(full).WriteTo(w)
	flusher.Flush()
}

type clearRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	var req clearRequest
	// 请求体可为空（清默认会话），但给了内容就必须是合法 JSON
	if err := decodeBody(w, r, &req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "无效的请求格式")
		return
	}
	if req.SessionID == "" {
		req.SessionID = requestIdentity(r)
	}

	s.chat.ClearHistory(req.SessionID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "会话已清除"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found")
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
