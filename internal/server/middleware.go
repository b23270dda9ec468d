package server

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"travel_agent/internal/config"
	"travel_agent/pkg/logger"
)

// identityKey 是鉴权通过后塞进请求 Header 的内部字段，
// 只在进程内流转，不回传给客户端。
const identityHeader = "X-Internal-Identity"

// 免限流的特殊身份
const (
	identityDev    = "dev"
	identityAPIKey = "apikey"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// clientIP 取反向代理头里的真实 IP，没有代理时退回连接地址。
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// decodeBody 解析 JSON 请求体，带 10KB 硬上限。
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxBodySize)
	return json.NewDecoder(r.Body).Decode(dst)
}

// authenticate 按优先级认定请求身份：
//  1. Bearer token（登录签发）→ 绑定的用户身份
//  2. 静态 API key（Bearer 值或 api_key 查询参数）→ "apikey"
//  3. 完全没配任何凭证机制 → 开发身份 "dev"
//
// 返回空串表示未授权。
func (s *Server) authenticate(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		raw := strings.TrimPrefix(authz, "Bearer ")
		if identity, ok := s.tokens.Verify(raw); ok {
			return identity
		}
		if s.cfg.Auth.APIKey != "" && raw == s.cfg.Auth.APIKey {
			return identityAPIKey
		}
	}
	if s.cfg.Auth.APIKey != "" && r.URL.Query().Get("api_key") == s.cfg.Auth.APIKey {
		return identityAPIKey
	}
	if s.cfg.Auth.APIKey == "" && s.cfg.Wx.AppID == "" && s.cfg.Github.ClientID == "" {
		return identityDev
	}
	return ""
}

// protected 包住需要鉴权的接口：IP 限流 → 鉴权 → 用户级限流。
// 限流和鉴权失败对外只给笼统文案，不区分具体原因。
func (s *Server) protected(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !s.limiter.Allow(ip) {
			logger.Warnf("[安全] 频率限制触发: %s", ip)
			writeError(w, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			return
		}

		identity := s.authenticate(r)
		if identity == "" {
			logger.Warnf("[安全] 鉴权失败: %s", ip)
			writeError(w, http.StatusUnauthorized, "未授权，请先登录")
			return
		}

		if identity != identityDev && identity != identityAPIKey {
			if !s.limiter.Allow("user:" + identity) {
				writeError(w, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
				return
			}
		}

		r.Header.Set(identityHeader, identity)
		next(w, r)
	})
}

func requestIdentity(r *http.Request) string {
	return r.Header.Get(identityHeader)
}
