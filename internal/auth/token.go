package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/gopkg/util/gopool"

	"travel_agent/pkg/logger"
)

// 过期 token 的后台清理间隔
const sweepInterval = 5 * time.Minute

type tokenRecord struct {
	identity  string
	expiresAt time.Time
}

// TokenStore 负责签发和校验带 HMAC 签名的 bearer token。
// token 结构：base64url(identity:毫秒时间戳:随机数) + "." + hex(HMAC-SHA256)。
// 签名保证 token 未被篡改，store 记录保证过期和撤销即时生效。
type TokenStore struct {
	secret []byte
	ttl    time.Duration

	mu     sync.Mutex
	tokens map[string]tokenRecord

	now  func() time.Time
	done chan struct{}
}

// NewTokenStore 创建 token 存储，ttl 为签发 token 的有效期。
func NewTokenStore(secret string, ttl time.Duration) *TokenStore {
	return &TokenStore{
		secret: []byte(secret),
		ttl:    ttl,
		tokens: make(map[string]tokenRecord),
		now:    time.Now,
		done:   make(chan struct{}),
	}
}

// Issue 为指定身份签发一个新 token。
func (s *TokenStore) Issue(identity string) string {
	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); err != nil {
		panic(err)
	}
	payload := fmt.Sprintf("%s:%d:%s", identity, s.now().UnixMilli(), hex.EncodeToString(nonce))
	token := base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + s.sign(payload)

	s.mu.Lock()
	s.tokens[token] = tokenRecord{
		identity:  identity,
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()

	return token
}

// Verify 校验 token，返回绑定的身份。格式错误、签名不符、记录缺失、
// 已过期统一返回 ("", false)，不向调用方区分失败原因。
func (s *TokenStore) Verify(token string) (string, bool) {
	dot := strings.LastIndex(token, ".")
	if dot < 0 {
		return "", false
	}
	payloadB64, sig := token[:dot], token[dot+1:]

	payload, err := base64.RawURLEncoding.DecodeString(payloadB64)
	if err != nil {
		return "", false
	}
	expected := s.sign(string(payload))
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.tokens[token]
	if !ok {
		return "", false
	}
	if s.now().After(record.expiresAt) {
		delete(s.tokens, token)
		return "", false
	}
	return record.identity, true
}

// Revoke 使一个 token 立即失效。
func (s *TokenStore) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// Len 返回当前存活的 token 数量。
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// StartSweeper 启动后台清理，定期剔除过期 token，防止只签发不校验时无限增长。
func (s *TokenStore) StartSweeper() {
	gopool.Go(func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.sweep(); n > 0 {
					logger.Infof("[Auth] 清理过期 token %d 个", n)
				}
			case <-s.done:
				return
			}
		}
	})
}

// Close 停止后台清理
func (s *TokenStore) Close() {
	close(s.done)
}

func (s *TokenStore) sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, record := range s.tokens {
		if now.After(record.expiresAt) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}

func (s *TokenStore) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
