package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"strings"
	"time"
)

// 边界限制：请求体与单条消息的硬上限
const (
	MaxBodySize      = 10 * 1024 // 10KB
	MaxMessageLength = 2000      // 字符数（rune）
)

// ModelConfig 描述一个 OpenAI 兼容模型端点
type ModelConfig struct {
	Name    string
	BaseURL string
	APIKey  string
}

type WxConfig struct {
	AppID  string
	Secret string
}

type GithubConfig struct {
	ClientID     string
	ClientSecret string
}

type AuthConfig struct {
	APIKey      string // 静态调试用 key，可为空
	TokenSecret string // HMAC 签名密钥
	TokenTTL    time.Duration
}

type SecurityConfig struct {
	AllowedOrigins     []string
	RateLimitPerMinute int
}

type ESConfig struct {
	Address  string
	Username string
	Password string
}

type Config struct {
	Port     string
	Model    ModelConfig
	Wx       WxConfig
	Github   GithubConfig
	Auth     AuthConfig
	Security SecurityConfig
	ES       ESConfig
}

// Load 从环境变量构建配置。除模型 API Key 外所有项都有可用的默认值，
// TOKEN_SECRET 未配置时生成随机密钥（重启后旧 token 全部失效）。
func Load() *Config {
	return &Config{
		Port: getenv("PORT", "3000"),
		Model: ModelConfig{
			Name:    getenv("MODEL_NAME", "gpt-4o-mini"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			APIKey:  os.Getenv("OPENAI_API_KEY"),
		},
		Wx: WxConfig{
			AppID:  os.Getenv("WX_APPID"),
			Secret: os.Getenv("WX_SECRET"),
		},
		Github: GithubConfig{
			ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
			ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		},
		Auth: AuthConfig{
			APIKey:      os.Getenv("API_KEY"),
			TokenSecret: getenv("TOKEN_SECRET", randomSecret()),
			TokenTTL:    time.Duration(getenvInt("TOKEN_EXPIRE_HOURS", 168)) * time.Hour,
		},
		Security: SecurityConfig{
			AllowedOrigins:     splitList(os.Getenv("ALLOWED_ORIGINS")),
			RateLimitPerMinute: getenvInt("RATE_LIMIT", 30),
		},
		ES: ESConfig{
			Address:  os.Getenv("ES_ADDRESS"),
			Username: os.Getenv("ES_USERNAME"),
			Password: os.Getenv("ES_PASSWORD"),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand 不可用属于环境级故障
		panic(err)
	}
	return hex.EncodeToString(buf)
}
