package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// 身份提供方的网络调用统一超时
var httpClient = &http.Client{Timeout: 10 * time.Second}

// WxSession 是微信 code2Session 接口的结果。
type WxSession struct {
	OpenID     string `json:"openid"`
	SessionKey string `json:"session_key"`
}

// WxCode2Session 用小程序登录 code 换取 openid。
func WxCode2Session(ctx context.Context, appid, secret, code string) (*WxSession, error) {
	u := fmt.Sprintf(
		"https://api.weixin.qq.com/sns/jscode2session?appid=%s&secret=%s&js_code=%s&grant_type=authorization_code",
		url.QueryEscape(appid), url.QueryEscape(secret), url.QueryEscape(code),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("code2Session 请求异常: %w", err)
	}
	defer resp.Body.Close()

	var data struct {
		WxSession
		ErrCode int    `json:"errcode"`
		ErrMsg  string `json:"errmsg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("code2Session 响应解析失败: %w", err)
	}
	if data.ErrCode != 0 {
		return nil, fmt.Errorf("code2Session 失败: %d %s", data.ErrCode, data.ErrMsg)
	}
	if data.OpenID == "" {
		return nil, fmt.Errorf("code2Session 返回空 openid")
	}
	return &data.WxSession, nil
}

// GithubUser 是 GitHub OAuth 换取到的用户信息。
type GithubUser struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// GithubOAuth 用授权码换 access_token，再取用户信息（H5 登录）。
func GithubOAuth(ctx context.Context, clientID, clientSecret, code string) (*GithubUser, error) {
	body, _ := json.Marshal(map[string]string{
		"client_id":     clientID,
		"client_secret": clientSecret,
		"code":          code,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://github.com/login/oauth/access_token", strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oauth 请求异常: %w", err)
	}
	defer resp.Body.Close()

	var tokenData struct {
		AccessToken      string `json:"access_token"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenData); err != nil {
		return nil, fmt.Errorf("oauth 响应解析失败: %w", err)
	}
	if tokenData.Error != "" {
		return nil, fmt.Errorf("oauth 失败: %s %s", tokenData.Error, tokenData.ErrorDescription)
	}

	userReq, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.github.com/user", nil)
	if err != nil {
		return nil, err
	}
	userReq.Header.Set("Authorization", "Bearer "+tokenData.AccessToken)
	userReq.Header.Set("Accept", "application/json")
	userReq.Header.Set("User-Agent", "travel-agent")

	userResp, err := httpClient.Do(userReq)
	if err != nil {
		return nil, fmt.Errorf("获取用户信息异常: %w", err)
	}
	defer userResp.Body.Close()

	var userData struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.NewDecoder(userResp.Body).Decode(&userData); err != nil {
		return nil, fmt.Errorf("用户信息解析失败: %w", err)
	}
	if userData.ID == 0 {
		return nil, fmt.Errorf("获取用户信息失败")
	}
	return &GithubUser{
		ID:        fmt.Sprintf("%d", userData.ID),
		Login:     userData.Login,
		AvatarURL: userData.AvatarURL,
	}, nil
}
