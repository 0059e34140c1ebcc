package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client は Gemini generateContent API を呼び出す要約クライアントです
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	endpoint   string // テスト時の差し替え用。空の場合は baseURL
}

// NewClient は Gemini クライアントを初期化します
func NewClient(apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		model:      model,
	}
}

// generateContent リクエスト・レスポンスの最小構造
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Summarize はプロンプトを Gemini に渡し、生成されたテキストを返します
// レスポンスが期待した JSON 構造でない場合は、受信したボディをそのまま返します
// （壊れたレスポンスでエラーにしない）
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini: リクエスト作成失敗: %w", err)
	}

	endpoint := c.endpoint
	if endpoint == "" {
		endpoint = baseURL
	}
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", endpoint, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: リクエスト作成失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: API 呼び出し失敗: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: レスポンス読み取り失敗: %w", err)
	}

	return extractText(raw), nil
}

// extractText はレスポンスボディから生成テキストを取り出します
// candidates 構造をパースできない場合は生のボディを返します
func extractText(raw []byte) string {
	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && len(parsed.Candidates) > 0 {
		texts := make([]string, 0, len(parsed.Candidates[0].Content.Parts))
		for _, p := range parsed.Candidates[0].Content.Parts {
			texts = append(texts, p.Text)
		}
		if joined := strings.Join(texts, "\n"); joined != "" {
			return joined
		}
	}
	return string(raw)
}
