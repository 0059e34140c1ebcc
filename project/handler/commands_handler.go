package handler

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"finance-bot/project/dto"
	"finance-bot/project/infrastructure/httpsec"
	"finance-bot/project/service"
)

// CommandsHandler は Slack スラッシュコマンド（/finance）を処理します
type CommandsHandler struct {
	signingSecret  string
	financeService service.FinanceService
}

// NewCommandsHandler はコマンドハンドラーを作成します
func NewCommandsHandler(signingSecret string, financeService service.FinanceService) *CommandsHandler {
	return &CommandsHandler{
		signingSecret:  signingSecret,
		financeService: financeService,
	}
}

// ServeHTTP は Slack スラッシュコマンド受信エンドポイントです
// 署名検証後すぐに "Processing…" を返し、本処理はバックグラウンドで実行します
func (h *CommandsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// body を読み込む（署名検証用）
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "リクエスト読み込み失敗", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Slack 署名検証
	if err := httpsec.VerifySlackSignature(h.signingSecret,
		r.Header.Get("X-Slack-Signature"),
		r.Header.Get("X-Slack-Request-Timestamp"),
		string(bodyBytes)); err != nil {
		log.Printf("commands: 署名検証失敗: %v", err)
		http.Error(w, "署名検証失敗", http.StatusUnauthorized)
		return
	}

	// form パース（bodyBytesから再構築）
	values := parseFormFromBytes(bodyBytes)

	var cmd dto.SlackCommandRequest
	cmd.Token = values.Get("token")
	cmd.TeamID = values.Get("team_id")
	cmd.ChannelID = values.Get("channel_id")
	cmd.UserID = values.Get("user_id")
	cmd.Command = values.Get("command")
	cmd.Text = values.Get("text")
	cmd.ResponseURL = values.Get("response_url")

	ev := service.CommandEvent{
		ChannelID:   cmd.ChannelID,
		Text:        cmd.Text,
		ResponseURL: cmd.ResponseURL,
	}

	// 本処理（シート読み取り・要約・返信）は接続と切り離して実行する
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()

		if err := h.financeService.OnCommand(ctx, &ev); err != nil {
			// 即時応答は送信済みのため、エラーはログのみ（二重返信しない）
			log.Printf("commands: コマンド処理エラー: %v", err)
		}
	}()

	// 即時応答（Slack の3秒タイムアウト対策）
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	resp := dto.SlackSlashResponse{
		ResponseType: "in_channel",
		Text:         "Processing…",
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("commands: 応答書き込み失敗: %v", err)
	}
}

// parseFormFromBytes はバイト列からURLエンコードされたフォームをパースします
func parseFormFromBytes(b []byte) formValues {
	values := make(formValues)
	for _, pair := range strings.Split(string(b), "&") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 {
			key, _ := url.QueryUnescape(parts[0])
			val, _ := url.QueryUnescape(parts[1])
			values[key] = append(values[key], val)
		}
	}
	return values
}

// formValues はurl.Valuesと同じインターフェースを提供
type formValues map[string][]string

func (v formValues) Get(key string) string {
	if vals, ok := v[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}
