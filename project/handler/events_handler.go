package handler

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"finance-bot/project/dto"
	"finance-bot/project/infrastructure/httpsec"
	"finance-bot/project/service"
)

// 即時応答後のバックグラウンド処理に与えるタイムアウト
const backgroundTimeout = 30 * time.Second

// EventsHandler は Slack Events API からのイベントを処理します
type EventsHandler struct {
	signingSecret  string
	financeService service.FinanceService
}

// NewEventsHandler はイベントハンドラーを作成します
func NewEventsHandler(signingSecret string, financeService service.FinanceService) *EventsHandler {
	return &EventsHandler{
		signingSecret:  signingSecret,
		financeService: financeService,
	}
}

// ServeHTTP は Slack イベント受信エンドポイントです
// 署名検証 → url_verification 応答 → 即時 200 応答 → バックグラウンド処理 の順で進みます
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// リクエスト本体を読み込む（署名検証は受信した生のバイト列に対して行う）
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "リクエスト本体の読み込み失敗", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Slack 署名検証（url_verification を含むすべてのリクエスト）
	signature := r.Header.Get("X-Slack-Signature")
	timestamp := r.Header.Get("X-Slack-Request-Timestamp")
	if err := httpsec.VerifySlackSignature(h.signingSecret, signature, timestamp, string(body)); err != nil {
		log.Printf("events: 署名検証失敗: %v", err)
		http.Error(w, "署名検証失敗", http.StatusUnauthorized)
		return
	}

	// JSON パース。壊れたボディは空イベントとして扱い、クラッシュさせない
	var req dto.SlackEventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Printf("events: JSON パース失敗（空イベントとして続行）: %v", err)
	}

	// URL 検証はチャレンジ文字列をそのまま返して終了
	if req.Type == "url_verification" {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(req.Challenge))
		return
	}

	// event_callback のみ処理
	if req.Type != "event_callback" {
		w.WriteHeader(http.StatusOK)
		return
	}

	// app_mention 以外のイベントは無視
	if req.Event.Type != "app_mention" {
		w.WriteHeader(http.StatusOK)
		return
	}

	// Bot 自身のメッセージや bot_message は無視（返信しない）
	if req.Event.BotID != "" || req.Event.SubType == "bot_message" {
		w.WriteHeader(http.StatusOK)
		return
	}

	ev := service.MentionEvent{
		ChannelID: req.Event.Channel,
		UserID:    req.Event.User,
		Text:      req.Event.Text,
	}

	// Slack は即時応答を要求するため、データ取得・要約・返信は
	// 接続と切り離してバックグラウンドで実行する
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()

		if err := h.financeService.OnMention(ctx, &ev); err != nil {
			// 即時応答は送信済みのため、エラーはログのみ（二重返信しない）
			log.Printf("events: メンション処理エラー: %v", err)
		}
	}()

	w.WriteHeader(http.StatusOK)
}
