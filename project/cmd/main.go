package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"finance-bot/project/handler"
	"finance-bot/project/infrastructure/config"
	"finance-bot/project/infrastructure/gemini"
	"finance-bot/project/infrastructure/sheets"
	slackinfra "finance-bot/project/infrastructure/slack"
	"finance-bot/project/service"
)

func main() {
	ctx := context.Background()

	// 1. 設定を読み込む
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		log.Fatalf("設定読み込み失敗: %v", err)
	}

	// 2. 依存関係を初期化
	// Google Sheets クライアント
	sheetClient, err := sheets.NewClient(ctx, cfg.SheetID)
	if err != nil {
		log.Fatalf("Sheets クライアント初期化失敗: %v", err)
	}

	// Gemini 要約クライアント
	geminiClient := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	// Slack API ポート実装
	slackClient := slackinfra.NewSlackClient(cfg.SlackBotToken)

	// 3. サービス層を初期化
	financeService := service.NewFinanceService(sheetClient, geminiClient, slackClient)

	// 4. HTTP ハンドラーを設定
	mux := http.NewServeMux()

	// Slack イベント受信（メンション）
	mux.Handle("/slack/events", handler.NewEventsHandler(cfg.SlackSigningSecret, financeService))

	// Slack スラッシュコマンド
	mux.Handle("/slack/commands", handler.NewCommandsHandler(cfg.SlackSigningSecret, financeService))

	// ヘルスチェック
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// 5. サーバー起動
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("サーバー起動: %s", addr)

	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		log.Fatalf("サーバーエラー: %v", err)
	}
}
