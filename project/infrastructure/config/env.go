package config

import (
	"context"
	"fmt"
	"os"

	"finance-bot/project/infrastructure/secret"
)

// Config は環境変数から読み込まれるアプリケーション設定を表します
type Config struct {
	// 基本設定
	GcpProject string

	// スプレッドシート設定
	SheetID string

	// Slack API設定（Secret Manager から読み込み）
	SlackSigningSecret string
	SlackBotToken      string

	// Gemini API設定
	GeminiAPIKey string // Secret Manager から読み込み
	GeminiModel  string
}

// NewConfig は環境変数から設定を読み込み、Config構造体を返します
// センシティブな情報（署名シークレット、Botトークン、Gemini APIキー）は
// 環境変数で直接指定されていない場合、Secret Manager から取得します
func NewConfig(ctx context.Context) (*Config, error) {
	sheetID, err := requireEnv("SHEET_ID")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GcpProject: os.Getenv("GCP_PROJECT"),
		SheetID:    sheetID,
		GeminiModel: func() string {
			if m := os.Getenv("GEMINI_MODEL"); m != "" {
				return m
			}
			return "gemini-2.5-flash"
		}(),
	}

	// Secret Manager クライアントは必要になった時点で1度だけ初期化する
	var secretMgr *secret.Manager
	defer func() {
		if secretMgr != nil {
			secretMgr.Close()
		}
	}()

	loadSecret := func(envKey, secretName string) (string, error) {
		// ローカル実行用に環境変数を優先
		if v := os.Getenv(envKey); v != "" {
			return v, nil
		}
		if cfg.GcpProject == "" {
			return "", fmt.Errorf("config: %s が未設定です（環境変数 %s か GCP_PROJECT を設定してください）", secretName, envKey)
		}
		if secretMgr == nil {
			secretMgr, err = secret.NewManager(ctx, cfg.GcpProject)
			if err != nil {
				return "", fmt.Errorf("config: Secret Manager 初期化失敗: %w", err)
			}
		}
		v, err := secretMgr.GetSecret(ctx, secretName)
		if err != nil {
			return "", fmt.Errorf("config: %s 取得失敗: %w", secretName, err)
		}
		return v, nil
	}

	if cfg.SlackSigningSecret, err = loadSecret("SLACK_SIGNING_SECRET", "slack-signing-secret"); err != nil {
		return nil, err
	}
	if cfg.SlackBotToken, err = loadSecret("SLACK_BOT_TOKEN", "slack-bot-token"); err != nil {
		return nil, err
	}
	if cfg.GeminiAPIKey, err = loadSecret("GEMINI_API_KEY", "gemini-api-key"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// requireEnv は必須の環境変数を取得し、存在しない場合はエラーを返します
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("config: 必須の環境変数が未設定です: %s", key)
	}
	return value, nil
}
