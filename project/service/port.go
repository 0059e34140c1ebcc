package service

import (
	"context"

	"github.com/slack-go/slack"
)

// SheetPort はスプレッドシート読み取りのポートです
type SheetPort interface {
	// ReadPendingPayments は Pending Payments シートの生の行を取得します
	ReadPendingPayments(ctx context.Context) ([][]any, error)

	// ReadCashflow は Data for chatbot シートの生の行を取得します
	ReadCashflow(ctx context.Context) ([][]any, error)
}

// SummaryPort は生成系 AI による要約のポートです
type SummaryPort interface {
	// Summarize はプロンプトを渡して生成テキストを取得します
	Summarize(ctx context.Context, prompt string) (string, error)
}

// SlackPort は Slack API によるメッセージ配信のポートです
type SlackPort interface {
	// PostText はチャンネルにプレーンテキストを投稿します
	PostText(ctx context.Context, channelID, text string) error

	// PostBlocks はチャンネルに Block Kit 形式のペイロードを投稿します
	PostBlocks(ctx context.Context, channelID string, blocks []slack.Block) error
}
