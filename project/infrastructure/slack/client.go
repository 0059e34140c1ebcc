package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// SlackClient は service.SlackPort の Slack SDK 実装です
type SlackClient struct {
	api *slack.Client
}

// NewSlackClient は Slack クライアントを初期化します
func NewSlackClient(botToken string) *SlackClient {
	return &SlackClient{
		api: slack.New(botToken),
	}
}

// PostText はチャンネルにプレーンテキストのメッセージを投稿します
func (sc *SlackClient) PostText(ctx context.Context, channelID, text string) error {
	_, _, err := sc.api.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return fmt.Errorf("slack: メッセージ投稿失敗 (channel=%s): %w", channelID, err)
	}

	return nil
}

// PostBlocks はチャンネルに Block Kit 形式のメッセージを投稿します
func (sc *SlackClient) PostBlocks(ctx context.Context, channelID string, blocks []slack.Block) error {
	_, _, err := sc.api.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return fmt.Errorf("slack: ブロック投稿失敗 (channel=%s): %w", channelID, err)
	}

	return nil
}
