package service

// CommandEvent はスラッシュコマンドによる問い合わせを表します
type CommandEvent struct {
	// ChannelID はコマンドが実行されたチャンネルのID
	ChannelID string

	// Text はコマンド引数のテキスト（"pending march" など）
	Text string

	// ResponseURL は遅延応答用のURL
	ResponseURL string
}

// MentionEvent はBotメンションによる問い合わせを表します
type MentionEvent struct {
	// ChannelID はメンションが投稿されたチャンネルのID
	ChannelID string

	// UserID はメンションを投稿したユーザーのID
	UserID string

	// Text はメッセージのテキスト（先頭のBotメンションを含む）
	Text string
}
