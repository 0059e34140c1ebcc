package httpsec

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"strconv"
	"time"
)

// リプレイ攻撃対策の許容時刻差（秒）
const replayWindowSeconds = 300

// VerifySlackSignature は Slack からのリクエストの署名を検証します
// リクエストの X-Slack-Signature ヘッダと X-Slack-Request-Timestamp ヘッダを確認し、
// 改ざんやリプレイ攻撃から保護します
// body は受信したままの生のリクエストボディであること（再シリアライズ後の JSON は
// 元のバイト列と一致せず、署名検証が必ず失敗します）
func VerifySlackSignature(signingSecret, signature, timestamp, body string) error {
	// 必須項目の確認
	if signingSecret == "" {
		return fmt.Errorf("signing secret not configured")
	}
	if signature == "" || timestamp == "" {
		return fmt.Errorf("missing signature headers")
	}

	// タイムスタンプの検証（5分以内）
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp format: %w", err)
	}

	now := time.Now().Unix()
	if abs(now-ts) > replayWindowSeconds {
		return fmt.Errorf("request timestamp too old: now=%d, ts=%d", now, ts)
	}

	// 署名の検証
	// Slack署名: "v0=<hash>"
	// hash = HMAC-SHA256("v0:<timestamp>:<body>", signingSecret)
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	expectedSignature := computeSignature(signingSecret, baseString)

	// 定時間比較（タイミング攻撃対策）
	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		return fmt.Errorf("signature mismatch")
	}

	return nil
}

// computeSignature は Slack 署名を計算します
func computeSignature(signingSecret, baseString string) string {
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	hash := h.Sum(nil)
	// 16進数文字列に変換して "v0=" プレフィックスを付与
	return fmt.Sprintf("v0=%x", hash)
}

// abs は絶対値を計算します
func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
