package httpsec

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sign はテスト用に正しい署名を計算します
func sign(secret, timestamp, body string) string {
	return computeSignature(secret, fmt.Sprintf("v0:%s:%s", timestamp, body))
}

func TestVerifySlackSignature(t *testing.T) {
	secret := "8f742231b10e8888abcd99yyyzzz85a5"
	body := `{"type":"event_callback","event":{"type":"app_mention","text":"pending march"}}`
	now := strconv.FormatInt(time.Now().Unix(), 10)

	t.Run("正しい署名は検証に成功する", func(t *testing.T) {
		err := VerifySlackSignature(secret, sign(secret, now, body), now, body)
		require.NoError(t, err)
	})

	t.Run("ボディが1バイトでも違えば失敗する", func(t *testing.T) {
		tampered := body[:len(body)-1] + "x"
		err := VerifySlackSignature(secret, sign(secret, now, body), now, tampered)
		assert.Error(t, err)
	})

	t.Run("シークレットが違えば失敗する", func(t *testing.T) {
		err := VerifySlackSignature("wrong-secret", sign(secret, now, body), now, body)
		assert.Error(t, err)
	})

	t.Run("署名が改ざんされていれば失敗する", func(t *testing.T) {
		sig := sign(secret, now, body)
		tampered := sig[:len(sig)-1] + "0"
		if tampered == sig {
			tampered = sig[:len(sig)-1] + "1"
		}
		err := VerifySlackSignature(secret, tampered, now, body)
		assert.Error(t, err)
	})

	t.Run("シークレット未設定は失敗する", func(t *testing.T) {
		err := VerifySlackSignature("", sign(secret, now, body), now, body)
		assert.Error(t, err)
	})

	t.Run("署名ヘッダ欠落は失敗する", func(t *testing.T) {
		err := VerifySlackSignature(secret, "", now, body)
		assert.Error(t, err)
	})

	t.Run("タイムスタンプヘッダ欠落は失敗する", func(t *testing.T) {
		err := VerifySlackSignature(secret, sign(secret, now, body), "", body)
		assert.Error(t, err)
	})

	t.Run("数値でないタイムスタンプは失敗する", func(t *testing.T) {
		err := VerifySlackSignature(secret, sign(secret, "abc", body), "abc", body)
		assert.Error(t, err)
	})
}

func TestVerifySlackSignature_ReplayWindow(t *testing.T) {
	secret := "8f742231b10e8888abcd99yyyzzz85a5"
	body := "payload"

	// 署名自体は正しくても、5分を超えた時刻差は過去・未来ともに拒否する
	cases := map[string]int64{
		"301秒過去":  time.Now().Unix() - 301,
		"1時間過去":   time.Now().Add(-time.Hour).Unix(),
		"301秒未来":  time.Now().Unix() + 301,
		"1時間未来":   time.Now().Add(time.Hour).Unix(),
	}

	for name, ts := range cases {
		t.Run(name, func(t *testing.T) {
			timestamp := strconv.FormatInt(ts, 10)
			err := VerifySlackSignature(secret, sign(secret, timestamp, body), timestamp, body)
			assert.Error(t, err)
		})
	}

	t.Run("窓内の時刻差は許容する", func(t *testing.T) {
		timestamp := strconv.FormatInt(time.Now().Unix()-200, 10)
		err := VerifySlackSignature(secret, sign(secret, timestamp, body), timestamp, body)
		assert.NoError(t, err)
	})
}
