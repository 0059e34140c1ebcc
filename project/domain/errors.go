package domain

import "errors"

// ドメインエラー定義
var (
	// ErrNoResults はフィルタ適用後に対象レコードが1件も残らなかった場合のエラー
	ErrNoResults = errors.New("ドメイン: 該当するレコードがありません")

	// ErrInvalid は不正な値が設定された場合のエラー
	ErrInvalid = errors.New("ドメイン: 不正な値です")
)
