package service

import "strings"

// Intent はコマンドテキストから分類された問い合わせ種別です
type Intent int

const (
	// IntentFreeform はキーワードに一致しない自由質問（AI に直接渡す）
	IntentFreeform Intent = iota

	// IntentPending は未回収請求の一覧・集計
	IntentPending

	// IntentCashflow はキャッシュフローの一覧・集計
	IntentCashflow
)

// ClassifyIntent はコマンドテキストを Intent に分類します
// 大文字小文字を区別しない部分一致で判定し、"pending" を "cash" より先に
// 評価します（両方含むテキストは IntentPending）
func ClassifyIntent(text string) Intent {
	t := strings.ToLower(text)

	if strings.Contains(t, "pending") {
		return IntentPending
	}
	if strings.Contains(t, "cashflow") || strings.Contains(t, "cash") {
		return IntentCashflow
	}
	return IntentFreeform
}

// ReportPeriod は集計対象月の指定を表します
type ReportPeriod struct {
	// Month は月のインデックス（0=1月 〜 11=12月）
	Month int
}

// 月の3文字略称（英語）。インデックスがそのまま月インデックスになります
var monthAbbrevs = [12]string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// ExtractPeriod はテキストから月指定を抽出します
// 3文字略称の部分一致（大文字小文字を区別しない）で判定し、
// 一致しない場合は nil（フィルタなし）を返します
func ExtractPeriod(text string) *ReportPeriod {
	t := strings.ToLower(text)
	for i, abbrev := range monthAbbrevs {
		if strings.Contains(t, abbrev) {
			return &ReportPeriod{Month: i}
		}
	}
	return nil
}
