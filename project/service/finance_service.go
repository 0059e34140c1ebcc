package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"finance-bot/project/domain"
)

// FinanceService は財務問い合わせの分類・集計・返信を管理するサービスです
type FinanceService interface {
	// OnCommand はスラッシュコマンド受信時に呼ばれ、問い合わせを処理して返信します
	// （HTTP レスポンスによる即時応答は handler 側で送信済み）
	OnCommand(ctx context.Context, ev *CommandEvent) error

	// OnMention はBotメンション受信時に呼ばれ、処理中の応答を投稿したうえで
	// 問い合わせを処理して返信します
	OnMention(ctx context.Context, ev *MentionEvent) error
}

// financeService は FinanceService の実装です
type financeService struct {
	sheets SheetPort
	ai     SummaryPort
	sp     SlackPort
	now    func() time.Time // テスト時の差し替え用
}

// NewFinanceService は FinanceService のインスタンスを作成します
func NewFinanceService(sheets SheetPort, ai SummaryPort, sp SlackPort) FinanceService {
	return &financeService{
		sheets: sheets,
		ai:     ai,
		sp:     sp,
		now:    time.Now,
	}
}

// 先頭のBotメンション（<@U123ABC> 形式）を除去するためのパターン
var mentionPattern = regexp.MustCompile(`<@[^>]+>`)

// OnCommand はスラッシュコマンドの問い合わせを処理します
func (fs *financeService) OnCommand(ctx context.Context, ev *CommandEvent) error {
	return fs.answer(ctx, ev.ChannelID, ev.Text)
}

// OnMention はメンションの問い合わせを処理します
// メンション文字列を除去したテキストで分類し、先に処理中の応答を投稿します
func (fs *financeService) OnMention(ctx context.Context, ev *MentionEvent) error {
	text := strings.TrimSpace(mentionPattern.ReplaceAllString(ev.Text, ""))

	// 処理中であることを先に伝える（データ取得・要約より前）
	ack := fmt.Sprintf("<@%s> Processing…", ev.UserID)
	if err := fs.sp.PostText(ctx, ev.ChannelID, ack); err != nil {
		return fmt.Errorf("OnMention: 応答投稿失敗: %w", err)
	}

	return fs.answer(ctx, ev.ChannelID, text)
}

// answer は問い合わせテキストを分類し、対応する処理に振り分けます
func (fs *financeService) answer(ctx context.Context, channelID, text string) error {
	switch ClassifyIntent(text) {
	case IntentPending:
		return fs.answerPending(ctx, channelID, text)
	case IntentCashflow:
		return fs.answerCashflow(ctx, channelID, text)
	default:
		return fs.answerFreeform(ctx, channelID, text)
	}
}

// answerPending は未回収請求レポートを作成して投稿します
func (fs *financeService) answerPending(ctx context.Context, channelID, text string) error {
	rows, err := fs.sheets.ReadPendingPayments(ctx)
	if err != nil {
		return fmt.Errorf("answerPending: シート読み取り失敗: %w", err)
	}

	records := make([]domain.PaymentRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.NormalizePaymentRow(row))
	}

	filtered, total, err := AggregatePayments(records, ExtractPeriod(text))
	if errors.Is(err, domain.ErrNoResults) {
		// 該当なしは固定メッセージで返信して終了（要約・描画はスキップ）
		msg := fmt.Sprintf("No pending results for %q", text)
		return fs.sp.PostText(ctx, channelID, msg)
	}

	prompt := fmt.Sprintf("Summarize these pending payments. Total: %s. Count: %d.",
		FormatAmount(total), len(filtered))
	summary, err := fs.ai.Summarize(ctx, prompt)
	if err != nil {
		return fmt.Errorf("answerPending: 要約取得失敗: %w", err)
	}

	blocks := BuildReportBlocks("Pending Payments", summary, PaymentReportRows(filtered))
	if err := fs.sp.PostBlocks(ctx, channelID, blocks); err != nil {
		return fmt.Errorf("answerPending: レポート投稿失敗: %w", err)
	}

	return nil
}

// answerCashflow はキャッシュフローレポートを作成して投稿します
func (fs *financeService) answerCashflow(ctx context.Context, channelID, text string) error {
	rows, err := fs.sheets.ReadCashflow(ctx)
	if err != nil {
		return fmt.Errorf("answerCashflow: シート読み取り失敗: %w", err)
	}

	now := fs.now()
	records := make([]domain.CashflowRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.NormalizeCashflowRow(row, now))
	}

	filtered, totals, err := AggregateCashflow(records, ExtractPeriod(text))
	if errors.Is(err, domain.ErrNoResults) {
		msg := fmt.Sprintf("No cashflow results for %q", text)
		return fs.sp.PostText(ctx, channelID, msg)
	}

	prompt := fmt.Sprintf("Summarize cashflow. Invoiced: %s, Paid: %s, Pending: %s.",
		FormatAmount(totals.Invoiced), FormatAmount(totals.Paid), FormatAmount(totals.Pending()))
	summary, err := fs.ai.Summarize(ctx, prompt)
	if err != nil {
		return fmt.Errorf("answerCashflow: 要約取得失敗: %w", err)
	}

	blocks := BuildReportBlocks("Cashflow", summary, CashflowReportRows(filtered))
	if err := fs.sp.PostBlocks(ctx, channelID, blocks); err != nil {
		return fmt.Errorf("answerCashflow: レポート投稿失敗: %w", err)
	}

	return nil
}

// answerFreeform はキーワードに一致しない質問をそのまま AI に渡します
// （スプレッドシートの読み取りは行わない）
func (fs *financeService) answerFreeform(ctx context.Context, channelID, text string) error {
	answer, err := fs.ai.Summarize(ctx, text)
	if err != nil {
		return fmt.Errorf("answerFreeform: 要約取得失敗: %w", err)
	}

	if err := fs.sp.PostText(ctx, channelID, answer); err != nil {
		return fmt.Errorf("answerFreeform: 回答投稿失敗: %w", err)
	}

	return nil
}
