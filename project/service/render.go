package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/slack-go/slack"

	"finance-bot/project/domain"
)

// Slack のメッセージサイズ制限に収めるための最大表示行数。
// 超過した行は黙って切り捨てます
const maxReportRows = 40

// 表の列見出し
const reportCaption = "*Invoice* | *Client* | *Date* | *Days* | *Status* | *Amount*"

// 欠損値の表示
const missingField = "-"

// ReportRow はレポート表示用に整形された1行です
type ReportRow struct {
	InvoiceID   string
	Client      string
	InvoiceDate *time.Time
	DaysLabel   string // 日数、または欠損時は "-"
	Status      string
	Amount      decimal.Decimal
}

// PaymentReportRows は未回収請求レコードを表示行に変換します
func PaymentReportRows(records []domain.PaymentRecord) []ReportRow {
	rows := make([]ReportRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ReportRow{
			InvoiceID:   r.InvoiceID,
			Client:      r.Client,
			InvoiceDate: r.InvoiceDate,
			DaysLabel:   strconv.Itoa(r.PendingDays),
			Status:      r.Status,
			Amount:      r.Amount,
		})
	}
	return rows
}

// CashflowReportRows はキャッシュフローレコードを表示行に変換します
// 請求日のない行は経過日数が "-" になります
func CashflowReportRows(records []domain.CashflowRecord) []ReportRow {
	rows := make([]ReportRow, 0, len(records))
	for _, r := range records {
		days := missingField
		if r.InvoiceDate != nil {
			days = strconv.Itoa(r.AgeInDays)
		}
		rows = append(rows, ReportRow{
			InvoiceID:   r.InvoiceID,
			Client:      r.Client,
			InvoiceDate: r.InvoiceDate,
			DaysLabel:   days,
			Status:      r.Status,
			Amount:      r.InvoicedAmount,
		})
	}
	return rows
}

// BuildReportBlocks はレポートを Block Kit 形式で組み立てます
// 構成: ヘッダー → AI要約 → 区切り線 → 列見出し → データ行（最大 maxReportRows 行）
func BuildReportBlocks(title, summary string, rows []ReportRow) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, title, false, false),
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, summary, false, false),
			nil, nil,
		),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, reportCaption, false, false),
			nil, nil,
		),
	}

	if len(rows) > maxReportRows {
		rows = rows[:maxReportRows]
	}

	for _, r := range rows {
		line := fmt.Sprintf("`%s` | %s | %s | %s | %s | %s",
			r.InvoiceID,
			r.Client,
			formatDate(r.InvoiceDate),
			r.DaysLabel,
			r.Status,
			FormatAmount(r.Amount),
		)
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, line, false, false),
			nil, nil,
		))
	}

	return blocks
}

// FormatAmount は金額を "€1,000.00" 形式に整形します
// 3桁ごとのカンマ区切り・小数2桁固定。負数は "€-1,000.00" になります
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	return "€" + sign + b.String() + "." + fracPart
}

// formatDate は請求日を ISO 形式で整形します。nil の場合は "-"
func formatDate(t *time.Time) string {
	if t == nil {
		return missingField
	}
	return t.Format("2006-01-02")
}
