package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// 請求書番号が空セルだった場合のプレースホルダ
const MissingInvoiceID = "(no)"

// PaymentRecord は未回収請求（Pending Payments シート）の1行を表します
type PaymentRecord struct {
	// InvoiceID は請求書番号。空セルの場合は MissingInvoiceID
	InvoiceID string

	// Client は取引先名
	Client string

	// InvoiceDate は請求日。パース不能なセルの場合は nil
	InvoiceDate *time.Time

	// PendingDays は未回収日数（0以上）
	PendingDays int

	// Status は回収ステータス文字列
	Status string

	// Amount は請求金額。パース不能なセルの場合はゼロ
	Amount decimal.Decimal
}

// CashflowRecord はキャッシュフロー（Data for chatbot シート）の1行を表します
type CashflowRecord struct {
	// InvoiceID は請求書番号。空セルの場合は MissingInvoiceID
	InvoiceID string

	// Client は取引先名
	Client string

	// InvoiceDate は請求日。パース不能なセルの場合は nil
	InvoiceDate *time.Time

	// InvoicedAmount は請求金額。パース不能なセルの場合はゼロ
	InvoicedAmount decimal.Decimal

	// PaidAmount は入金済み金額。パース不能なセルの場合はゼロ
	PaidAmount decimal.Decimal

	// Status は回収ステータス文字列
	Status string

	// AgeInDays は請求日から現在までの経過日数。InvoiceDate が nil の場合は未定義
	AgeInDays int
}

// NormalizePaymentRow はスプレッドシートの生の行を PaymentRecord に変換します。
// 列の意味は位置で固定されており、欠損・不正なセルは既定値に落とします（失敗しない）。
// 列: [0]=請求書番号, [1]=取引先, [3]=請求日, [4]=未回収日数, [5]=ステータス, [6]=金額
func NormalizePaymentRow(row []any) PaymentRecord {
	r := PaymentRecord{
		InvoiceID:   cellString(row, 0),
		Client:      cellString(row, 1),
		InvoiceDate: ParseDateCell(cellAt(row, 3)),
		PendingDays: parseIntCell(cellAt(row, 4)),
		Status:      cellString(row, 5),
		Amount:      ParseAmountCell(cellAt(row, 6)),
	}
	if r.InvoiceID == "" {
		r.InvoiceID = MissingInvoiceID
	}
	return r
}

// NormalizeCashflowRow はスプレッドシートの生の行を CashflowRecord に変換します。
// 列: [0]=請求書番号, [1]=取引先, [2]=請求日, [3]=請求金額, [4]=入金額, [6]=ステータス
// 経過日数は請求日と now の差分（切り捨て）から導出します
func NormalizeCashflowRow(row []any, now time.Time) CashflowRecord {
	r := CashflowRecord{
		InvoiceID:      cellString(row, 0),
		Client:         cellString(row, 1),
		InvoiceDate:    ParseDateCell(cellAt(row, 2)),
		InvoicedAmount: ParseAmountCell(cellAt(row, 3)),
		PaidAmount:     ParseAmountCell(cellAt(row, 4)),
		Status:         cellString(row, 6),
	}
	if r.InvoiceID == "" {
		r.InvoiceID = MissingInvoiceID
	}
	if r.InvoiceDate != nil {
		r.AgeInDays = int(now.Sub(*r.InvoiceDate).Hours() / 24)
	}
	return r
}

// InvoiceMonth は請求月を返します。請求日が nil の場合は ok=false
func (r PaymentRecord) InvoiceMonth() (time.Month, bool) {
	if r.InvoiceDate == nil {
		return 0, false
	}
	return r.InvoiceDate.Month(), true
}

// InvoiceMonth は請求月を返します。請求日が nil の場合は ok=false
func (r CashflowRecord) InvoiceMonth() (time.Month, bool) {
	if r.InvoiceDate == nil {
		return 0, false
	}
	return r.InvoiceDate.Month(), true
}

// ParseAmountCell はセル値を通貨金額としてパースします。
// 文字列の場合は数字・ドット・マイナス以外の文字（通貨記号や桁区切り）を除去してから
// パースします。パース不能な値は常にゼロになります（エラーを返さない）
func ParseAmountCell(cell any) decimal.Decimal {
	switch v := cell.(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case string:
		cleaned := strings.Map(func(c rune) rune {
			if (c >= '0' && c <= '9') || c == '.' || c == '-' {
				return c
			}
			return -1
		}, v)
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// シリアル値の基準日（Google Sheets / Lotus 方式: 1899-12-30 が 0）
var sheetsEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// 文字列セルで許容する日付フォーマット
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDateCell はセル値を日付としてパースします。
// UNFORMATTED_VALUE で返る日付はシリアル値（数値）になるため、数値は
// シリアル値として解釈します。パース不能な値は nil になります（エラーを返さない）
func ParseDateCell(cell any) *time.Time {
	switch v := cell.(type) {
	case time.Time:
		return &v
	case float64:
		if v <= 0 {
			return nil
		}
		t := sheetsEpoch.Add(time.Duration(v * 24 * float64(time.Hour)))
		return &t
	case int:
		return ParseDateCell(float64(v))
	case int64:
		return ParseDateCell(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
		return nil
	default:
		return nil
	}
}

// cellAt は行から指定位置のセルを取得します。範囲外は nil（欠損値）扱い
func cellAt(row []any, i int) any {
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}

// cellString はセルを文字列として取得します。欠損・非文字列セルも安全に扱います
func cellString(row []any, i int) string {
	switch v := cellAt(row, i).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// parseIntCell はセルを0以上の整数として取得します。パース不能・負数は0
func parseIntCell(cell any) int {
	n := 0
	switch v := cell.(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	case int64:
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		n = parsed
	}
	if n < 0 {
		return 0
	}
	return n
}
