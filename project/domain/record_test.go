package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePaymentRow(t *testing.T) {
	t.Run("通常の行を変換できる", func(t *testing.T) {
		row := []any{"INV1", "Acme", "ignored", "2024-03-05", 5.0, "Unpaid", "€1,000.00"}
		r := NormalizePaymentRow(row)

		assert.Equal(t, "INV1", r.InvoiceID)
		assert.Equal(t, "Acme", r.Client)
		require.NotNil(t, r.InvoiceDate)
		assert.Equal(t, time.March, r.InvoiceDate.Month())
		assert.Equal(t, 5, r.PendingDays)
		assert.Equal(t, "Unpaid", r.Status)
		assert.True(t, r.Amount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("請求書番号が空の場合はプレースホルダになる", func(t *testing.T) {
		r := NormalizePaymentRow([]any{"", "Acme"})
		assert.Equal(t, MissingInvoiceID, r.InvoiceID)
	})

	t.Run("短い行でもパニックしない", func(t *testing.T) {
		r := NormalizePaymentRow([]any{})
		assert.Equal(t, MissingInvoiceID, r.InvoiceID)
		assert.Nil(t, r.InvoiceDate)
		assert.Equal(t, 0, r.PendingDays)
		assert.True(t, r.Amount.IsZero())
	})

	t.Run("nil行でもパニックしない", func(t *testing.T) {
		r := NormalizePaymentRow(nil)
		assert.True(t, r.Amount.IsZero())
	})

	t.Run("nilセルや不正な型のセルは既定値になる", func(t *testing.T) {
		row := []any{nil, 42.5, true, "not a date", "many", []any{}, map[string]any{}}
		r := NormalizePaymentRow(row)

		assert.Equal(t, MissingInvoiceID, r.InvoiceID)
		assert.Equal(t, "42.5", r.Client)
		assert.Nil(t, r.InvoiceDate)
		assert.Equal(t, 0, r.PendingDays)
		assert.True(t, r.Amount.IsZero())
	})

	t.Run("負の未回収日数は0に丸める", func(t *testing.T) {
		r := NormalizePaymentRow([]any{"INV1", "Acme", nil, nil, -3.0})
		assert.Equal(t, 0, r.PendingDays)
	})
}

func TestNormalizeCashflowRow(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	t.Run("通常の行を変換できる", func(t *testing.T) {
		row := []any{"INV2", "Globex", "2024-03-05", "€2,500.00", "€500.00", "x", "Partial"}
		r := NormalizeCashflowRow(row, now)

		assert.Equal(t, "INV2", r.InvoiceID)
		assert.Equal(t, "Globex", r.Client)
		require.NotNil(t, r.InvoiceDate)
		assert.True(t, r.InvoicedAmount.Equal(decimal.NewFromInt(2500)))
		assert.True(t, r.PaidAmount.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, "Partial", r.Status)
		assert.Equal(t, 10, r.AgeInDays)
	})

	t.Run("請求日がパースできない場合は経過日数を導出しない", func(t *testing.T) {
		r := NormalizeCashflowRow([]any{"INV3", "Initech", "???"}, now)
		assert.Nil(t, r.InvoiceDate)
		assert.Equal(t, 0, r.AgeInDays)
	})

	t.Run("短い行でもパニックしない", func(t *testing.T) {
		r := NormalizeCashflowRow([]any{"INV4"}, now)
		assert.Equal(t, "INV4", r.InvoiceID)
		assert.True(t, r.InvoicedAmount.IsZero())
		assert.True(t, r.PaidAmount.IsZero())
	})
}

func TestParseAmountCell(t *testing.T) {
	cases := []struct {
		name string
		cell any
		want decimal.Decimal
	}{
		{"数値セル", 1234.5, decimal.NewFromFloat(1234.5)},
		{"通貨記号付き文字列", "€1,000.00", decimal.NewFromInt(1000)},
		{"ドル記号と空白", " $ 2,345.67 ", decimal.NewFromFloat(2345.67)},
		{"負の金額", "-€150.25", decimal.NewFromFloat(-150.25)},
		{"数字以外の残骸", "n/a", decimal.Zero},
		{"空文字列", "", decimal.Zero},
		{"nilセル", nil, decimal.Zero},
		{"真偽値セル", true, decimal.Zero},
		{"ドットが複数", "1.2.3", decimal.Zero},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseAmountCell(tc.cell)
			assert.True(t, got.Equal(tc.want), "got=%s want=%s", got, tc.want)
		})
	}
}

func TestParseDateCell(t *testing.T) {
	t.Run("ISO形式の文字列", func(t *testing.T) {
		d := ParseDateCell("2024-03-05")
		require.NotNil(t, d)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.March, d.Month())
		assert.Equal(t, 5, d.Day())
	})

	t.Run("シリアル値", func(t *testing.T) {
		// 45356 = 2024-03-05（1899-12-30 起点）
		d := ParseDateCell(45356.0)
		require.NotNil(t, d)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.March, d.Month())
		assert.Equal(t, 5, d.Day())
	})

	t.Run("パース不能な値はnil", func(t *testing.T) {
		assert.Nil(t, ParseDateCell("not a date"))
		assert.Nil(t, ParseDateCell(""))
		assert.Nil(t, ParseDateCell(nil))
		assert.Nil(t, ParseDateCell(-1.0))
		assert.Nil(t, ParseDateCell(true))
	})
}
