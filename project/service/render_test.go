package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-bot/project/domain"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount decimal.Decimal
		want   string
	}{
		{decimal.NewFromInt(1000), "€1,000.00"},
		{decimal.NewFromFloat(1234567.89), "€1,234,567.89"},
		{decimal.NewFromInt(0), "€0.00"},
		{decimal.NewFromFloat(999.9), "€999.90"},
		{decimal.NewFromFloat(-1500.5), "€-1,500.50"},
		{decimal.NewFromFloat(0.005), "€0.01"}, // 四捨五入で2桁に揃える
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatAmount(tc.amount))
		})
	}
}

func TestBuildReportBlocks(t *testing.T) {
	rows := []ReportRow{
		{
			InvoiceID:   "INV1",
			Client:      "Acme",
			InvoiceDate: date(2024, time.March, 5),
			DaysLabel:   "5",
			Status:      "Unpaid",
			Amount:      decimal.NewFromInt(1000),
		},
		{
			InvoiceID: "(no)",
			Client:    "Globex",
			DaysLabel: "-",
			Status:    "Paid",
			Amount:    decimal.Zero,
		},
	}

	blocks := BuildReportBlocks("Pending Payments", "summary text", rows)

	// ヘッダー → 要約 → 区切り線 → 列見出し → データ行2つ
	require.Len(t, blocks, 6)

	header, ok := blocks[0].(*slack.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "Pending Payments", header.Text.Text)

	summary, ok := blocks[1].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "summary text", summary.Text.Text)

	_, ok = blocks[2].(*slack.DividerBlock)
	require.True(t, ok)

	caption, ok := blocks[3].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, reportCaption, caption.Text.Text)

	row1, ok := blocks[4].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "`INV1` | Acme | 2024-03-05 | 5 | Unpaid | €1,000.00", row1.Text.Text)

	// 請求日なしの行は "-" で表示される
	row2, ok := blocks[5].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "`(no)` | Globex | - | - | Paid | €0.00", row2.Text.Text)
}

func TestBuildReportBlocks_Truncation(t *testing.T) {
	// 100行入れても表示は40行で打ち切られる
	rows := make([]ReportRow, 100)
	for i := range rows {
		rows[i] = ReportRow{
			InvoiceID: fmt.Sprintf("INV%d", i),
			DaysLabel: "0",
			Amount:    decimal.Zero,
		}
	}

	blocks := BuildReportBlocks("Pending Payments", "s", rows)

	// 固定ブロック4つ + データ行40
	assert.Len(t, blocks, 44)
}

func TestCashflowReportRows(t *testing.T) {
	records := []domain.CashflowRecord{
		{
			InvoiceID:      "INV1",
			Client:         "Acme",
			InvoiceDate:    date(2024, time.March, 5),
			InvoicedAmount: decimal.NewFromInt(2500),
			AgeInDays:      10,
		},
		{
			InvoiceID:      "INV2",
			Client:         "Globex",
			InvoicedAmount: decimal.NewFromInt(100),
		},
	}

	rows := CashflowReportRows(records)

	require.Len(t, rows, 2)
	assert.Equal(t, "10", rows[0].DaysLabel)
	assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(2500)))
	// 請求日なしは "-"
	assert.Equal(t, "-", rows[1].DaysLabel)
}
