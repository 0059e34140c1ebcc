package service

import (
	"time"

	"github.com/shopspring/decimal"

	"finance-bot/project/domain"
)

// dated は請求月を持つレコードの制約です
type dated interface {
	InvoiceMonth() (time.Month, bool)
}

// FilterByPeriod は月指定に一致するレコードだけを残します
// period が nil の場合は全件（請求日なしの行も含む）を返します。
// period が指定されている場合、請求日のない行は常に除外されます
func FilterByPeriod[T dated](records []T, period *ReportPeriod) []T {
	if period == nil {
		return records
	}

	filtered := make([]T, 0, len(records))
	for _, r := range records {
		month, ok := r.InvoiceMonth()
		if !ok {
			continue
		}
		if int(month)-1 == period.Month {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// CashflowTotals はキャッシュフロー集計の合計値です
type CashflowTotals struct {
	// Invoiced は請求金額の合計
	Invoiced decimal.Decimal

	// Paid は入金済み金額の合計
	Paid decimal.Decimal
}

// Pending は未回収額（請求合計 − 入金合計）を返します
func (t CashflowTotals) Pending() decimal.Decimal {
	return t.Invoiced.Sub(t.Paid)
}

// AggregatePayments は未回収請求レコードを月指定でフィルタし、金額合計を計算します
// フィルタ後に1件も残らない場合は domain.ErrNoResults を返します
func AggregatePayments(records []domain.PaymentRecord, period *ReportPeriod) ([]domain.PaymentRecord, decimal.Decimal, error) {
	filtered := FilterByPeriod(records, period)
	if len(filtered) == 0 {
		return nil, decimal.Zero, domain.ErrNoResults
	}

	total := decimal.Zero
	for _, r := range filtered {
		total = total.Add(r.Amount)
	}
	return filtered, total, nil
}

// AggregateCashflow はキャッシュフローレコードを月指定でフィルタし、
// 請求・入金の合計を計算します
// フィルタ後に1件も残らない場合は domain.ErrNoResults を返します
func AggregateCashflow(records []domain.CashflowRecord, period *ReportPeriod) ([]domain.CashflowRecord, CashflowTotals, error) {
	filtered := FilterByPeriod(records, period)
	if len(filtered) == 0 {
		return nil, CashflowTotals{Invoiced: decimal.Zero, Paid: decimal.Zero}, domain.ErrNoResults
	}

	totals := CashflowTotals{Invoiced: decimal.Zero, Paid: decimal.Zero}
	for _, r := range filtered {
		totals.Invoiced = totals.Invoiced.Add(r.InvoicedAmount)
		totals.Paid = totals.Paid.Add(r.PaidAmount)
	}
	return filtered, totals, nil
}
