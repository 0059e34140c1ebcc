package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// 読み取る名前付き範囲。列の意味は domain の正規化関数と対で固定されています
const (
	rangePendingPayments = "'Pending Payments'!A10:J"
	rangeCashflow        = "'Data for chatbot'!A12:K"
)

// Client は Google Sheets API から生の行データを読み取るクライアントです
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewClient は Sheets API クライアントを初期化します
// 認証は Application Default Credentials（サービスアカウント）を使用します
func NewClient(ctx context.Context, spreadsheetID string) (*Client, error) {
	svc, err := sheets.NewService(ctx, option.WithScopes(sheets.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("sheets: クライアント初期化失敗: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

// ReadPendingPayments は Pending Payments シートの生の行を読み取ります
func (c *Client) ReadPendingPayments(ctx context.Context) ([][]any, error) {
	return c.readRange(ctx, rangePendingPayments)
}

// ReadCashflow は Data for chatbot シートの生の行を読み取ります
func (c *Client) ReadCashflow(ctx context.Context) ([][]any, error) {
	return c.readRange(ctx, rangeCashflow)
}

// readRange は指定範囲のセル値を取得します
// UNFORMATTED_VALUE を指定することで、日付はシリアル値・金額は数値のまま返ります
func (c *Client) readRange(ctx context.Context, readRange string) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: 範囲読み取り失敗 (range=%s): %w", readRange, err)
	}

	return resp.Values, nil
}
