package service

import (
	"context"
	"fmt"
	"io"

	"github.com/quotekit/backend/internal/export"
	"github.com/quotekit/backend/internal/model"
	"github.com/quotekit/backend/internal/pricing"
)

// TransferService は設定・保存済み見積のエクスポート／インポートと見積サマリーのビジネスロジック
type TransferService interface {
	ExportSettings() ([]byte, error)
	ExportSavedQuotes() ([]byte, error)
	ImportSettings(ctx context.Context, data []byte) (model.AppSettings, error)
	ImportSavedQuotes(ctx context.Context, data []byte) ([]model.SavedQuote, error)
	Summary() string
	SavedSummary(id string) (string, error)
	Workbook(w io.Writer) error
}

// TransferServiceImpl は TransferService の実装
type TransferServiceImpl struct {
	ws *Workspace
}

// NewTransferService は TransferServiceImpl を生成する
func NewTransferService(ws *Workspace) TransferService {
	return &TransferServiceImpl{ws: ws}
}

// ExportSettings は設定全体を JSON で返す
func (s *TransferServiceImpl) ExportSettings() ([]byte, error) {
	return model.EncodeSettings(s.ws.Settings())
}

// ExportSavedQuotes は保存済み見積だけを JSON 配列で返す
func (s *TransferServiceImpl) ExportSavedQuotes() ([]byte, error) {
	return model.EncodeSavedQuotes(s.ws.Settings().SavedQuotes)
}

// ImportSettings は設定全体を置き換える。不正なデータの場合は何も変更しない。
func (s *TransferServiceImpl) ImportSettings(ctx context.Context, data []byte) (model.AppSettings, error) {
	imported, err := model.DecodeSettings(data)
	if err != nil {
		return model.AppSettings{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return s.ws.update(ctx, func(model.AppSettings) (model.SettingsPatch, error) {
		return imported.Patch(), nil
	})
}

// ImportSavedQuotes は保存済み見積を id でマージする。id が重複した場合はインポート側を優先する。
func (s *TransferServiceImpl) ImportSavedQuotes(ctx context.Context, data []byte) ([]model.SavedQuote, error) {
	imported, err := model.DecodeSavedQuotes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	next, err := s.ws.update(ctx, func(cur model.AppSettings) (model.SettingsPatch, error) {
		return model.SettingsPatch{SavedQuotes: model.MergeSavedQuotes(imported, cur.SavedQuotes)}, nil
	})
	if err != nil {
		return nil, err
	}
	return next.SavedQuotes, nil
}

// Summary は作業中の見積のテキストサマリーを返す
func (s *TransferServiceImpl) Summary() string {
	return export.FormatText(s.workingSummary())
}

// SavedSummary は保存済み見積のテキストサマリーを返す。
// 明細は現在のカタログで再計算するが、合計は保存時の totalPrice を使う。
func (s *TransferServiceImpl) SavedSummary(id string) (string, error) {
	settings := s.ws.Settings()
	saved, ok := settings.FindSavedQuote(id)
	if !ok {
		return "", ErrNotFound
	}
	sum := buildSummary(settings, saved.Name, saved.LaborHours, saved.Items)
	sum.Date = saved.Date
	sum.TotalPrice = saved.TotalPrice
	sum.Profit = sum.TotalPrice - sum.TotalCost
	sum.Margin = 0
	if sum.TotalPrice > 0 {
		sum.Margin = sum.Profit / sum.TotalPrice * 100
	}
	return export.FormatText(sum), nil
}

// Workbook は作業中の見積を XLSX で書き出す
func (s *TransferServiceImpl) Workbook(w io.Writer) error {
	return export.WriteWorkbook(w, s.workingSummary())
}

func (s *TransferServiceImpl) workingSummary() export.Summary {
	q := s.ws.Quote()
	return buildSummary(s.ws.Settings(), q.Name, q.LaborHours, q.Items)
}

func buildSummary(settings model.AppSettings, name string, hours float64, items []model.QuoteItem) export.Summary {
	t := computeTotals(settings, hours, items)
	return export.Summary{
		Name:       name,
		LaborHours: hours,
		LaborCost:  t.LaborCost,
		LaborPrice: t.LaborPrice,
		Lines:      pricing.MaterialLines(items, settings.PersistentItems, settings.GlobalMarkup),
		TotalCost:  t.TotalCost,
		TotalPrice: t.TotalPrice,
		Profit:     t.Profit,
		Margin:     t.Margin,
	}
}
