package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/quotekit/backend/internal/model"
	"github.com/quotekit/backend/internal/pricing"
	"github.com/quotekit/backend/internal/repository"
	"github.com/quotekit/backend/internal/state"
)

// Workspace は状態コンテナと設定の永続化をまとめる。
// 変更は mu で直列化し、永続化に成功してから Store に反映する。
type Workspace struct {
	mu    sync.Mutex
	store *state.Store
	repo  repository.SettingsRepository
	now   func() time.Time
	newID func() string
}

// NewWorkspace は Workspace を生成する
func NewWorkspace(store *state.Store, repo repository.SettingsRepository) *Workspace {
	return &Workspace{
		store: store,
		repo:  repo,
		now:   time.Now,
		newID: model.NewID,
	}
}

// OpenWorkspace は保存済みの設定を読み込んで Workspace を生成する
func OpenWorkspace(ctx context.Context, repo repository.SettingsRepository) (*Workspace, error) {
	settings, err := LoadSettings(ctx, repo)
	if err != nil {
		return nil, err
	}
	return NewWorkspace(state.NewStore(settings), repo), nil
}

// LoadSettings は保存済みの blob をデコードする。
// 未保存ならデフォルト、解釈できない blob は警告ログを出してデフォルトにフォールバックする。
func LoadSettings(ctx context.Context, repo repository.SettingsRepository) (model.AppSettings, error) {
	data, err := repo.Load(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		slog.Info("no saved settings, using defaults")
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.AppSettings{}, fmt.Errorf("load settings: %w", err)
	}

	settings, err := model.DecodeSettings(data)
	if err != nil {
		slog.Warn("saved settings unreadable, using defaults", "error", err)
		return model.DefaultSettings(), nil
	}
	return settings, nil
}

// Settings は現在の設定スナップショットを返す
func (w *Workspace) Settings() model.AppSettings {
	return w.store.Get()
}

// Quote は作業中の見積を返す
func (w *Workspace) Quote() model.WorkingQuote {
	return w.store.Quote()
}

// update は現在の設定から patch を組み立て、永続化してから反映する
func (w *Workspace) update(ctx context.Context, build func(cur model.AppSettings) (model.SettingsPatch, error)) (model.AppSettings, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	patch, err := build(w.store.Get())
	if err != nil {
		return model.AppSettings{}, err
	}
	return w.commit(ctx, patch)
}

// commit は w.mu を保持した状態で呼ぶこと
func (w *Workspace) commit(ctx context.Context, patch model.SettingsPatch) (model.AppSettings, error) {
	next := w.store.Get().Merge(patch)
	data, err := model.EncodeSettings(next)
	if err != nil {
		return model.AppSettings{}, fmt.Errorf("encode settings: %w", err)
	}
	if err := w.repo.Save(ctx, data); err != nil {
		slog.Error("settings save failed", "error", err)
		return model.AppSettings{}, fmt.Errorf("save settings: %w", err)
	}
	return w.store.Apply(patch), nil
}

// reset は保存済みの blob を削除し、初回起動時の状態に戻す。作業中の見積も空にする。
func (w *Workspace) reset(ctx context.Context) (model.AppSettings, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.repo.Delete(ctx); err != nil {
		slog.Error("settings delete failed", "error", err)
		return model.AppSettings{}, fmt.Errorf("delete settings: %w", err)
	}
	w.store.SetQuote(model.WorkingQuote{})
	return w.store.Apply(model.DefaultSettings().Patch()), nil
}

// updateQuote は作業中の見積を置き換える
func (w *Workspace) updateQuote(build func(q model.WorkingQuote, s model.AppSettings) (model.WorkingQuote, error)) (model.WorkingQuote, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := build(w.store.Quote(), w.store.Get())
	if err != nil {
		return model.WorkingQuote{}, err
	}
	return w.store.SetQuote(next), nil
}

// computeTotals は見積の合計・利益・利益率を算出する
func computeTotals(s model.AppSettings, hours float64, items []model.QuoteItem) model.QuoteTotals {
	materials := pricing.MaterialTotals(items, s.PersistentItems, s.GlobalMarkup)
	t := model.QuoteTotals{
		LaborCost:     pricing.LaborCost(s.Wages, hours),
		LaborPrice:    pricing.LaborPrice(hours, s.TargetHourly),
		MaterialCost:  materials.Cost,
		MaterialPrice: materials.Price,
	}
	t.TotalPrice = t.LaborPrice + t.MaterialPrice
	t.TotalCost = t.LaborCost + t.MaterialCost
	t.Profit = t.TotalPrice - t.TotalCost
	if t.TotalPrice > 0 {
		t.Margin = t.Profit / t.TotalPrice * 100
	}
	return t
}
