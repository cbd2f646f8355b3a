package service

import (
	"context"
	"slices"
	"strings"

	"github.com/quotekit/backend/internal/model"
)

// QuoteService は作業中の見積と保存済み見積のビジネスロジック
type QuoteService interface {
	Quote() model.WorkingQuote
	UpdateQuote(patch model.QuotePatch) model.WorkingQuote
	AddItem(itemID string) (model.WorkingQuote, error)
	SetQuantity(itemID string, quantity float64) (model.WorkingQuote, error)
	RemoveItem(itemID string) (model.WorkingQuote, error)
	Clear() model.WorkingQuote
	Totals() model.QuoteTotals
	Save(ctx context.Context) (model.SavedQuote, error)
	Saved() []model.SavedQuote
	Load(id string) (model.WorkingQuote, error)
	DeleteSaved(ctx context.Context, id string) error
}

// QuoteServiceImpl は QuoteService の実装
type QuoteServiceImpl struct {
	ws *Workspace
}

// NewQuoteService は QuoteServiceImpl を生成する
func NewQuoteService(ws *Workspace) QuoteService {
	return &QuoteServiceImpl{ws: ws}
}

// Quote は作業中の見積を返す
func (s *QuoteServiceImpl) Quote() model.WorkingQuote {
	return s.ws.Quote()
}

// UpdateQuote は見積名・作業時間を更新する
func (s *QuoteServiceImpl) UpdateQuote(patch model.QuotePatch) model.WorkingQuote {
	q, _ := s.ws.updateQuote(func(q model.WorkingQuote, _ model.AppSettings) (model.WorkingQuote, error) {
		if patch.Name != nil {
			q.Name = *patch.Name
		}
		if patch.LaborHours != nil {
			q.LaborHours = *patch.LaborHours
		}
		return q, nil
	})
	return q
}

// AddItem はカタログの品目を数量 1 で見積に追加する。追加済みなら何もしない。
func (s *QuoteServiceImpl) AddItem(itemID string) (model.WorkingQuote, error) {
	return s.ws.updateQuote(func(q model.WorkingQuote, cur model.AppSettings) (model.WorkingQuote, error) {
		if _, ok := cur.FindItem(itemID); !ok {
			return q, ErrNotFound
		}
		if q.IndexOf(itemID) >= 0 {
			return q, nil
		}
		q.Items = append(slices.Clone(q.Items), model.QuoteItem{ItemID: itemID, Quantity: 1})
		return q, nil
	})
}

// SetQuantity は見積内の品目の数量を変更する。カタログには影響しない。
func (s *QuoteServiceImpl) SetQuantity(itemID string, quantity float64) (model.WorkingQuote, error) {
	return s.ws.updateQuote(func(q model.WorkingQuote, _ model.AppSettings) (model.WorkingQuote, error) {
		i := q.IndexOf(itemID)
		if i < 0 {
			return q, ErrNotFound
		}
		q.Items = slices.Clone(q.Items)
		q.Items[i].Quantity = quantity
		return q, nil
	})
}

// RemoveItem は見積から品目を取り除く
func (s *QuoteServiceImpl) RemoveItem(itemID string) (model.WorkingQuote, error) {
	return s.ws.updateQuote(func(q model.WorkingQuote, _ model.AppSettings) (model.WorkingQuote, error) {
		i := q.IndexOf(itemID)
		if i < 0 {
			return q, ErrNotFound
		}
		items := make([]model.QuoteItem, 0, len(q.Items)-1)
		items = append(items, q.Items[:i]...)
		q.Items = append(items, q.Items[i+1:]...)
		return q, nil
	})
}

// Clear は作業中の見積を空にする
func (s *QuoteServiceImpl) Clear() model.WorkingQuote {
	q, _ := s.ws.updateQuote(func(model.WorkingQuote, model.AppSettings) (model.WorkingQuote, error) {
		return model.WorkingQuote{}, nil
	})
	return q
}

// Totals は現在の設定で作業中の見積を計算する
func (s *QuoteServiceImpl) Totals() model.QuoteTotals {
	q := s.ws.Quote()
	return computeTotals(s.ws.Settings(), q.LaborHours, q.Items)
}

// Save は作業中の見積を保存済み見積の先頭に追加する。
// totalPrice は保存時点の値で固定される。保存後は名前だけをクリアし、品目と作業時間は残す。
func (s *QuoteServiceImpl) Save(ctx context.Context) (model.SavedQuote, error) {
	w := s.ws
	w.mu.Lock()
	defer w.mu.Unlock()

	q := w.store.Quote()
	name := strings.TrimSpace(q.Name)
	if name == "" {
		return model.SavedQuote{}, ErrNameRequired
	}

	cur := w.store.Get()
	saved := model.SavedQuote{
		ID:         w.newID(),
		Name:       name,
		Date:       w.now().Format(model.SavedQuoteDateLayout),
		Items:      append([]model.QuoteItem{}, q.Items...),
		LaborHours: q.LaborHours,
		TotalPrice: computeTotals(cur, q.LaborHours, q.Items).TotalPrice,
	}
	quotes := append([]model.SavedQuote{saved}, cur.SavedQuotes...)
	if _, err := w.commit(ctx, model.SettingsPatch{SavedQuotes: quotes}); err != nil {
		return model.SavedQuote{}, err
	}

	q.Name = ""
	w.store.SetQuote(q)
	return saved, nil
}

// Saved は保存済み見積を新しい順に返す
func (s *QuoteServiceImpl) Saved() []model.SavedQuote {
	return s.ws.Settings().SavedQuotes
}

// Load は保存済み見積を作業中の見積としてコピーする。保存済みの側は変更されない。
func (s *QuoteServiceImpl) Load(id string) (model.WorkingQuote, error) {
	return s.ws.updateQuote(func(_ model.WorkingQuote, cur model.AppSettings) (model.WorkingQuote, error) {
		saved, ok := cur.FindSavedQuote(id)
		if !ok {
			return model.WorkingQuote{}, ErrNotFound
		}
		return model.WorkingQuote{
			Name:       saved.Name,
			LaborHours: saved.LaborHours,
			Items:      append([]model.QuoteItem{}, saved.Items...),
		}, nil
	})
}

// DeleteSaved は保存済み見積を削除する
func (s *QuoteServiceImpl) DeleteSaved(ctx context.Context, id string) error {
	_, err := s.ws.update(ctx, func(cur model.AppSettings) (model.SettingsPatch, error) {
		if _, ok := cur.FindSavedQuote(id); !ok {
			return model.SettingsPatch{}, ErrNotFound
		}
		quotes := make([]model.SavedQuote, 0, len(cur.SavedQuotes)-1)
		for _, q := range cur.SavedQuotes {
			if q.ID != id {
				quotes = append(quotes, q)
			}
		}
		return model.SettingsPatch{SavedQuotes: quotes}, nil
	})
	return err
}
