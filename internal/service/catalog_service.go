package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/quotekit/backend/internal/model"
)

// CatalogService は料金設定・品目カタログ・賃金リストのビジネスロジック
type CatalogService interface {
	Settings() model.AppSettings
	UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.AppSettings, error)
	Reset(ctx context.Context) (model.AppSettings, error)
	AddItem(ctx context.Context, in model.PersistentItemInput) (model.PersistentItem, error)
	UpdateItem(ctx context.Context, id string, patch model.PersistentItemPatch) (model.PersistentItem, error)
	DeleteItem(ctx context.Context, id string) error
	AddWage(ctx context.Context, wage float64) ([]float64, error)
	UpdateWage(ctx context.Context, index int, wage float64) ([]float64, error)
	DeleteWage(ctx context.Context, index int) ([]float64, error)
}

// CatalogServiceImpl は CatalogService の実装。
// コレクションの変更は常に新しいスライスを組み立てて丸ごと置き換える。
type CatalogServiceImpl struct {
	ws *Workspace
}

// NewCatalogService は CatalogServiceImpl を生成する
func NewCatalogService(ws *Workspace) CatalogService {
	return &CatalogServiceImpl{ws: ws}
}

// Settings は現在の設定を返す
func (s *CatalogServiceImpl) Settings() model.AppSettings {
	return s.ws.Settings()
}

// UpdateSettings は指定されたトップレベル項目だけを置き換える（浅いマージ）。
// id のない保存済み見積を含む patch は ErrInvalidData で拒否する。
func (s *CatalogServiceImpl) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.AppSettings, error) {
	if err := model.ValidateSavedQuotes(patch.SavedQuotes); err != nil {
		return model.AppSettings{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return s.ws.update(ctx, func(model.AppSettings) (model.SettingsPatch, error) {
		return patch, nil
	})
}

// Reset は保存済みの設定を削除してデフォルトに戻す
func (s *CatalogServiceImpl) Reset(ctx context.Context) (model.AppSettings, error) {
	return s.ws.reset(ctx)
}

// AddItem は新しい ID で品目をカタログ末尾に追加する
func (s *CatalogServiceImpl) AddItem(ctx context.Context, in model.PersistentItemInput) (model.PersistentItem, error) {
	item := model.PersistentItem{
		ID:              s.ws.newID(),
		Name:            in.Name,
		Cost:            in.Cost,
		UseCustomMarkup: in.UseCustomMarkup,
		CustomMarkup:    in.CustomMarkup,
	}
	_, err := s.ws.update(ctx, func(cur model.AppSettings) (model.SettingsPatch, error) {
		items := append(slices.Clone(cur.PersistentItems), item)
		return model.SettingsPatch{PersistentItems: items}, nil
	})
	if err != nil {
		return model.PersistentItem{}, err
	}
	return item, nil
}

// UpdateItem は品目の一部の項目を更新する
func (s *CatalogServiceImpl) UpdateItem(ctx context.Context, id string, patch model.PersistentItemPatch) (model.PersistentItem, error) {
	var updated model.PersistentItem
	_, err := s.ws.update(ctx, func(cur model.AppSettings) (model.SettingsPatch, error) {
		i := slices.IndexFunc(cur.PersistentItems, func(p model.PersistentItem) bool { return p.ID == id })
		if i < 0 {
			return model.SettingsPatch{}, ErrNotFound
		}
		items := slices.Clone(cur.PersistentItems)
		items[i] = items[i].Apply(patch)
		updated = items[i]
		return model.SettingsPatch{PersistentItems: items}, nil
	})
	if err != nil {
		return model.PersistentItem{}, err
	}
	return updated, nil
}

// DeleteItem は品目をカタログから削除する。
// 作業中・保存済みの見積からの参照は残り、計算時に無視される。
func (s *CatalogServiceImpl) DeleteItem(ctx context.Context, id string) error {
	_, err := s.ws.update(ctx, func(cur model.AppSettings) (model.SettingsPatch, error) {
		if !slices.ContainsFunc(cur.PersistentItems, func(p model.PersistentItem) bool { return p.ID == id }) {
			return model.SettingsPatch{}, ErrNotFound
		}
		items := make([]model.PersistentItem, 0, len(cur.PersistentItems)-1)
		for _, p := range cur.PersistentItems {
			if p.ID != id {
				items = append(items, p)
			}
		}
		return model.SettingsPatch{PersistentItems: items}, nil
	})
	return err
}

// AddWage は賃金を末尾に追加する
func (s *CatalogServiceImpl) AddWage(ctx context.Context, wage float64) ([]float64, error) {
	next, err := s.ws.update(ctx, func(cur model.AppSettings) (model.SettingsPatch, error) {
		return model.SettingsPatch{Wages: append(slices.Clone(cur.Wages), wage)}, nil
	})
	if err != nil {
		return nil, err
	}
	return next.Wages, nil
}

// UpdateWage は index 番目の賃金を置き換える
func (s *CatalogServiceImpl) UpdateWage(ctx context.Context, index int, wage float64) ([]float64, error) {
	next, err := s.ws.update(ctx, func(cur model.AppSettings) (model.SettingsPatch, error) {
		if index < 0 || index >= len(cur.Wages) {
			return model.SettingsPatch{}, ErrWageIndex
		}
		wages := slices.Clone(cur.Wages)
		wages[index] = wage
		return model.SettingsPatch{Wages: wages}, nil
	})
	if err != nil {
		return nil, err
	}
	return next.Wages, nil
}

// DeleteWage は index 番目の賃金を削除する。空になった場合の人件費は 0。
func (s *CatalogServiceImpl) DeleteWage(ctx context.Context, index int) ([]float64, error) {
	next, err := s.ws.update(ctx, func(cur model.AppSettings) (model.SettingsPatch, error) {
		if index < 0 || index >= len(cur.Wages) {
			return model.SettingsPatch{}, ErrWageIndex
		}
		wages := make([]float64, 0, len(cur.Wages)-1)
		wages = append(wages, cur.Wages[:index]...)
		wages = append(wages, cur.Wages[index+1:]...)
		return model.SettingsPatch{Wages: wages}, nil
	})
	if err != nil {
		return nil, err
	}
	return next.Wages, nil
}
