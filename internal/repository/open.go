package repository

import (
	"context"
	"fmt"

	"github.com/quotekit/backend/internal/storage"
)

// Backend は設定 blob の保存先を選ぶための情報
type Backend struct {
	Kind        string // "file" または "postgres"
	StateDir    string
	DatabaseURL string
}

// Open は Backend に応じた SettingsRepository を生成する。
// 返される close 関数は接続プールなどの後始末を行う。
func Open(ctx context.Context, b Backend) (SettingsRepository, func(), error) {
	switch b.Kind {
	case "", "file":
		return NewFileSettingsRepository(storage.NewLocalStorage(b.StateDir)), func() {}, nil
	case "postgres":
		pool, err := NewPool(ctx, b.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return NewPgSettingsRepository(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("repository: unknown backend %q", b.Kind)
	}
}
