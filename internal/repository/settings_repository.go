package repository

import "context"

// DB は保存先の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// SettingsRepository は設定 blob（AppSettings のシリアライズ結果）の永続化インターフェース。
// blob の解釈は呼び出し側が行う。
type SettingsRepository interface {
	DB
	// Load は保存済みの blob を返す。未保存の場合は ErrNotFound。
	Load(ctx context.Context) ([]byte, error)
	// Save は blob 全体を置き換える。
	Save(ctx context.Context, data []byte) error
	// Delete は保存済みの blob を削除する。未保存でもエラーにしない。
	Delete(ctx context.Context) error
}
