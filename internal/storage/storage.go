package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist は key に対応するオブジェクトが存在しない場合に返される。
var ErrNotExist = errors.New("storage: object does not exist")

// Storage は設定 blob やエクスポートファイルの保存先を抽象化するインターフェース。
// ローカルファイルシステム実装の他、オブジェクトストレージ等に差し替え可能。
type Storage interface {
	// Save は data を key に書き込む。既存のオブジェクトは置き換える。
	Save(ctx context.Context, key string, data io.Reader) error

	// Open は key の内容を読み出す。存在しない場合は ErrNotExist。
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete は key に対応するファイルを削除する。存在しなくてもエラーにしない。
	Delete(ctx context.Context, key string) error
}
