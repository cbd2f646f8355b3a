package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/quotekit/backend/internal/storage"
)

// SettingsKey は設定 blob のストレージ上のキー
const SettingsKey = "settings.json"

// FileSettingsRepository は SettingsRepository の Storage 実装
type FileSettingsRepository struct {
	store storage.Storage
	key   string
}

// NewFileSettingsRepository は FileSettingsRepository を生成する
func NewFileSettingsRepository(store storage.Storage) *FileSettingsRepository {
	return &FileSettingsRepository{store: store, key: SettingsKey}
}

// Ping は保存先を開けるか確認する。blob が未作成でも正常とみなす。
func (r *FileSettingsRepository) Ping(ctx context.Context) error {
	rc, err := r.store.Open(ctx, r.key)
	if errors.Is(err, storage.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return rc.Close()
}

// Load は保存済みの blob を読み出す
func (r *FileSettingsRepository) Load(ctx context.Context) ([]byte, error) {
	rc, err := r.store.Open(ctx, r.key)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return data, nil
}

// Save は blob を書き込む
func (r *FileSettingsRepository) Save(ctx context.Context, data []byte) error {
	return r.store.Save(ctx, r.key, bytes.NewReader(data))
}

// Delete は blob ファイルを削除する
func (r *FileSettingsRepository) Delete(ctx context.Context) error {
	return r.store.Delete(ctx, r.key)
}
