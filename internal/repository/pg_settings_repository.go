package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgSettingsRepository は SettingsRepository の PostgreSQL 実装。
// app_settings テーブルの 1 行 (id = 1) に blob を JSONB で保持する。
type PgSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewPgSettingsRepository は PgSettingsRepository を生成する
func NewPgSettingsRepository(pool *pgxpool.Pool) *PgSettingsRepository {
	return &PgSettingsRepository{pool: pool}
}

func (r *PgSettingsRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Load は保存済みの blob を返す
func (r *PgSettingsRepository) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM app_settings WHERE id = 1`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save は blob を upsert する
func (r *PgSettingsRepository) Save(ctx context.Context, data []byte) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO app_settings (id, data, updated_at)
		 VALUES (1, $1::jsonb, NOW())
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		string(data),
	)
	return err
}

// Delete は blob の行を削除する
func (r *PgSettingsRepository) Delete(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM app_settings WHERE id = 1`)
	return err
}
