package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quotekit/backend/internal/config"
	"github.com/quotekit/backend/internal/logging"
	"github.com/quotekit/backend/migrations"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   差分マイグレーションを適用
  status      適用済み／未適用のマイグレーションを表示
  reset       全テーブルを DROP し、集約スキーマで再作成
  fresh       全テーブルを DROP し、全マイグレーションを順番に適用`)
	os.Exit(1)
}

func main() {
	cfg := config.Load()
	logging.Setup()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		runIncremental(ctx, pool, migrations.FS)
	case "status":
		runStatus(ctx, pool, migrations.FS)
	case "reset":
		runDropAll(ctx, pool, migrations.FS)
		runConsolidated(ctx, pool, migrations.FS)
	case "fresh":
		runDropAll(ctx, pool, migrations.FS)
		runIncremental(ctx, pool, migrations.FS)
	default:
		usage()
	}
}

// collectUpFiles は .up.sql ファイル名をソート済みで返す
func collectUpFiles(fsys fs.FS) []string {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		logging.Fatal("read migrations failed", "error", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files
}

func ensureSchemaMigrations(ctx context.Context, pool *pgxpool.Pool) {
	_, _ = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
}

func isApplied(ctx context.Context, pool *pgxpool.Pool, name string) bool {
	var exists bool
	_ = pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists)
	return exists
}

func execFile(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, filename string) error {
	sql, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("exec %s: %w", filename, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// (default) 差分マイグレーション
// ---------------------------------------------------------------------------
func runIncremental(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) {
	ensureSchemaMigrations(ctx, pool)

	applied := 0
	for i, filename := range collectUpFiles(fsys) {
		name := strings.TrimSuffix(filename, ".up.sql")
		if isApplied(ctx, pool, name) {
			continue
		}
		if err := execFile(ctx, pool, fsys, filename); err != nil {
			logging.Fatal("migration failed", "migration", name, "error", err)
		}
		if _, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			logging.Fatal("record migration failed", "migration", name, "error", err)
		}
		applied++
		slog.Info("migration completed", "number", i+1, "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
}

// ---------------------------------------------------------------------------
// status
// ---------------------------------------------------------------------------
func runStatus(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) {
	ensureSchemaMigrations(ctx, pool)
	for _, filename := range collectUpFiles(fsys) {
		name := strings.TrimSuffix(filename, ".up.sql")
		state := "pending"
		if isApplied(ctx, pool, name) {
			state = "applied"
		}
		fmt.Printf("%-10s %s\n", state, name)
	}
}

// ---------------------------------------------------------------------------
// 全テーブル DROP
// ---------------------------------------------------------------------------
func runDropAll(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) {
	slog.Info("dropping all tables")
	if err := execFile(ctx, pool, fsys, "000_drop_all.sql"); err != nil {
		logging.Fatal("drop all failed", "error", err)
	}
	slog.Info("all tables dropped")
}

// ---------------------------------------------------------------------------
// 集約スキーマで再作成
// ---------------------------------------------------------------------------
func runConsolidated(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) {
	slog.Info("applying consolidated schema")
	if err := execFile(ctx, pool, fsys, "000_consolidated.sql"); err != nil {
		logging.Fatal("consolidated apply failed", "error", err)
	}

	// 全マイグレーションを適用済みとして記録
	ensureSchemaMigrations(ctx, pool)
	upFiles := collectUpFiles(fsys)
	for _, filename := range upFiles {
		name := strings.TrimSuffix(filename, ".up.sql")
		_, _ = pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name)
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(upFiles))
}
