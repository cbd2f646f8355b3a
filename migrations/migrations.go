// Package migrations embeds the SQL files applied by cmd/migrate.
package migrations

import "embed"

// FS holds the numbered *.up.sql files plus 000_drop_all.sql and
// 000_consolidated.sql.
//
//go:embed *.sql
var FS embed.FS
