package main

import (
	"testing"
	"testing/fstest"

	"github.com/quotekit/backend/migrations"
)

func TestCollectUpFiles_SortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"002_b.up.sql":         {Data: []byte("SELECT 2;")},
		"001_a.up.sql":         {Data: []byte("SELECT 1;")},
		"000_drop_all.sql":     {Data: []byte("")},
		"000_consolidated.sql": {Data: []byte("")},
	}
	got := collectUpFiles(fsys)
	if len(got) != 2 || got[0] != "001_a.up.sql" || got[1] != "002_b.up.sql" {
		t.Errorf("unexpected files: %v", got)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	files := collectUpFiles(migrations.FS)
	if len(files) == 0 || files[0] != "001_create_app_settings.up.sql" {
		t.Errorf("unexpected embedded migrations: %v", files)
	}
	for _, name := range []string{"000_drop_all.sql", "000_consolidated.sql"} {
		if _, err := migrations.FS.ReadFile(name); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}
