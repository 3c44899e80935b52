package migrate

import (
	"io/fs"
	"path"
	"strings"
	"testing"
	"testing/fstest"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := fs.Glob(Embedded(), path.Join(embeddedRoot, "*_"+suffix+".sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no %s migration file found", suffix)
	}
	data, err := fs.ReadFile(Embedded(), matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func assertContains(t *testing.T, content string, checks []string) {
	t.Helper()
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestUsersMigrationCascadesProfiles(t *testing.T) {
	content := readMigration(t, "create_users_and_profiles")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS users",
		"roles_selected boolean NOT NULL DEFAULT false",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))",
		"CREATE TABLE IF NOT EXISTS job_seekers",
		"certificates jsonb NOT NULL DEFAULT '[]'::jsonb",
		"CREATE TABLE IF NOT EXISTS equipment_owners",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS users",
	})
}

func TestEquipmentMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "create_equipment")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS equipment",
		"CHECK (availability IN ('available', 'on-hire'))",
		"is_active boolean NOT NULL DEFAULT true",
		"CREATE TABLE IF NOT EXISTS contact_inquiries",
		"FOREIGN KEY (equipment_id) REFERENCES equipment(id) ON DELETE CASCADE",
		"CHECK (status IN ('pending', 'responded', 'resolved'))",
		"DROP TABLE IF EXISTS contact_inquiries",
	})
}

func TestLocationsMigrationContainsHierarchy(t *testing.T) {
	content := readMigration(t, "create_locations")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS locations",
		"parent_id bigint NULL REFERENCES locations(id)",
		"CREATE TABLE IF NOT EXISTS location_aliases",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_location_alias",
	})
}

func TestEmbeddedMigrationsValidate(t *testing.T) {
	if err := ValidateDir(EmbeddedDir); err != nil {
		t.Fatalf("validate embedded migrations: %v", err)
	}
}

func TestValidateFSRejectsBadFiles(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"bad name": {
			"m/001_init.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		},
		"missing down": {
			"m/20250101000000_init.sql": {Data: []byte("-- +goose Up\n")},
		},
		"duplicate version": {
			"m/20250101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
			"m/20250101000000_b.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if err := ValidateFS(fsys, "m"); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	full, err := CreateSQLMigration(dir, "Add Equipment Tags!")
	if err != nil {
		t.Fatalf("CreateSQLMigration: %v", err)
	}
	if !strings.HasSuffix(full, "_add_equipment_tags.sql") {
		t.Fatalf("unexpected filename %q", full)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
}
