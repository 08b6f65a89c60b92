package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Files holds the schema shipped with the binary.
//
//go:embed sql/*.sql
var Files embed.FS

const dir = "sql"

type migration struct {
	Name    string
	Path    string
	Version string
}

func Apply(ctx context.Context, db *sqlx.DB, fsys fs.FS) error {
	if err := ensureTable(ctx, db); err != nil {
		return err
	}
	migs, err := listMigrations(fsys)
	if err != nil {
		return err
	}
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}
	for _, mig := range migs {
		if applied[mig.Version] {
			continue
		}
		if err := applyMigration(ctx, db, fsys, mig); err != nil {
			return err
		}
	}
	return nil
}

// Pending reports migrations not yet recorded in schema_migrations.
func Pending(ctx context.Context, db *sqlx.DB, fsys fs.FS) ([]string, error) {
	if err := ensureTable(ctx, db); err != nil {
		return nil, err
	}
	migs, err := listMigrations(fsys)
	if err != nil {
		return nil, err
	}
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, mig := range migs {
		if !applied[mig.Version] {
			names = append(names, mig.Name)
		}
	}
	return names, nil
}

func ensureTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
  id SERIAL PRIMARY KEY,
  version TEXT NOT NULL,
  name TEXT NOT NULL,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS uq_schema_migrations_version ON schema_migrations(version)`)
	return err
}

func listMigrations(fsys fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	migs := make([]migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}
		version := parseVersion(name)
		if version == "" {
			return nil, fmt.Errorf("migration %s: name must look like V<n>__description.sql", name)
		}
		migs = append(migs, migration{
			Name:    name,
			Path:    path.Join(dir, name),
			Version: version,
		})
	}
	sort.Slice(migs, func(i, j int) bool {
		iVersion, iOk := parseVersionNumber(migs[i].Name)
		jVersion, jOk := parseVersionNumber(migs[j].Name)
		switch {
		case iOk && jOk && iVersion != jVersion:
			return iVersion < jVersion
		case iOk != jOk:
			return iOk
		default:
			return migs[i].Name < migs[j].Name
		}
	})
	return migs, nil
}

func appliedVersions(ctx context.Context, db *sqlx.DB) (map[string]bool, error) {
	rows := []string{}
	if err := db.SelectContext(ctx, &rows, `SELECT version FROM schema_migrations`); err != nil {
		return nil, err
	}
	versions := make(map[string]bool, len(rows))
	for _, version := range rows {
		versions[version] = true
	}
	return versions, nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, fsys fs.FS, mig migration) error {
	content, err := fs.ReadFile(fsys, mig.Path)
	if err != nil {
		return err
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("apply %s: %w", mig.Name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name); err != nil {
		return fmt.Errorf("record %s: %w", mig.Name, err)
	}
	return tx.Commit()
}

func parseVersion(name string) string {
	if !strings.HasPrefix(name, "V") {
		return ""
	}
	parts := strings.SplitN(name[1:], "__", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[0])
}

func parseVersionNumber(name string) (int, bool) {
	raw := parseVersion(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
