package shared

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// migrationFile matches "0000_create_songs_up.sql".
var migrationFile = regexp.MustCompile(`^(\d+)_(\w+)_(up|down)\.sql$`)

// Migration is one versioned schema change of the songs database.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// loadMigrations reads the embedded scripts and pairs them by version, oldest first.
func loadMigrations() ([]Migration, error) {
	names, err := fs.Glob(migrationFiles, "sql/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	byVersion := map[int]*Migration{}
	for _, name := range names {
		parts := migrationFile.FindStringSubmatch(strings.TrimPrefix(name, "sql/"))
		if parts == nil {
			continue
		}

		version, _ := strconv.Atoi(parts[1])
		content, err := migrationFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: parts[2]}
			byVersion[version] = m
		}
		if parts[3] == "up" {
			m.Up = string(content)
		} else {
			m.Down = string(content)
		}
	}

	migrations := lo.MapToSlice(byVersion, func(_ int, m *Migration) Migration { return *m })
	slices.SortFunc(migrations, func(a, b Migration) int { return a.Version - b.Version })

	for _, m := range migrations {
		if m.Up == "" || m.Down == "" {
			return nil, fmt.Errorf("migration %04d_%s needs both up and down scripts", m.Version, m.Name)
		}
	}
	return migrations, nil
}

// RunMigrations applies every migration not yet recorded in schema_migrations.
func RunMigrations(db *sql.DB) error {
	pending, err := pendingMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range pending {
		if err := migrate(db, m.Up, "INSERT INTO schema_migrations (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to apply migration %04d_%s: %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// PendingMigrations returns the versions that [RunMigrations] would apply, in order.
func PendingMigrations(db *sql.DB) ([]int, error) {
	pending, err := pendingMigrations(db)
	if err != nil {
		return nil, err
	}
	return lo.Map(pending, func(m Migration, _ int) int { return m.Version }), nil
}

// RollbackMigration reverts the most recently applied migration.
func RollbackMigration(db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		return fmt.Errorf("no migrations to roll back")
	}

	latest := slices.Max(applied)
	m, ok := lo.Find(migrations, func(m Migration) bool { return m.Version == latest })
	if !ok {
		return fmt.Errorf("applied migration %d has no script", latest)
	}

	if err := migrate(db, m.Down, "DELETE FROM schema_migrations WHERE version = ?", m.Version); err != nil {
		return fmt.Errorf("failed to roll back migration %04d_%s: %w", m.Version, m.Name, err)
	}
	return nil
}

func pendingMigrations(db *sql.DB) ([]Migration, error) {
	migrations, err := loadMigrations()
	if err != nil {
		return nil, err
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return nil, err
	}

	return lo.Filter(migrations, func(m Migration, _ int) bool {
		return !slices.Contains(applied, m.Version)
	}), nil
}

// appliedVersions creates schema_migrations when missing and returns its versions.
func appliedVersions(db *sql.DB) ([]int, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	rows, err := db.Query("SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations table: %w", err)
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// migrate runs script statement by statement and then record, all in one transaction.
func migrate(db *sql.DB, script, record string, version int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements(script) {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("%w\nstatement: %s", err, stmt)
		}
	}

	if _, err := tx.Exec(record, version); err != nil {
		return err
	}
	return tx.Commit()
}

// statements splits a script on semicolons, dropping "--" comments and blank statements.
func statements(script string) []string {
	lines := lo.Map(strings.Split(script, "\n"), func(line string, _ int) string {
		if i := strings.Index(line, "--"); i >= 0 {
			line = line[:i]
		}
		return strings.TrimSpace(line)
	})

	stmts := strings.Split(strings.Join(lines, "\n"), ";")
	return lo.FilterMap(stmts, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
}
