// Package migrations embeds the SQL schema for Postgres and ClickHouse.
package migrations

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed postgres/*.sql clickhouse/*.sql
var files embed.FS

// Postgres returns the Postgres migrations in apply order.
func Postgres() ([]Migration, error) {
	return load("postgres")
}

// ClickHouse returns the ClickHouse migrations in apply order.
func ClickHouse() ([]Migration, error) {
	return load("clickhouse")
}

// Migration is one SQL file.
type Migration struct {
	Name string
	SQL  string
}

// Statements splits the file on semicolons, dropping blanks. ClickHouse
// only executes one statement per call.
func (m Migration) Statements() []string {
	var out []string
	for _, stmt := range strings.Split(m.SQL, ";") {
		if trimmed := strings.TrimSpace(stmt); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func load(dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		b, err := fs.ReadFile(files, dir+"/"+name)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: name, SQL: string(b)})
	}
	return out, nil
}
