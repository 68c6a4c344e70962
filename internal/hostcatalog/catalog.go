package hostcatalog

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quillscript/quillc/internal/ir"
)

//go:embed schema.sql
var schemaSQL string

// Catalog is the host-function lookup table the emitter reads from. It
// implements codegen.HostCatalog structurally (Lookup(ir.Item) (ir.Hash,
// bool)) without importing codegen, keeping the dependency pointed the
// way the layering already runs: codegen depends on nothing below it.
type Catalog struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at path and applies the host
// catalog schema. Idempotent — safe to call multiple times against the
// same file.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("hostcatalog: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("hostcatalog: connect %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("hostcatalog: apply schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("hostcatalog: exec %q: %w", p, err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Lookup resolves item's fully qualified name against the catalog,
// returning the hash the VM registered it under.
func (c *Catalog) Lookup(item ir.Item) (ir.Hash, bool) {
	var raw int64
	err := c.db.QueryRow(
		`SELECT hash FROM host_functions WHERE qualified_name = ?`,
		item.String(),
	).Scan(&raw)
	if err != nil {
		return 0, false
	}
	return ir.Hash(uint64(raw)), true
}

// Entry is one registered host function, as listed by List.
type Entry struct {
	QualifiedName string
	Hash          ir.Hash
}

// List returns every registered host function, ordered by qualified
// name, for tooling that needs to inspect a catalog rather than just
// resolve against it (e.g. the hosts CLI subcommand).
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query(`SELECT qualified_name, hash FROM host_functions ORDER BY qualified_name`)
	if err != nil {
		return nil, fmt.Errorf("hostcatalog: list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var name string
		var raw int64
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, fmt.Errorf("hostcatalog: scan: %w", err)
		}
		entries = append(entries, Entry{QualifiedName: name, Hash: ir.Hash(uint64(raw))})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("hostcatalog: list: %w", err)
	}
	return entries, nil
}
