package hostcatalog

import (
	"fmt"
	"strings"

	"github.com/quillscript/quillc/internal/ir"
)

// Register records item as a host-registered function under hash,
// overwriting any previous registration for the same qualified name.
// Called once per host function at startup, before any compilation
// queries the catalog.
func (c *Catalog) Register(item ir.Item, hash ir.Hash) error {
	_, err := c.db.Exec(
		`INSERT INTO host_functions (qualified_name, hash) VALUES (?, ?)
		 ON CONFLICT(qualified_name) DO UPDATE SET hash = excluded.hash`,
		item.String(), int64(uint64(hash)),
	)
	if err != nil {
		return fmt.Errorf("hostcatalog: register %s: %w", item, err)
	}
	return nil
}

// RegisterAll is a convenience for bulk startup registration, accepting
// each function under the same "::"-joined textual form Item.String()
// produces.
func (c *Catalog) RegisterAll(entries map[string]ir.Hash) error {
	for name, hash := range entries {
		if err := c.Register(ir.NewItem(strings.Split(name, "::")...), hash); err != nil {
			return err
		}
	}
	return nil
}
