package codegen

import "github.com/quillscript/quillc/internal/ir"

// HostCatalog is the emitter-side read-only view onto the VM's
// host-registered functions (spec §6): a lookup from a fully qualified
// item to the hash the VM will dispatch a direct call to.
type HostCatalog interface {
	Lookup(item ir.Item) (ir.Hash, bool)
}

// NopHostCatalog resolves nothing; used when a compilation has no host
// module wired in (e.g. unit tests that only exercise locals and
// closures).
type NopHostCatalog struct{}

func (NopHostCatalog) Lookup(ir.Item) (ir.Hash, bool) { return 0, false }
