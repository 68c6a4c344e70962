package index

import "github.com/quillscript/quillc/internal/ir"

// ImplRegistry resolves instance-function receivers. Spec §9 leaves "how
// impls are matched to receivers" to the surrounding driver; this module
// resolves it the way the teacher resolves CUE-document cross-references
// at index time (internal/compiler/concept.go's two-pass compile: gather
// names first, then bind the references that depend on them), rather than
// doing any type-directed dispatch. A method call site supplies the
// impl's Item directly (the parser collaborator is expected to resolve
// `receiver_expr.method()` down to the statically-declared impl block the
// method lives in — a Non-goal of this core, which has no type system);
// ImplRegistry just turns (impl_item, method_name) into the function's
// canonical Item.
type ImplRegistry struct {
	methods map[string]ir.Item
}

// NewImplRegistry returns an empty registry.
func NewImplRegistry() *ImplRegistry {
	return &ImplRegistry{methods: make(map[string]ir.Item)}
}

// Register records that implItem declares a method named name at
// fnItem. Re-registering the same (implItem, name) pair is a caller bug
// (the Index's ItemConflict on fnItem's own insertion already guards
// against re-declaring the function itself); Register does not duplicate
// that check.
func (r *ImplRegistry) Register(implItem ir.Item, name string, fnItem ir.Item) {
	r.methods[implKey(implItem, name)] = fnItem
}

// Resolve looks up the function Item for a method call on implItem.
func (r *ImplRegistry) Resolve(implItem ir.Item, name string) (ir.Item, bool) {
	fnItem, ok := r.methods[implKey(implItem, name)]
	return fnItem, ok
}

func implKey(implItem ir.Item, name string) string {
	return implItem.Key() + "\x02" + name
}
