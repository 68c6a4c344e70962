package index

import (
	"github.com/quillscript/quillc/internal/ast"
	"github.com/quillscript/quillc/internal/ir"
)

// IndexedEntry is the sealed union of every pre-build record shape, per
// spec §3. Exactly one concrete type is stored per Item in an Index.
type IndexedEntry interface {
	indexedEntry()
}

// EnumEntry is an enum type declaration; its variants reference it by
// EnumItem and resolve it recursively through query_meta.
type EnumEntry struct {
	AST *ast.EnumDecl
}

func (EnumEntry) indexedEntry() {}

// StructEntry is a (non-variant) struct declaration.
type StructEntry struct {
	AST *ast.StructDecl
}

func (StructEntry) indexedEntry() {}

// VariantEntry is a single enum member; EnumItem names its parent enum's
// canonical Item.
type VariantEntry struct {
	EnumItem ir.Item
	AST      *ast.VariantDecl
}

func (VariantEntry) indexedEntry() {}

// FunctionEntry is a free or instance function awaiting a body build.
type FunctionEntry struct {
	AST  *ast.FnDecl
	Call ir.CallConvention
}

func (FunctionEntry) indexedEntry() {}

// ClosureEntry is a closure literal with its capture list already
// resolved at index time (spec invariant 4: captures are fixed before the
// body is ever emitted).
type ClosureEntry struct {
	AST      *ast.ClosureDecl
	Captures ir.CaptureRecords
	Call     ir.CallConvention
}

func (ClosureEntry) indexedEntry() {}

// AsyncBlockEntry is a deferred block, indexed as a zero-parameter
// closure with CallAsync convention.
type AsyncBlockEntry struct {
	AST      *ast.AsyncBlockDecl
	Captures ir.CaptureRecords
}

func (AsyncBlockEntry) indexedEntry() {}

// ConstEntry is a constant expression awaiting evaluation.
type ConstEntry struct {
	IR ast.ConstExpr
}

func (ConstEntry) indexedEntry() {}
