package ast

import "github.com/quillscript/quillc/internal/ir"

// FnDecl is a free or instance function declaration. ImplItem is the zero
// Item for a free function; set for a function declared inside an impl
// block.
type FnDecl struct {
	Name     string
	Params   []Param
	Body     *Block
	Call     ir.CallConvention
	ImplItem ir.Item
	Span     ir.Span
}

// ClosureDecl is the body-and-capture half of a closure literal, indexed
// separately from its ClosureLit construction site. Captures is filled in
// by the indexer once it has walked Body and resolved free variables
// against the enclosing scopes.
type ClosureDecl struct {
	Params   []Param
	Body     *Block
	Captures ir.CaptureRecords
	Call     ir.CallConvention
	Span     ir.Span
}

// AsyncBlockDecl is a deferred `async { ... }` block, indexed as a
// zero-parameter closure per spec.
type AsyncBlockDecl struct {
	Body     *Block
	Captures ir.CaptureRecords
	Span     ir.Span
}

// StructDecl is a (non-variant) struct declaration.
type StructDecl struct {
	Name  string
	Shape ir.StructShape
	Span  ir.Span
}

// EnumDecl is an enum type declaration; VariantNames lists its members in
// declaration order so the indexer can derive each variant's Item as
// EnumItem.Join(name).
type EnumDecl struct {
	Name         string
	VariantNames []string
	Span         ir.Span
}

// VariantDecl is a single enum member.
type VariantDecl struct {
	Name  string
	Shape ir.StructShape
	Span  ir.Span
}

// ConstDecl is a constant declaration; IR is the expression the const
// interpreter evaluates.
type ConstDecl struct {
	Name string
	IR   ConstExpr
	Span ir.Span
}
