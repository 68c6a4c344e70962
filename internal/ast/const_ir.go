package ast

import "github.com/quillscript/quillc/internal/ir"

// ConstExpr is the sealed interface over the small IR the const
// interpreter walks: literals, binary ops, scope blocks, variable
// references, and const-item references. Deliberately narrower than Expr:
// constant expressions never call, never construct closures, and never
// branch.
type ConstExpr interface {
	constExprNode()
	Span() ir.Span
}

// ConstLit is a literal constant value.
type ConstLit struct {
	Value ir.ConstValue
	span  ir.Span
}

func NewConstLit(v ir.ConstValue, span ir.Span) *ConstLit { return &ConstLit{Value: v, span: span} }
func (e *ConstLit) constExprNode()                        {}
func (e *ConstLit) Span() ir.Span                         { return e.span }

// ConstBinOp applies a BinOp to two const subexpressions.
type ConstBinOp struct {
	Op    BinOp
	Left  ConstExpr
	Right ConstExpr
	span  ir.Span
}

func NewConstBinOp(op BinOp, left, right ConstExpr, span ir.Span) *ConstBinOp {
	return &ConstBinOp{Op: op, Left: left, Right: right, span: span}
}
func (e *ConstBinOp) constExprNode() {}
func (e *ConstBinOp) Span() ir.Span  { return e.span }

// ConstVarRef refers to a name bound earlier in the same const block (a
// `let` inside the const body), not to another top-level const item; see
// ConstItemRef for that.
type ConstVarRef struct {
	Name string
	span ir.Span
}

func NewConstVarRef(name string, span ir.Span) *ConstVarRef {
	return &ConstVarRef{Name: name, span: span}
}
func (e *ConstVarRef) constExprNode() {}
func (e *ConstVarRef) Span() ir.Span  { return e.span }

// ConstItemRef refers to another const declaration by its canonical Item,
// forcing the interpreter to recurse into the query engine to resolve it
// before this expression can be evaluated.
type ConstItemRef struct {
	Item ir.Item
	span ir.Span
}

func NewConstItemRef(item ir.Item, span ir.Span) *ConstItemRef {
	return &ConstItemRef{Item: item, span: span}
}
func (e *ConstItemRef) constExprNode() {}
func (e *ConstItemRef) Span() ir.Span  { return e.span }

// ConstLetStmt binds Value to Name for the remainder of the enclosing
// ConstBlock.
type ConstLetStmt struct {
	Name  string
	Value ConstExpr
	Span  ir.Span
}

// ConstBlock is a sequence of const let-bindings followed by a trailing
// expression that becomes the block's value. A const block with no
// trailing expression evaluates to ir.ConstUnit{}.
type ConstBlock struct {
	Stmts []ConstLetStmt
	Tail  ConstExpr // nil for a unit-valued block
	span  ir.Span
}

func NewConstBlock(stmts []ConstLetStmt, tail ConstExpr, span ir.Span) *ConstBlock {
	return &ConstBlock{Stmts: stmts, Tail: tail, span: span}
}
func (e *ConstBlock) constExprNode() {}
func (e *ConstBlock) Span() ir.Span  { return e.span }
