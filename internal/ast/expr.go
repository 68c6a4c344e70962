package ast

import "github.com/quillscript/quillc/internal/ir"

// BinOp is a binary operator shared by both the body expression grammar and
// the const IR, so the const interpreter and the emitter agree on opcodes.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpShl
	OpShr
	OpEq
	OpLt
)

// Expr is the sealed interface over function/closure body expressions.
type Expr interface {
	exprNode()
	Span() ir.Span
}

// Ident is a bare name reference, resolved against the enclosing scope
// stack (a local) or, failing that, the index (a function, const, or host
// item).
type Ident struct {
	Name string
	span ir.Span
}

func NewIdent(name string, span ir.Span) *Ident { return &Ident{Name: name, span: span} }
func (e *Ident) exprNode()                      {}
func (e *Ident) Span() ir.Span                  { return e.span }

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	span  ir.Span
}

func NewIntLit(v int64, span ir.Span) *IntLit { return &IntLit{Value: v, span: span} }
func (e *IntLit) exprNode()                   {}
func (e *IntLit) Span() ir.Span               { return e.span }

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
	span  ir.Span
}

func NewBoolLit(v bool, span ir.Span) *BoolLit { return &BoolLit{Value: v, span: span} }
func (e *BoolLit) exprNode()                   {}
func (e *BoolLit) Span() ir.Span               { return e.span }

// BinaryExpr applies a BinOp to two subexpressions.
type BinaryExpr struct {
	Op    BinOp
	Left  Expr
	Right Expr
	span  ir.Span
}

func NewBinaryExpr(op BinOp, left, right Expr, span ir.Span) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right, span: span}
}
func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Span() ir.Span { return e.span }

// CallExpr invokes Callee with Args. Callee is usually an Ident naming a
// function, closure-bound local, or host-registered function.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	span   ir.Span
}

func NewCallExpr(callee Expr, args []Expr, span ir.Span) *CallExpr {
	return &CallExpr{Callee: callee, Args: args, span: span}
}
func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Span() ir.Span { return e.span }

// ClosureLit is the construction-site occurrence of a closure or async
// block inside a body: `|| ...` or `async { ... }` written where an
// expression is expected. Item is the canonical Item the indexer already
// registered for this literal; the emitter looks its Meta up by Item
// rather than re-deriving it.
type ClosureLit struct {
	Item ir.Item
	span ir.Span
}

func NewClosureLit(item ir.Item, span ir.Span) *ClosureLit {
	return &ClosureLit{Item: item, span: span}
}
func (e *ClosureLit) exprNode()     {}
func (e *ClosureLit) Span() ir.Span { return e.span }

// Block is a brace-delimited sequence of statements with an optional
// trailing expression that becomes the block's value.
type Block struct {
	Stmts []Stmt
	Tail  Expr // nil when the block has no trailing expression
	span  ir.Span
}

func NewBlock(stmts []Stmt, tail Expr, span ir.Span) *Block {
	return &Block{Stmts: stmts, Tail: tail, span: span}
}
func (e *Block) exprNode()     {}
func (e *Block) Span() ir.Span { return e.span }
