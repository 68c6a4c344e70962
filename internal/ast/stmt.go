package ast

import "github.com/quillscript/quillc/internal/ir"

// Stmt is the sealed interface over body statements.
type Stmt interface {
	stmtNode()
	Span() ir.Span
}

// LetStmt binds Value to Pattern, declaring a new local in the current
// scope (or discarding it, for a wildcard pattern).
type LetStmt struct {
	Pattern Param
	Value   Expr
	span    ir.Span
}

func NewLetStmt(pattern Param, value Expr, span ir.Span) *LetStmt {
	return &LetStmt{Pattern: pattern, Value: value, span: span}
}
func (s *LetStmt) stmtNode()     {}
func (s *LetStmt) Span() ir.Span { return s.span }

// ExprStmt evaluates Expr for its side effects, discarding the result.
type ExprStmt struct {
	Expr Expr
	span ir.Span
}

func NewExprStmt(expr Expr, span ir.Span) *ExprStmt {
	return &ExprStmt{Expr: expr, span: span}
}
func (s *ExprStmt) stmtNode()     {}
func (s *ExprStmt) Span() ir.Span { return s.span }
