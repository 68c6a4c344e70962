// Package ast defines the tagged syntax tree the parser collaborator is
// assumed to produce (parsing itself is out of scope for this module).
// Every node carries the ir.Span it occupies in its source.
//
// Two node families live here. Decl and the body-expression nodes
// (Expr/Stmt) describe ordinary function and closure bodies; ConstExpr is
// the smaller IR the const interpreter walks, kept deliberately narrower
// than the general expression grammar since constant expressions never
// call, branch, or loop.
package ast
