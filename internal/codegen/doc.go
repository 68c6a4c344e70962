// Package codegen is the code emitter (spec §4.5): it drains BuildEntry
// values from the query engine and produces a flat instruction stream per
// function, closure, and async block, using a per-build scope stack to
// track local slots and the closure-capture discipline that lets a
// zero-capture closure be indistinguishable from a function at its call
// site.
//
// The walk here is structurally the same shape as the teacher's
// querysql.SQLCompiler: a type switch over a small sealed AST, assembled
// into a flat output form (SQL there, an instruction stream here) with a
// deterministic traversal order.
package codegen
