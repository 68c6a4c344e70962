// Package quilltest is a declarative test-fixture format for exercising
// the query engine and the code emitter together, end to end, without a
// real parser: a Fixture describes a small program's functions and
// closures directly as data, Build turns that data into the same
// ast/query/codegen calls a parser's output would drive, and the
// resulting Unit and diagnostics can be compared against a golden file.
//
// The fixture format follows the teacher's harness.Scenario: a loosely
// typed, yaml-tagged struct tree (Args map[string]interface{} there,
// FixtureExpr's optional-field tagged union here) rather than a fully
// typed grammar, because both are test data meant to be hand-written in
// a fixture file, not a real program's source.
package quilltest
