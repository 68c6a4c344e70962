// Package ir provides the canonical data model shared by every stage of the
// compilation core: Item, Hash, Span, the IndexedEntry/CompileMeta variants,
// and the capture/const-value types the query engine and code emitter pass
// around by value.
//
// This package contains type definitions and pure functions only. All other
// internal packages import ir; ir imports nothing internal. This keeps the
// data model the foundational layer with no circular dependencies, mirroring
// how the teacher keeps its own ir package leaf-only.
package ir
