// Package index holds the pre-build record of every declared item: the
// map from a canonical ir.Item to the IndexedEntry awaiting metadata
// resolution, plus the ImplRegistry used to resolve instance-function
// receivers (see DESIGN.md's Open Question decision).
//
// An Index is populated once, leaves-first, by the indexing pass and then
// drained entry-by-entry by the query engine; nothing in this package
// talks to the query engine directly.
package index
