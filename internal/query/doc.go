// Package query implements the lazy, item-driven resolution engine that
// is the centerpiece of the compilation core: on-demand metadata
// resolution backed by a Meta cache, a FIFO build queue the code emitter
// drains, and the fixed-point "queue unused entries" pass that makes
// dead declarations still compile (for diagnostics) without ever being
// needed by anything live.
//
// Engine is the single mutable context threaded through a compilation
// (spec §5): the Index, the Meta cache, the build queue, and the set of
// consts currently mid-evaluation all live here, all single-writer, no
// locks.
package query
