// Package constinterp implements the budgeted, tree-walking const
// expression evaluator described in spec §4.4: literals, binary ops,
// scope blocks, variable references, and const-item references, with a
// step budget that guarantees termination instead of a type-level
// termination check.
//
// The interpreter never imports the query package. Resolving another
// const item's value (ConstItemRef) is delegated through the Resolver
// interface, which the query engine implements; this keeps the
// dependency arrow pointing one way (query -> constinterp) even though
// the runtime call graph is mutually recursive (interpreter calls back
// into the engine, which may construct a fresh interpreter in turn).
package constinterp
