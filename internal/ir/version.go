package ir

// SchemaVersion is bumped whenever the shape of Meta, IndexedEntry, or
// BuildEntry changes in a way that would invalidate a serialized cache
// entry from a previous version. The core itself never persists these
// structures across runs (no incremental recompilation, per the scope
// this compiler core commits to), but host embedders that snapshot
// diagnostics or golden traces key them by this constant so a version
// bump is a visible, deliberate decision rather than silent drift.
const SchemaVersion = 1

// HashDomainVersion is the version suffix folded into every hashWithDomain
// call (see hash.go). Bumping it invalidates every previously computed
// Hash, forcing a full rebuild instead of mixing old and new hashes.
const HashDomainVersion = "v1"
