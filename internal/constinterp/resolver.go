package constinterp

import "github.com/quillscript/quillc/internal/ir"

// Resolver re-enters the query engine to resolve a const item referenced
// from inside another const's body. The query engine's Meta cache
// prevents a given const from ever being evaluated twice, so a cyclic
// reference (spec scenario E) terminates via budget exhaustion rather
// than via resolver-side cycle detection.
type Resolver interface {
	ResolveConst(item ir.Item, used ir.Used) (ir.ConstValue, error)
}
