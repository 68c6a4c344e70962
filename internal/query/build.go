package query

import (
	"github.com/quillscript/quillc/internal/ast"
	"github.com/quillscript/quillc/internal/ir"
)

// Build is the sealed union of payloads a BuildEntry can carry, mirroring
// the Indexed variants that produce work for the emitter plus the
// diagnostics-only UnusedConst payload.
type Build interface {
	buildNode()
}

// BuildFunction is a free function body awaiting emission.
type BuildFunction struct {
	AST *ast.FnDecl
}

func (BuildFunction) buildNode() {}

// BuildInstanceFunction is a function body declared inside an impl block.
type BuildInstanceFunction struct {
	AST      *ast.FnDecl
	ImplItem ir.Item
}

func (BuildInstanceFunction) buildNode() {}

// BuildClosure is a closure body awaiting emission, with its resolved
// capture list carried alongside so the emitter never has to re-derive it.
type BuildClosure struct {
	AST      *ast.ClosureDecl
	Captures ir.CaptureRecords
}

func (BuildClosure) buildNode() {}

// BuildAsyncBlock is a deferred block, emitted as a zero-parameter
// closure.
type BuildAsyncBlock struct {
	AST      *ast.AsyncBlockDecl
	Captures ir.CaptureRecords
}

func (BuildAsyncBlock) buildNode() {}

// BuildUnusedConst carries nothing for the emitter to emit; its only
// purpose is to reach the diagnostics visitor during the unused-entries
// drain (spec invariant 5, scenario F).
type BuildUnusedConst struct {
	Value ir.ConstValue
}

func (BuildUnusedConst) buildNode() {}

// BuildEntry is an item queued for the emitter, or for diagnostics-only
// drain, alongside the source it came from and whether it was reached
// because something live needed it.
type BuildEntry struct {
	Item     ir.Item
	Build    Build
	Source   ir.CompileSource
	SourceID ir.SourceId
	Used     ir.Used
}
