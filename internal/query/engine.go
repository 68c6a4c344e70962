package query

import (
	"log/slog"

	"github.com/quillscript/quillc/internal/ast"
	"github.com/quillscript/quillc/internal/constinterp"
	"github.com/quillscript/quillc/internal/index"
	"github.com/quillscript/quillc/internal/ir"
)

// buildingConst tracks a const item's in-progress evaluation so a
// self-referencing (or mutually cyclic) const can be re-entered through
// the same interpreter instance instead of being treated as an unknown
// item. Sharing the interpreter means the recursive re-entry burns the
// same budget the outer evaluation started with, so a genuine cycle
// terminates with BudgetExceeded (spec scenario E) rather than infinite
// Go recursion or a spurious MissingType.
type buildingConst struct {
	interp *constinterp.Interpreter
	ir     ast.ConstExpr
}

// Engine is the query engine: the Meta cache, the build queue, and the
// Index it drains from, threaded through a single compilation.
type Engine struct {
	idx      *index.Index
	impls    *index.ImplRegistry
	meta     map[string]ir.Meta
	queue    buildQueue
	budget   int64
	building map[string]*buildingConst
}

// New constructs an Engine over idx, using impls to resolve instance
// function receivers and budget as the step budget for every fresh const
// evaluation (constinterp.DefaultBudget unless the caller overrides it).
func New(idx *index.Index, impls *index.ImplRegistry, budget int64) *Engine {
	e := &Engine{
		idx:      idx,
		impls:    impls,
		meta:     make(map[string]ir.Meta),
		budget:   budget,
		building: make(map[string]*buildingConst),
	}
	return e
}

// Impls returns the ImplRegistry the engine resolves instance-function
// receivers against, so the emitter can look up a method's Item at a call
// site.
func (e *Engine) Impls() *index.ImplRegistry {
	return e.impls
}

// --- Index delegates (spec §4.3) ---------------------------------------

func (e *Engine) IndexEnum(item ir.Item, span ir.Span, sourceID ir.SourceId, decl *ast.EnumDecl) *ir.CompileError {
	return e.idx.Insert(item, span, sourceID, index.EnumEntry{AST: decl})
}

func (e *Engine) IndexStruct(item ir.Item, span ir.Span, sourceID ir.SourceId, decl *ast.StructDecl) *ir.CompileError {
	return e.idx.Insert(item, span, sourceID, index.StructEntry{AST: decl})
}

func (e *Engine) IndexVariant(item, enumItem ir.Item, span ir.Span, sourceID ir.SourceId, decl *ast.VariantDecl) *ir.CompileError {
	return e.idx.Insert(item, span, sourceID, index.VariantEntry{EnumItem: enumItem, AST: decl})
}

func (e *Engine) IndexFunction(item ir.Item, span ir.Span, sourceID ir.SourceId, decl *ast.FnDecl, call ir.CallConvention) *ir.CompileError {
	return e.idx.Insert(item, span, sourceID, index.FunctionEntry{AST: decl, Call: call})
}

func (e *Engine) IndexClosure(item ir.Item, span ir.Span, sourceID ir.SourceId, decl *ast.ClosureDecl, captures ir.CaptureRecords, call ir.CallConvention) *ir.CompileError {
	return e.idx.Insert(item, span, sourceID, index.ClosureEntry{AST: decl, Captures: captures, Call: call})
}

func (e *Engine) IndexAsyncBlock(item ir.Item, span ir.Span, sourceID ir.SourceId, decl *ast.AsyncBlockDecl, captures ir.CaptureRecords) *ir.CompileError {
	return e.idx.Insert(item, span, sourceID, index.AsyncBlockEntry{AST: decl, Captures: captures})
}

func (e *Engine) IndexConst(item ir.Item, span ir.Span, sourceID ir.SourceId, expr ast.ConstExpr) *ir.CompileError {
	return e.idx.Insert(item, span, sourceID, index.ConstEntry{IR: expr})
}

// --- Public resolution API (spec §4.3) ----------------------------------

// QueryMeta resolves item's metadata, treating the query as one the
// result of compilation actually needs.
func (e *Engine) QueryMeta(item ir.Item) (*ir.Meta, error) {
	return e.queryMetaWithUse(ir.NoSpan, item, ir.UsedValue)
}

// QueryMetaWith resolves item's metadata from span (the caller's
// location, for diagnostics), with the given Used flag. fromItem is
// accepted for API symmetry with spec §4.3 but the core does not
// currently use it for anything beyond documentation of call intent; scope
// in which the lookup happens lives with the caller (the emitter), not
// the engine.
func (e *Engine) QueryMetaWith(span ir.Span, fromItem, item ir.Item, used ir.Used) (*ir.Meta, error) {
	_ = fromItem
	return e.queryMetaWithUse(span, item, used)
}

// ResolveConst implements constinterp.Resolver, letting the const
// interpreter re-enter the engine for a referenced const item.
func (e *Engine) ResolveConst(item ir.Item, used ir.Used) (ir.ConstValue, error) {
	if bc, ok := e.building[item.Key()]; ok {
		return bc.interp.Eval(bc.ir)
	}
	meta, err := e.queryMetaWithUse(ir.NoSpan, item, used)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, ir.NewCompileError(ir.NoSpan, ir.ErrMissingType, "const item %s not found", item)
	}
	constMeta, ok := meta.Kind.(ir.MetaConst)
	if !ok {
		return nil, ir.NewCompileError(ir.NoSpan, ir.ErrExpectedMeta, "expected const meta for %s", item)
	}
	return constMeta.Value, nil
}

// PopBuildEntry drains the next BuildEntry for the emitter to consume, in
// FIFO order (spec §5 ordering guarantee).
func (e *Engine) PopBuildEntry() (BuildEntry, bool) {
	return e.queue.popFront()
}

// QueueUnusedEntries snapshots whatever remains in the Index, resolves
// each as Unused, and reports each produced Meta to visitor — except a
// Public record, whose body is still built (so diagnostics and codegen
// see a consistent queue either way) but is not itself reported as an
// unused-declaration warning, since it may be reachable from outside this
// compilation (the "visibility-gated warnings" supplement). It returns
// whether anything was drained, so the fixed-point drive loop in Drive
// knows whether to keep going (spec §5).
func (e *Engine) QueueUnusedEntries(visitor Visitor) (bool, error) {
	snapshot := e.idx.IterSnapshot()
	any := false
	for _, rec := range snapshot {
		if !e.idx.Contains(rec.Item) {
			// Already resolved by a reentrant query triggered by an
			// earlier iteration of this same snapshot.
			continue
		}
		meta, err := e.queryMetaWithUse(rec.Span, rec.Item, ir.Unused)
		if err != nil {
			return any, err
		}
		if meta != nil {
			any = true
			if rec.Visibility != ir.Public {
				visitor.VisitMeta(rec.SourceID, *meta, rec.Span)
			}
		}
	}
	return any, nil
}

// Drive runs the fixed-point drive loop described in spec §5: drain the
// build queue via emit, then queue whatever remains unused, repeating
// until nothing more is queued.
func (e *Engine) Drive(visitor Visitor, emit func(BuildEntry) error) error {
	for {
		for {
			entry, ok := e.PopBuildEntry()
			if !ok {
				break
			}
			slog.Debug("emitting build entry", "item", entry.Item.String(), "used", entry.Used == ir.UsedValue)
			if err := emit(entry); err != nil {
				return err
			}
		}
		any, err := e.QueueUnusedEntries(visitor)
		if err != nil {
			return err
		}
		if !any {
			slog.Debug("drive reached fixed point")
			return nil
		}
	}
}

// --- Resolution algorithm (spec §4.3, grounded on query_meta_with_use) --

func (e *Engine) queryMetaWithUse(span ir.Span, item ir.Item, used ir.Used) (*ir.Meta, error) {
	if cached, ok := e.meta[item.Key()]; ok {
		return &cached, nil
	}

	rec, ok := e.idx.Take(item)
	if !ok {
		return nil, nil // unknown item, distinct from "known but broken"
	}

	meta, err := e.buildIndexedEntry(span, item, rec, used)
	if err != nil {
		return nil, err
	}

	e.meta[item.Key()] = *meta
	return meta, nil
}

