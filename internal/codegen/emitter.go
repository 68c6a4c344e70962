package codegen

import (
	"github.com/quillscript/quillc/internal/ast"
	"github.com/quillscript/quillc/internal/ir"
	"github.com/quillscript/quillc/internal/query"
)

// Emitter drains BuildEntries from a query.Engine and assembles each into
// a FunctionUnit, following the state machine in spec §4.5: Queued (the
// entry sitting in the engine's queue) → BodyCompiling (scope opened,
// params bound) → BodyCompiled (Clean emitted) → Finalised (Return
// emitted, scope popped). Each build's steps run straight through
// compileBody; an error at any step aborts only that item, matching the
// engine's own per-item error boundary.
type Emitter struct {
	engine     *query.Engine
	hosts      HostCatalog
	visitor    query.Visitor
	varVisitor VarVisitor
}

// New constructs an Emitter over engine. hosts, visitor, and varVisitor
// may be nil, in which case they default to no-ops.
func New(engine *query.Engine, hosts HostCatalog, visitor query.Visitor, varVisitor VarVisitor) *Emitter {
	if hosts == nil {
		hosts = NopHostCatalog{}
	}
	if visitor == nil {
		visitor = query.NopVisitor{}
	}
	if varVisitor == nil {
		varVisitor = NopVarVisitor{}
	}
	return &Emitter{engine: engine, hosts: hosts, visitor: visitor, varVisitor: varVisitor}
}

// EmitAll drives the engine to a fixed point (spec §5) and returns the
// resulting Unit, functions ordered in queue-drain order.
func (em *Emitter) EmitAll() (*Unit, error) {
	unit := NewUnit()
	err := em.engine.Drive(em.visitor, func(entry query.BuildEntry) error {
		return em.emitBuildEntry(unit, entry)
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

func (em *Emitter) emitBuildEntry(unit *Unit, entry query.BuildEntry) error {
	switch b := entry.Build.(type) {
	case query.BuildFunction:
		instrs, paramCount, cerr := em.compileBody(entry.SourceID, b.AST.Params, b.AST.Body, nil, b.AST.Span, true)
		if cerr != nil {
			return cerr
		}
		unit.Append(FunctionUnit{Item: entry.Item, Hash: ir.HashItem(entry.Item), Instrs: instrs, Call: b.AST.Call, ParamCount: paramCount})
		return nil

	case query.BuildInstanceFunction:
		if _, ok := em.engine.Impls().Resolve(b.ImplItem, b.AST.Name); !ok {
			return ir.NewCompileError(b.AST.Span, ir.ErrUnresolvedInstanceMethod,
				"instance method %q not registered for impl %s", b.AST.Name, b.ImplItem)
		}
		instrs, paramCount, cerr := em.compileBody(entry.SourceID, b.AST.Params, b.AST.Body, nil, b.AST.Span, true)
		if cerr != nil {
			return cerr
		}
		unit.Append(FunctionUnit{Item: entry.Item, Hash: ir.HashItem(entry.Item), Instrs: instrs, Call: b.AST.Call, ParamCount: paramCount})
		return nil

	case query.BuildClosure:
		instrs, paramCount, cerr := em.compileBody(entry.SourceID, b.AST.Params, b.AST.Body, b.Captures, b.AST.Span, false)
		if cerr != nil {
			return cerr
		}
		unit.Append(FunctionUnit{Item: entry.Item, Hash: ir.HashItem(entry.Item), Instrs: instrs, Call: b.AST.Call, ParamCount: paramCount})
		return nil

	case query.BuildAsyncBlock:
		instrs, paramCount, cerr := em.compileBody(entry.SourceID, nil, b.AST.Body, b.Captures, b.AST.Span, false)
		if cerr != nil {
			return cerr
		}
		unit.Append(FunctionUnit{Item: entry.Item, Hash: ir.HashItem(entry.Item), Instrs: instrs, Call: ir.CallAsync, ParamCount: paramCount})
		return nil

	case query.BuildUnusedConst:
		// Nothing to assemble; the diagnostics visitor already saw this
		// item's Meta during the unused-entries drain.
		return nil

	default:
		panic("codegen: unhandled Build variant")
	}
}

// compileBody runs the body-emission regime described in spec §4.5 steps
// 1-6, shared by functions, closures, and async blocks. allowSelf permits
// a self parameter (valid for instance functions, an error for closures
// and async blocks).
func (em *Emitter) compileBody(sourceID ir.SourceId, params []ast.Param, body *ast.Block, captures ir.CaptureRecords, span ir.Span, allowSelf bool) ([]Inst, int, *ir.CompileError) {
	scope := NewScopeStack()
	scope.PushScope()

	for _, p := range params {
		switch p.Kind {
		case ast.ParamSelf:
			if !allowSelf {
				return nil, 0, ir.NewCompileError(p.Span, ir.ErrUnsupportedSelf, "closures have no receiver")
			}
			if _, cerr := scope.NewVar("self", p.Span); cerr != nil {
				return nil, 0, cerr
			}
		case ast.ParamNamed:
			if _, cerr := scope.NewVar(p.Name, p.Span); cerr != nil {
				return nil, 0, cerr
			}
		case ast.ParamWildcard:
			scope.DeclAnon(p.Span)
		}
	}
	paramCount := len(params)

	asm := NewAssembler()
	if len(captures) > 0 {
		asm.Emit(PushTuple{})
		for _, c := range captures {
			if _, cerr := scope.NewVar(c.Ident, span); cerr != nil {
				return nil, 0, cerr
			}
		}
	}

	if cerr := em.compileBlock(asm, scope, sourceID, body); cerr != nil {
		return nil, 0, cerr
	}

	if count := scope.TotalVarCount(span); count > 0 {
		asm.Emit(Clean{Count: count})
	}
	asm.Emit(Return{})
	scope.PopLast(span)

	return asm.Instrs(), paramCount, nil
}

func (em *Emitter) compileBlock(asm *Assembler, scope *ScopeStack, sourceID ir.SourceId, block *ast.Block) *ir.CompileError {
	for _, stmt := range block.Stmts {
		switch s := stmt.(type) {
		case *ast.LetStmt:
			if cerr := em.compileExpr(asm, scope, sourceID, s.Value); cerr != nil {
				return cerr
			}
			switch s.Pattern.Kind {
			case ast.ParamSelf:
				return ir.NewCompileError(s.Pattern.Span, ir.ErrUnsupportedSelf, "let cannot bind self")
			case ast.ParamNamed:
				if _, cerr := scope.NewVar(s.Pattern.Name, s.Pattern.Span); cerr != nil {
					return cerr
				}
			case ast.ParamWildcard:
				scope.DeclAnon(s.Pattern.Span)
			}

		case *ast.ExprStmt:
			if cerr := em.compileExpr(asm, scope, sourceID, s.Expr); cerr != nil {
				return cerr
			}
			asm.Emit(Pop{})

		default:
			panic("codegen: unhandled Stmt variant")
		}
	}

	if block.Tail != nil {
		return em.compileExpr(asm, scope, sourceID, block.Tail)
	}
	asm.Emit(LoadUnit{})
	return nil
}

func (em *Emitter) compileExpr(asm *Assembler, scope *ScopeStack, sourceID ir.SourceId, expr ast.Expr) *ir.CompileError {
	switch e := expr.(type) {
	case *ast.IntLit:
		asm.Emit(LoadInt{Value: e.Value})
		return nil

	case *ast.BoolLit:
		asm.Emit(LoadBool{Value: e.Value})
		return nil

	case *ast.Ident:
		slot, cerr := scope.GetVar(e.Name, sourceID, em.varVisitor, e.Span())
		if cerr == nil {
			asm.Emit(LoadVar{Slot: slot})
			return nil
		}
		if hash, ok := em.hosts.Lookup(ir.NewItem(e.Name)); ok {
			asm.Emit(LoadFn{Hash: hash})
			return nil
		}
		return cerr

	case *ast.BinaryExpr:
		if cerr := em.compileExpr(asm, scope, sourceID, e.Left); cerr != nil {
			return cerr
		}
		if cerr := em.compileExpr(asm, scope, sourceID, e.Right); cerr != nil {
			return cerr
		}
		asm.Emit(ApplyBinOp{Op: e.Op})
		return nil

	case *ast.CallExpr:
		if cerr := em.compileExpr(asm, scope, sourceID, e.Callee); cerr != nil {
			return cerr
		}
		for _, arg := range e.Args {
			if cerr := em.compileExpr(asm, scope, sourceID, arg); cerr != nil {
				return cerr
			}
		}
		asm.Emit(Call{Argc: len(e.Args)})
		return nil

	case *ast.ClosureLit:
		return em.compileClosureLit(asm, scope, sourceID, e)

	case *ast.Block:
		scope.PushScope()
		cerr := em.compileBlock(asm, scope, sourceID, e)
		scope.PopLast(e.Span())
		return cerr

	default:
		panic("codegen: unhandled Expr variant")
	}
}

// compileClosureLit is the construction-site emission regime (spec §4.5
// "Construction site"): LoadFn for a zero-capture closure, otherwise a
// Copy per capture followed by Closure.
func (em *Emitter) compileClosureLit(asm *Assembler, scope *ScopeStack, sourceID ir.SourceId, lit *ast.ClosureLit) *ir.CompileError {
	meta, err := em.engine.QueryMetaWith(lit.Span(), ir.RootItem, lit.Item, ir.UsedValue)
	if err != nil {
		return asCompileError(err)
	}
	if meta == nil {
		return ir.NewCompileError(lit.Span(), ir.ErrMissingType, "closure %s was never indexed", lit.Item)
	}

	var captures ir.CaptureRecords
	var hash ir.Hash
	switch k := meta.Kind.(type) {
	case ir.MetaClosure:
		captures, hash = k.Captures, k.TypeOf
	case ir.MetaAsyncBlock:
		captures, hash = k.Captures, k.TypeOf
	default:
		return ir.NewCompileError(lit.Span(), ir.ErrExpectedMeta, "expected closure meta for %s, got %T", lit.Item, meta.Kind)
	}

	if len(captures) == 0 {
		asm.Emit(LoadFn{Hash: hash})
		return nil
	}

	for _, c := range captures {
		slot, cerr := scope.GetVar(c.Ident, sourceID, em.varVisitor, lit.Span())
		if cerr != nil {
			return cerr
		}
		asm.Emit(Copy{Slot: slot})
	}
	asm.Emit(Closure{Hash: hash, Count: len(captures)})
	return nil
}

func asCompileError(err error) *ir.CompileError {
	if err == nil {
		return nil
	}
	if cerr, ok := err.(*ir.CompileError); ok {
		return cerr
	}
	return ir.NewCompileError(ir.NoSpan, ir.ErrMissingType, "%v", err)
}
