package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillscript/quillc/internal/ast"
	"github.com/quillscript/quillc/internal/constinterp"
	"github.com/quillscript/quillc/internal/index"
	"github.com/quillscript/quillc/internal/ir"
	"github.com/quillscript/quillc/internal/query"
)

var span1 = ir.Span{SourceID: 1, Start: 0, End: 1}

func newTestEngine() *query.Engine {
	return query.New(index.New(), index.NewImplRegistry(), constinterp.DefaultBudget)
}

// TestScenarioABareClosureNoCaptures covers spec scenario A: `pub fn
// main() { let f = || 1; f() }`. The two items hash distinctly, and the
// construction site emits LoadFn rather than Closure.
func TestScenarioABareClosureNoCaptures(t *testing.T) {
	e := newTestEngine()
	mainItem := ir.NewItem("main")
	closureItem := ir.NewItem("main", "closure$0")

	closureDecl := &ast.ClosureDecl{
		Body: ast.NewBlock(nil, ast.NewIntLit(1, span1), span1),
		Call: ir.CallImmediate,
	}
	require.Nil(t, e.IndexClosure(closureItem, span1, 1, closureDecl, nil, ir.CallImmediate))

	mainDecl := &ast.FnDecl{
		Name: "main",
		Body: ast.NewBlock(
			[]ast.Stmt{
				ast.NewLetStmt(ast.Param{Kind: ast.ParamNamed, Name: "f", Span: span1}, ast.NewClosureLit(closureItem, span1), span1),
			},
			ast.NewCallExpr(ast.NewIdent("f", span1), nil, span1),
			span1,
		),
		Call: ir.CallImmediate,
		Span: span1,
	}
	require.Nil(t, e.IndexFunction(mainItem, span1, 1, mainDecl, ir.CallImmediate))

	// Seed the build queue the way a real driver seeds its entry point.
	_, err := e.QueryMeta(mainItem)
	require.NoError(t, err)

	unit, emitErr := New(e, nil, nil, nil).EmitAll()
	require.NoError(t, emitErr)
	require.Len(t, unit.Functions, 2)

	main := unit.Functions[0]
	closure := unit.Functions[1]
	assert.True(t, main.Item.Equal(mainItem))
	assert.True(t, closure.Item.Equal(closureItem))
	assert.NotEqual(t, main.Hash, closure.Hash)

	require.Len(t, main.Instrs, 5)
	loadFn, ok := main.Instrs[0].(LoadFn)
	require.True(t, ok, "construction site must emit LoadFn, not Closure, for a zero-capture closure")
	assert.Equal(t, closure.Hash, loadFn.Hash)
	assert.Equal(t, LoadVar{Slot: 0}, main.Instrs[1])
	assert.Equal(t, Call{Argc: 0}, main.Instrs[2])
	assert.Equal(t, Clean{Count: 1}, main.Instrs[3])
	assert.Equal(t, Return{}, main.Instrs[4])
}

// TestScenarioBClosureCapturingOneLocal covers spec scenario B: `pub fn
// main() { let x = 7; let f = || x; f() }`.
func TestScenarioBClosureCapturingOneLocal(t *testing.T) {
	e := newTestEngine()
	mainItem := ir.NewItem("main")
	closureItem := ir.NewItem("main", "closure$0")
	captures := ir.CaptureRecords{{Ident: "x"}}

	closureDecl := &ast.ClosureDecl{
		Body:     ast.NewBlock(nil, ast.NewIdent("x", span1), span1),
		Captures: captures,
		Call:     ir.CallImmediate,
	}
	require.Nil(t, e.IndexClosure(closureItem, span1, 1, closureDecl, captures, ir.CallImmediate))

	mainDecl := &ast.FnDecl{
		Name: "main",
		Body: ast.NewBlock(
			[]ast.Stmt{
				ast.NewLetStmt(ast.Param{Kind: ast.ParamNamed, Name: "x", Span: span1}, ast.NewIntLit(7, span1), span1),
				ast.NewLetStmt(ast.Param{Kind: ast.ParamNamed, Name: "f", Span: span1}, ast.NewClosureLit(closureItem, span1), span1),
			},
			ast.NewCallExpr(ast.NewIdent("f", span1), nil, span1),
			span1,
		),
		Call: ir.CallImmediate,
		Span: span1,
	}
	require.Nil(t, e.IndexFunction(mainItem, span1, 1, mainDecl, ir.CallImmediate))

	_, err := e.QueryMeta(mainItem)
	require.NoError(t, err)

	unit, emitErr := New(e, nil, nil, nil).EmitAll()
	require.NoError(t, emitErr)
	require.Len(t, unit.Functions, 2)

	main := unit.Functions[0]
	closure := unit.Functions[1]

	require.Len(t, main.Instrs, 7)
	assert.Equal(t, LoadInt{Value: 7}, main.Instrs[0])
	assert.Equal(t, Copy{Slot: 0}, main.Instrs[1], "construction site copies the slot holding x")
	assert.Equal(t, Closure{Hash: closure.Hash, Count: 1}, main.Instrs[2])
	assert.Equal(t, LoadVar{Slot: 1}, main.Instrs[3])
	assert.Equal(t, Call{Argc: 0}, main.Instrs[4])
	assert.Equal(t, Clean{Count: 2}, main.Instrs[5])
	assert.Equal(t, Return{}, main.Instrs[6])

	require.Len(t, closure.Instrs, 4)
	assert.Equal(t, PushTuple{}, closure.Instrs[0], "body emission's first instruction unpacks the environment tuple")
	assert.Equal(t, LoadVar{Slot: 0}, closure.Instrs[1], "body produces the captured x")
	assert.Equal(t, Clean{Count: 1}, closure.Instrs[2])
	assert.Equal(t, Return{}, closure.Instrs[3])
}

// TestClosureWithSelfParamIsRejected covers the ErrUnsupportedSelf edge
// case: closures have no receiver.
func TestClosureWithSelfParamIsRejected(t *testing.T) {
	e := newTestEngine()
	closureItem := ir.NewItem("main", "closure$0")
	decl := &ast.ClosureDecl{
		Params: []ast.Param{{Kind: ast.ParamSelf, Span: span1}},
		Body:   ast.NewBlock(nil, ast.NewIntLit(1, span1), span1),
		Call:   ir.CallImmediate,
	}
	require.Nil(t, e.IndexClosure(closureItem, span1, 1, decl, nil, ir.CallImmediate))

	_, err := e.QueryMeta(closureItem)
	require.NoError(t, err)

	_, emitErr := New(e, nil, nil, nil).EmitAll()
	require.Error(t, emitErr)
	var cerr *ir.CompileError
	require.ErrorAs(t, emitErr, &cerr)
	assert.Equal(t, ir.ErrUnsupportedSelf, cerr.Kind)
}

// TestShadowingInSameScopeIsRejected covers ErrShadowingInSameScope: two
// lets binding the same name directly in one function body.
func TestShadowingInSameScopeIsRejected(t *testing.T) {
	e := newTestEngine()
	item := ir.NewItem("main")
	decl := &ast.FnDecl{
		Name: "main",
		Body: ast.NewBlock(
			[]ast.Stmt{
				ast.NewLetStmt(ast.Param{Kind: ast.ParamNamed, Name: "x", Span: span1}, ast.NewIntLit(1, span1), span1),
				ast.NewLetStmt(ast.Param{Kind: ast.ParamNamed, Name: "x", Span: span1}, ast.NewIntLit(2, span1), span1),
			},
			ast.NewIdent("x", span1),
			span1,
		),
		Call: ir.CallImmediate,
		Span: span1,
	}
	require.Nil(t, e.IndexFunction(item, span1, 1, decl, ir.CallImmediate))
	_, err := e.QueryMeta(item)
	require.NoError(t, err)

	_, emitErr := New(e, nil, nil, nil).EmitAll()
	require.Error(t, emitErr)
	var cerr *ir.CompileError
	require.ErrorAs(t, emitErr, &cerr)
	assert.Equal(t, ir.ErrShadowingInSameScope, cerr.Kind)
}

// TestHostFunctionReferenceEmitsLoadFn covers the host-catalog read path:
// an Ident that isn't a local resolves against the host catalog instead
// of failing with VariableNotFound.
func TestHostFunctionReferenceEmitsLoadFn(t *testing.T) {
	e := newTestEngine()
	item := ir.NewItem("main")
	decl := &ast.FnDecl{
		Name: "main",
		Body: ast.NewBlock(nil, ast.NewCallExpr(ast.NewIdent("print", span1), []ast.Expr{ast.NewIntLit(1, span1)}, span1), span1),
		Call: ir.CallImmediate,
		Span: span1,
	}
	require.Nil(t, e.IndexFunction(item, span1, 1, decl, ir.CallImmediate))
	_, err := e.QueryMeta(item)
	require.NoError(t, err)

	hosts := fakeHostCatalog{ir.NewItem("print").Key(): ir.Hash(42)}
	unit, emitErr := New(e, hosts, nil, nil).EmitAll()
	require.NoError(t, emitErr)
	require.Len(t, unit.Functions, 1)

	instrs := unit.Functions[0].Instrs
	require.Len(t, instrs, 4)
	assert.Equal(t, LoadFn{Hash: 42}, instrs[0])
	assert.Equal(t, LoadInt{Value: 1}, instrs[1])
	assert.Equal(t, Call{Argc: 1}, instrs[2])
	assert.Equal(t, Return{}, instrs[3])
}

// TestVariableNotFoundWithoutHostMatch covers the ErrVariableNotFound
// path when neither the scope stack nor the host catalog resolve a name.
func TestVariableNotFoundWithoutHostMatch(t *testing.T) {
	e := newTestEngine()
	item := ir.NewItem("main")
	decl := &ast.FnDecl{
		Name: "main",
		Body: ast.NewBlock(nil, ast.NewIdent("missing", span1), span1),
		Call: ir.CallImmediate,
		Span: span1,
	}
	require.Nil(t, e.IndexFunction(item, span1, 1, decl, ir.CallImmediate))
	_, err := e.QueryMeta(item)
	require.NoError(t, err)

	_, emitErr := New(e, nil, nil, nil).EmitAll()
	require.Error(t, emitErr)
	var cerr *ir.CompileError
	require.ErrorAs(t, emitErr, &cerr)
	assert.Equal(t, ir.ErrVariableNotFound, cerr.Kind)
}

type fakeHostCatalog map[string]ir.Hash

func (f fakeHostCatalog) Lookup(item ir.Item) (ir.Hash, bool) {
	h, ok := f[item.Key()]
	return h, ok
}

// TestInstanceFunctionResolvesAgainstImplRegistry covers the instance
// function path end to end: a function declared with a non-zero ImplItem
// compiles once its (impl, name) pair is registered with the engine's
// ImplRegistry.
func TestInstanceFunctionResolvesAgainstImplRegistry(t *testing.T) {
	e := newTestEngine()
	implItem := ir.NewItem("Counter")
	fnItem := ir.NewItem("increment")

	decl := &ast.FnDecl{
		Name:     "increment",
		Params:   []ast.Param{{Kind: ast.ParamSelf, Name: "self", Span: span1}},
		Body:     ast.NewBlock(nil, ast.NewIntLit(1, span1), span1),
		Call:     ir.CallImmediate,
		ImplItem: implItem,
		Span:     span1,
	}
	require.Nil(t, e.IndexFunction(fnItem, span1, 1, decl, ir.CallImmediate))
	e.Impls().Register(implItem, "increment", fnItem)

	meta, err := e.QueryMeta(fnItem)
	require.NoError(t, err)
	_, ok := meta.Kind.(ir.MetaInstanceFunction)
	require.True(t, ok, "expected MetaInstanceFunction, got %T", meta.Kind)

	unit, emitErr := New(e, nil, nil, nil).EmitAll()
	require.NoError(t, emitErr)
	require.Len(t, unit.Functions, 1)
}

// TestInstanceFunctionUnresolvedReceiverFails covers the negative case:
// an instance function whose (impl, name) pair was never registered
// fails emission with ErrUnresolvedInstanceMethod rather than silently
// compiling as if it were a free function.
func TestInstanceFunctionUnresolvedReceiverFails(t *testing.T) {
	e := newTestEngine()
	implItem := ir.NewItem("Counter")
	fnItem := ir.NewItem("increment")

	decl := &ast.FnDecl{
		Name:     "increment",
		Params:   []ast.Param{{Kind: ast.ParamSelf, Name: "self", Span: span1}},
		Body:     ast.NewBlock(nil, ast.NewIntLit(1, span1), span1),
		Call:     ir.CallImmediate,
		ImplItem: implItem,
		Span:     span1,
	}
	require.Nil(t, e.IndexFunction(fnItem, span1, 1, decl, ir.CallImmediate))
	// Deliberately not registered with e.Impls().

	_, err := e.QueryMeta(fnItem)
	require.NoError(t, err)

	_, emitErr := New(e, nil, nil, nil).EmitAll()
	require.Error(t, emitErr)
	var cerr *ir.CompileError
	require.ErrorAs(t, emitErr, &cerr)
	assert.Equal(t, ir.ErrUnresolvedInstanceMethod, cerr.Kind)
}
