package quilltest

import (
	"fmt"

	"github.com/quillscript/quillc/internal/ast"
	"github.com/quillscript/quillc/internal/constinterp"
	"github.com/quillscript/quillc/internal/index"
	"github.com/quillscript/quillc/internal/ir"
	"github.com/quillscript/quillc/internal/query"
)

// SourceID is the single ir.SourceId every fixture is indexed under;
// fixtures describe one synthetic source file, so there is never a
// second one to distinguish.
const SourceID ir.SourceId = 1

var fixtureSpan = ir.Span{SourceID: SourceID, Start: 0, End: 1}

// Built is the result of indexing a Fixture: a ready-to-drive query
// engine plus the resolved ir.Item for its entry function, so a caller
// can QueryMeta it (or hand it straight to codegen.EmitAll).
type Built struct {
	Engine *query.Engine
	Entry  ir.Item
}

// Build indexes every function and closure in f against a fresh
// query.Engine and returns it ready to drive. It does not itself call
// QueryMeta or Drive — that is left to the caller (codegen.Emitter, or a
// test asserting on the engine's resolution behavior directly), mirroring
// how internal/query's own tests index then separately resolve.
func Build(f *Fixture) (*Built, error) {
	b := &builder{
		idx:      index.New(),
		impls:    index.NewImplRegistry(),
		closures: make(map[string]ir.Item),
	}
	for i := range f.Closures {
		c := f.Closures[i]
		b.closures[c.Parent+"::"+c.Name] = ir.NewItem(c.Parent, c.Name)
	}

	for i := range f.Functions {
		if err := b.indexFunction(&f.Functions[i]); err != nil {
			return nil, err
		}
	}
	for i := range f.Closures {
		if err := b.indexClosure(&f.Closures[i]); err != nil {
			return nil, err
		}
	}
	for i := range f.Consts {
		if err := b.indexConst(&f.Consts[i]); err != nil {
			return nil, err
		}
	}

	engine := query.New(b.idx, b.impls, constinterp.DefaultBudget)
	if f.Entry == "" {
		return nil, fmt.Errorf("quilltest: fixture %q has no entry", f.Name)
	}
	return &Built{Engine: engine, Entry: ir.NewItem(f.Entry)}, nil
}

type builder struct {
	idx      *index.Index
	impls    *index.ImplRegistry
	closures map[string]ir.Item
}

func (b *builder) indexFunction(f *FixtureFunction) error {
	block, err := b.toBlock(&f.Body)
	if err != nil {
		return err
	}
	call := ir.CallImmediate
	if f.Async {
		call = ir.CallAsync
	}
	decl := &ast.FnDecl{
		Name:   f.Name,
		Params: toParams(f.Params),
		Body:   block,
		Call:   call,
		Span:   fixtureSpan,
	}
	if f.Impl != "" {
		decl.ImplItem = ir.NewItem(f.Impl)
	}
	item := ir.NewItem(f.Name)
	if cerr := b.idx.Insert(item, fixtureSpan, SourceID, index.FunctionEntry{AST: decl, Call: call}); cerr != nil {
		return cerr
	}
	if f.Impl != "" {
		b.impls.Register(decl.ImplItem, f.Name, item)
	}
	if f.Pub {
		b.idx.MarkPublic(item)
	}
	return nil
}

func (b *builder) indexClosure(c *FixtureClosure) error {
	block, err := b.toBlock(&c.Body)
	if err != nil {
		return err
	}
	captures := make(ir.CaptureRecords, len(c.Captures))
	for i, name := range c.Captures {
		captures[i] = ir.CaptureRecord{Ident: name}
	}
	item := ir.NewItem(c.Parent, c.Name)

	if c.Async {
		decl := &ast.AsyncBlockDecl{Body: block, Captures: captures, Span: fixtureSpan}
		if cerr := b.idx.Insert(item, fixtureSpan, SourceID, index.AsyncBlockEntry{AST: decl, Captures: captures}); cerr != nil {
			return cerr
		}
		return nil
	}
	decl := &ast.ClosureDecl{
		Params:   toParams(c.Params),
		Body:     block,
		Captures: captures,
		Call:     ir.CallImmediate,
		Span:     fixtureSpan,
	}
	if cerr := b.idx.Insert(item, fixtureSpan, SourceID, index.ClosureEntry{AST: decl, Captures: captures, Call: ir.CallImmediate}); cerr != nil {
		return cerr
	}
	return nil
}

func (b *builder) indexConst(c *FixtureConst) error {
	item := ir.NewItem(c.Name)
	expr := ast.NewConstLit(ir.ConstInt(c.Int), fixtureSpan)
	if cerr := b.idx.Insert(item, fixtureSpan, SourceID, index.ConstEntry{IR: expr}); cerr != nil {
		return cerr
	}
	if c.Pub {
		b.idx.MarkPublic(item)
	}
	return nil
}

func toParams(names []string) []ast.Param {
	out := make([]ast.Param, len(names))
	for i, name := range names {
		kind := ast.ParamNamed
		switch name {
		case "_":
			kind = ast.ParamWildcard
		case "self":
			kind = ast.ParamSelf
		}
		out[i] = ast.Param{Kind: kind, Name: name, Span: fixtureSpan}
	}
	return out
}

func (b *builder) toBlock(fb *FixtureBlock) (*ast.Block, error) {
	stmts := make([]ast.Stmt, len(fb.Lets))
	for i, let := range fb.Lets {
		value, err := b.toExpr(&let.Value)
		if err != nil {
			return nil, err
		}
		pattern := ast.Param{Kind: ast.ParamNamed, Name: let.Name, Span: fixtureSpan}
		if let.Name == "_" {
			pattern.Kind = ast.ParamWildcard
		}
		stmts[i] = ast.NewLetStmt(pattern, value, fixtureSpan)
	}
	var tail ast.Expr
	if fb.Tail != nil {
		t, err := b.toExpr(fb.Tail)
		if err != nil {
			return nil, err
		}
		tail = t
	}
	return ast.NewBlock(stmts, tail, fixtureSpan), nil
}

func (b *builder) toExpr(e *FixtureExpr) (ast.Expr, error) {
	switch {
	case e.Int != nil:
		return ast.NewIntLit(*e.Int, fixtureSpan), nil
	case e.Bool != nil:
		return ast.NewBoolLit(*e.Bool, fixtureSpan), nil
	case e.Ident != nil:
		return ast.NewIdent(*e.Ident, fixtureSpan), nil
	case e.BinOp != nil:
		op, err := toBinOp(e.BinOp.Op)
		if err != nil {
			return nil, err
		}
		left, err := b.toExpr(&e.BinOp.Left)
		if err != nil {
			return nil, err
		}
		right, err := b.toExpr(&e.BinOp.Right)
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpr(op, left, right, fixtureSpan), nil
	case e.Call != nil:
		callee, err := b.toExpr(&e.Call.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]ast.Expr, len(e.Call.Args))
		for i := range e.Call.Args {
			a, err := b.toExpr(&e.Call.Args[i])
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return ast.NewCallExpr(callee, args, fixtureSpan), nil
	case e.Closure != nil:
		item, ok := b.closures[*e.Closure]
		if !ok {
			return nil, fmt.Errorf("quilltest: undefined closure reference %q", *e.Closure)
		}
		return ast.NewClosureLit(item, fixtureSpan), nil
	default:
		return nil, fmt.Errorf("quilltest: empty FixtureExpr")
	}
}

func toBinOp(name string) (ast.BinOp, error) {
	switch name {
	case "add":
		return ast.OpAdd, nil
	case "sub":
		return ast.OpSub, nil
	case "mul":
		return ast.OpMul, nil
	case "div":
		return ast.OpDiv, nil
	case "shl":
		return ast.OpShl, nil
	case "shr":
		return ast.OpShr, nil
	case "eq":
		return ast.OpEq, nil
	case "lt":
		return ast.OpLt, nil
	default:
		return 0, fmt.Errorf("quilltest: unknown binop %q", name)
	}
}
