package constinterp

import (
	"github.com/quillscript/quillc/internal/ast"
	"github.com/quillscript/quillc/internal/ir"
)

// DefaultBudget is the step budget a fresh interpreter starts with unless
// the caller overrides it (spec §4.4: "initialised to 1,000,000").
const DefaultBudget = 1_000_000

// Interpreter tree-walks a single const expression. One Interpreter is
// constructed per const item evaluated — a cyclic reference gets a fresh
// budget for the item it recurses into (via Resolver), so one runaway
// const cannot starve the budget of another (spec §4.4).
type Interpreter struct {
	budget   int64
	resolver Resolver
	scopes   []map[string]ir.ConstValue
}

// New constructs an interpreter with the given budget and resolver.
func New(budget int64, resolver Resolver) *Interpreter {
	return &Interpreter{budget: budget, resolver: resolver}
}

// Eval evaluates expr to completion or returns the first error
// encountered (BudgetExceeded, DivideByZero, NegativeShift, Overflow,
// UnsupportedConstExpr, or a propagated VariableNotFound/resolver error).
func (in *Interpreter) Eval(expr ast.ConstExpr) (ir.ConstValue, error) {
	return in.evalExpr(expr)
}

func (in *Interpreter) charge(span ir.Span) *ir.CompileError {
	if in.budget <= 0 {
		return ir.NewCompileError(span, ir.ErrBudgetExceeded, "const evaluation exceeded its step budget")
	}
	in.budget--
	return nil
}

func (in *Interpreter) evalExpr(expr ast.ConstExpr) (ir.ConstValue, error) {
	if err := in.charge(expr.Span()); err != nil {
		return nil, err
	}

	switch e := expr.(type) {
	case *ast.ConstLit:
		return e.Value, nil

	case *ast.ConstBinOp:
		return in.evalBinOp(e)

	case *ast.ConstVarRef:
		if v, ok := in.lookup(e.Name); ok {
			return v, nil
		}
		return nil, ir.NewCompileError(e.Span(), ir.ErrVariableNotFound, "const variable %q not found", e.Name)

	case *ast.ConstItemRef:
		return in.resolver.ResolveConst(e.Item, ir.UsedValue)

	case *ast.ConstBlock:
		return in.evalBlock(e)

	default:
		return nil, ir.NewCompileError(expr.Span(), ir.ErrUnsupportedConstExpr, "unsupported const expression %T", expr)
	}
}

func (in *Interpreter) evalBlock(block *ast.ConstBlock) (ir.ConstValue, error) {
	in.pushScope()
	defer in.popScope()

	for _, stmt := range block.Stmts {
		v, err := in.evalExpr(stmt.Value)
		if err != nil {
			return nil, err
		}
		in.bind(stmt.Name, v)
	}

	if block.Tail == nil {
		return ir.ConstUnit{}, nil
	}
	return in.evalExpr(block.Tail)
}

func (in *Interpreter) evalBinOp(e *ast.ConstBinOp) (ir.ConstValue, error) {
	left, err := in.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	if e.Op == ast.OpEq {
		return ir.ConstBool(constValuesEqual(left, right)), nil
	}

	lInt, lok := left.(ir.ConstInt)
	rInt, rok := right.(ir.ConstInt)
	if !lok || !rok {
		return nil, ir.NewCompileError(e.Span(), ir.ErrUnsupportedConstExpr, "operator requires integer operands")
	}
	a, b := int64(lInt), int64(rInt)

	switch e.Op {
	case ast.OpAdd:
		v, cerr := checkedAdd(e.Span(), a, b)
		if cerr != nil {
			return nil, cerr
		}
		return ir.ConstInt(v), nil
	case ast.OpSub:
		v, cerr := checkedSub(e.Span(), a, b)
		if cerr != nil {
			return nil, cerr
		}
		return ir.ConstInt(v), nil
	case ast.OpMul:
		v, cerr := checkedMul(e.Span(), a, b)
		if cerr != nil {
			return nil, cerr
		}
		return ir.ConstInt(v), nil
	case ast.OpDiv:
		v, cerr := checkedDiv(e.Span(), a, b)
		if cerr != nil {
			return nil, cerr
		}
		return ir.ConstInt(v), nil
	case ast.OpShl:
		v, cerr := checkedShl(e.Span(), a, b)
		if cerr != nil {
			return nil, cerr
		}
		return ir.ConstInt(v), nil
	case ast.OpShr:
		v, cerr := checkedShr(e.Span(), a, b)
		if cerr != nil {
			return nil, cerr
		}
		return ir.ConstInt(v), nil
	case ast.OpLt:
		return ir.ConstBool(a < b), nil
	default:
		return nil, ir.NewCompileError(e.Span(), ir.ErrUnsupportedConstExpr, "unsupported binary operator")
	}
}

func constValuesEqual(a, b ir.ConstValue) bool {
	switch av := a.(type) {
	case ir.ConstInt:
		bv, ok := b.(ir.ConstInt)
		return ok && av == bv
	case ir.ConstBool:
		bv, ok := b.(ir.ConstBool)
		return ok && av == bv
	case ir.ConstString:
		bv, ok := b.(ir.ConstString)
		return ok && av == bv
	case ir.ConstUnit:
		_, ok := b.(ir.ConstUnit)
		return ok
	default:
		return false
	}
}

func (in *Interpreter) pushScope() {
	in.scopes = append(in.scopes, make(map[string]ir.ConstValue))
}

func (in *Interpreter) popScope() {
	in.scopes = in.scopes[:len(in.scopes)-1]
}

func (in *Interpreter) bind(name string, v ir.ConstValue) {
	in.scopes[len(in.scopes)-1][name] = v
}

func (in *Interpreter) lookup(name string) (ir.ConstValue, bool) {
	for i := len(in.scopes) - 1; i >= 0; i-- {
		if v, ok := in.scopes[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}
