package constinterp

import (
	"math"

	"github.com/quillscript/quillc/internal/ir"
)

func checkedAdd(span ir.Span, a, b int64) (int64, *ir.CompileError) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, ir.NewCompileError(span, ir.ErrOverflow, "%d + %d overflows", a, b)
	}
	return sum, nil
}

func checkedSub(span ir.Span, a, b int64) (int64, *ir.CompileError) {
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return 0, ir.NewCompileError(span, ir.ErrOverflow, "%d - %d overflows", a, b)
	}
	return diff, nil
}

func checkedMul(span ir.Span, a, b int64) (int64, *ir.CompileError) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/b != a {
		return 0, ir.NewCompileError(span, ir.ErrOverflow, "%d * %d overflows", a, b)
	}
	return product, nil
}

func checkedDiv(span ir.Span, a, b int64) (int64, *ir.CompileError) {
	if b == 0 {
		return 0, ir.NewCompileError(span, ir.ErrDivideByZero, "division by zero")
	}
	if a == math.MinInt64 && b == -1 {
		return 0, ir.NewCompileError(span, ir.ErrOverflow, "%d / %d overflows", a, b)
	}
	return a / b, nil
}

func checkedShl(span ir.Span, a, b int64) (int64, *ir.CompileError) {
	if b < 0 {
		return 0, ir.NewCompileError(span, ir.ErrNegativeShift, "shift amount %d is negative", b)
	}
	return a << uint(b), nil
}

func checkedShr(span ir.Span, a, b int64) (int64, *ir.CompileError) {
	if b < 0 {
		return 0, ir.NewCompileError(span, ir.ErrNegativeShift, "shift amount %d is negative", b)
	}
	return a >> uint(b), nil
}
