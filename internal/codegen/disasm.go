package codegen

import (
	"fmt"
	"strings"

	"github.com/quillscript/quillc/internal/ast"
	"github.com/quillscript/quillc/internal/ir"
)

// Disassemble renders unit as a deterministic, human-readable text
// listing: one line per instruction, functions in queue-drain order
// (matching Unit's own documented ordering guarantee). LoadFn/Closure
// print the referenced function's Item rather than its raw Hash — the
// digest is a sha256-derived runtime identity with no meaning to a
// person reading a disassembly — resolved back to a name through the
// Unit's own Hash -> Item table.
func Disassemble(unit *Unit) string {
	byHash := make(map[ir.Hash]string, len(unit.Functions))
	for _, fn := range unit.Functions {
		byHash[fn.Hash] = fn.Item.String()
	}

	var b strings.Builder
	for _, fn := range unit.Functions {
		fmt.Fprintf(&b, "fn %s (params=%d, call=%s)\n", fn.Item, fn.ParamCount, fn.Call)
		for _, inst := range fn.Instrs {
			fmt.Fprintf(&b, "  %s\n", disassembleInst(inst, byHash))
		}
	}
	return b.String()
}

func disassembleInst(inst Inst, byHash map[ir.Hash]string) string {
	switch i := inst.(type) {
	case PushTuple:
		return "PushTuple"
	case Clean:
		return fmt.Sprintf("Clean %d", i.Count)
	case Return:
		return "Return"
	case LoadFn:
		return fmt.Sprintf("LoadFn %s", byHash[i.Hash])
	case Closure:
		return fmt.Sprintf("Closure %s %d", byHash[i.Hash], i.Count)
	case Copy:
		return fmt.Sprintf("Copy %d", i.Slot)
	case LoadInt:
		return fmt.Sprintf("LoadInt %d", i.Value)
	case LoadBool:
		return fmt.Sprintf("LoadBool %t", i.Value)
	case LoadUnit:
		return "LoadUnit"
	case LoadVar:
		return fmt.Sprintf("LoadVar %d", i.Slot)
	case Pop:
		return "Pop"
	case ApplyBinOp:
		return fmt.Sprintf("ApplyBinOp %s", binOpName(i.Op))
	case Call:
		return fmt.Sprintf("Call %d", i.Argc)
	default:
		panic("codegen: unhandled Inst variant")
	}
}

func binOpName(op ast.BinOp) string {
	switch op {
	case ast.OpAdd:
		return "add"
	case ast.OpSub:
		return "sub"
	case ast.OpMul:
		return "mul"
	case ast.OpDiv:
		return "div"
	case ast.OpShl:
		return "shl"
	case ast.OpShr:
		return "shr"
	case ast.OpEq:
		return "eq"
	case ast.OpLt:
		return "lt"
	default:
		panic("codegen: unhandled BinOp variant")
	}
}
