package codegen

import (
	"github.com/quillscript/quillc/internal/ast"
	"github.com/quillscript/quillc/internal/ir"
)

// Inst is the sealed interface over one assembled instruction. The six
// variants below are the surface contract required by spec §6; everything
// past Copy is produced by body compilation but is not a contract the VM
// collaborator can rely on staying stable.
type Inst interface {
	instNode()
}

// PushTuple pops nothing; it expects the closure's environment tuple to
// already be the top of stack and unpacks it into the following Copy-free
// capture bindings that body compilation declares right after.
type PushTuple struct{}

func (PushTuple) instNode() {}

// Clean drops the top Count stack slots, used at a function/closure's exit
// to discard its locals before the return value is left in place.
type Clean struct {
	Count int
}

func (Clean) instNode() {}

// Return ends the current build, leaving exactly one value (already on
// the stack) as the result.
type Return struct{}

func (Return) instNode() {}

// LoadFn pushes a bare function reference by hash. Used both for ordinary
// named-function references and for a zero-capture closure, which is
// call-compatible with a function (spec §4.5 construction-site step 2).
type LoadFn struct {
	Hash ir.Hash
}

func (LoadFn) instNode() {}

// Closure packages the top Count stack values with the function reference
// named by Hash into a single callable value.
type Closure struct {
	Hash  ir.Hash
	Count int
}

func (Closure) instNode() {}

// Copy pushes a duplicate of the value already sitting in Slot, without
// disturbing it there. Used to stage each capture ahead of a Closure
// instruction.
type Copy struct {
	Slot int
}

func (Copy) instNode() {}

// --- Additional opcodes produced by general body compilation -----------
// None of these are surface contracts of the core (spec §6); they exist
// so compileExpr/compileBlock have somewhere to put ordinary value
// production and are free to change shape as the body grammar grows.

// LoadInt pushes an integer literal.
type LoadInt struct {
	Value int64
}

func (LoadInt) instNode() {}

// LoadBool pushes a boolean literal.
type LoadBool struct {
	Value bool
}

func (LoadBool) instNode() {}

// LoadUnit pushes the unit value, used as a block's implicit result when
// it has no tail expression.
type LoadUnit struct{}

func (LoadUnit) instNode() {}

// LoadVar pushes a duplicate of the value in Slot. Distinct from Copy only
// in intent: LoadVar is ordinary variable reads inside a body, Copy is
// specifically capture staging ahead of a Closure instruction.
type LoadVar struct {
	Slot int
}

func (LoadVar) instNode() {}

// Pop discards the top stack value, used to drop an ExprStmt's result.
type Pop struct{}

func (Pop) instNode() {}

// ApplyBinOp pops two values and pushes the result of applying Op.
type ApplyBinOp struct {
	Op ast.BinOp
}

func (ApplyBinOp) instNode() {}

// Call pops Argc argument values then a callee value, invokes it, and
// pushes the result. The callee may be a bare function, a packaged
// closure, or a host-registered function loaded via LoadFn — dispatch is
// dynamic, matching the dynamically-typed call sites in the body grammar.
type Call struct {
	Argc int
}

func (Call) instNode() {}
