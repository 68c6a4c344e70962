package codegen

import "github.com/quillscript/quillc/internal/ir"

// FunctionUnit is one completed build's assembled output: a function,
// closure, or async block's instruction stream plus the calling
// convention and parameter count the VM needs to set up its call frame.
type FunctionUnit struct {
	Item       ir.Item
	Hash       ir.Hash
	Instrs     []Inst
	Call       ir.CallConvention
	ParamCount int
}

// Unit is the single artifact the core hands to the VM collaborator
// (spec §6 "Persisted state: none... produces a single Unit artifact").
// Functions is ordered by queue-drain order (spec §5 ordering guarantee),
// not by Item or Hash, so a disassembly of the unit reads in the same
// order the source declared (and discovered) them.
type Unit struct {
	Functions []FunctionUnit
}

// NewUnit returns an empty Unit.
func NewUnit() *Unit {
	return &Unit{}
}

// Append records a completed build in queue-drain order.
func (u *Unit) Append(fn FunctionUnit) {
	u.Functions = append(u.Functions, fn)
}
