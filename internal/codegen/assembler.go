package codegen

// Assembler accumulates one build's instruction stream in AST traversal
// order (spec §5 ordering guarantee).
type Assembler struct {
	instrs []Inst
}

// NewAssembler returns an empty assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Emit appends inst to the stream.
func (a *Assembler) Emit(inst Inst) {
	a.instrs = append(a.instrs, inst)
}

// Instrs returns the assembled stream.
func (a *Assembler) Instrs() []Inst {
	return a.instrs
}

// Len reports how many instructions have been emitted so far.
func (a *Assembler) Len() int {
	return len(a.instrs)
}
