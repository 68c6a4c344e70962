package ast

import "github.com/quillscript/quillc/internal/ir"

// ParamKind distinguishes the three shapes a function or closure parameter
// can take.
type ParamKind int

const (
	// ParamNamed binds the parameter to a named local.
	ParamNamed ParamKind = iota
	// ParamWildcard discards the argument into an anonymous slot.
	ParamWildcard
	// ParamSelf marks a receiver parameter; only valid on instance
	// functions. A closure with a self parameter is a compile error
	// (ErrUnsupportedSelf).
	ParamSelf
)

// Param is one entry in a function or closure's parameter list.
type Param struct {
	Kind ParamKind
	Name string
	Span ir.Span
}
