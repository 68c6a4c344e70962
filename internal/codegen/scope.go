package codegen

import "github.com/quillscript/quillc/internal/ir"

// VarVisitor is notified every time GetVar resolves a name to a slot, so
// tooling built on top of the core (go-to-definition, unused-binding
// warnings) can observe variable references without the scope stack
// itself accumulating that bookkeeping.
type VarVisitor interface {
	VisitVarRef(sourceID ir.SourceId, name string, slot int, span ir.Span)
}

// NopVarVisitor discards every reference.
type NopVarVisitor struct{}

func (NopVarVisitor) VisitVarRef(ir.SourceId, string, int, ir.Span) {}

// scopeFrame is one pushed scope: the names declared directly in it, and
// how many slots (named or anonymous) it declared.
type scopeFrame struct {
	vars         map[string]int
	declaredHere int
}

// ScopeStack implements the five scope operations spec §4.5 requires.
// Slots are a single counter running across every currently open frame,
// so a name declared in an outer frame and one declared in an inner frame
// never collide; only a repeated name within the *same* frame is an error
// (spec's ShadowingInSameScope — shadowing across nested frames is
// ordinary lexical scoping and is allowed).
type ScopeStack struct {
	frames   []*scopeFrame
	nextSlot int
}

// NewScopeStack returns an empty stack, ready for PushScope.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{}
}

// PushScope opens a new scope, e.g. at the start of a function or closure
// body.
func (s *ScopeStack) PushScope() {
	s.frames = append(s.frames, &scopeFrame{vars: make(map[string]int)})
}

func (s *ScopeStack) top() *scopeFrame {
	return s.frames[len(s.frames)-1]
}

// NewVar declares a named local at the next slot in the current scope.
func (s *ScopeStack) NewVar(name string, span ir.Span) (int, *ir.CompileError) {
	top := s.top()
	if _, exists := top.vars[name]; exists {
		return 0, ir.NewCompileError(span, ir.ErrShadowingInSameScope, "%s already declared in this scope", name)
	}
	slot := s.nextSlot
	s.nextSlot++
	top.vars[name] = slot
	top.declaredHere++
	return slot, nil
}

// DeclAnon declares an unnamed slot, for a `_` parameter or a discarded
// let binding.
func (s *ScopeStack) DeclAnon(span ir.Span) int {
	_ = span
	slot := s.nextSlot
	s.nextSlot++
	s.top().declaredHere++
	return slot
}

// GetVar resolves name against the open scopes, innermost first, and
// notifies visitor of the resulting slot.
func (s *ScopeStack) GetVar(name string, sourceID ir.SourceId, visitor VarVisitor, span ir.Span) (int, *ir.CompileError) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if slot, ok := s.frames[i].vars[name]; ok {
			if visitor != nil {
				visitor.VisitVarRef(sourceID, name, slot, span)
			}
			return slot, nil
		}
	}
	return 0, ir.NewCompileError(span, ir.ErrVariableNotFound, "%s not found in any enclosing scope", name)
}

// TotalVarCount returns how many slots the current (top) scope declared,
// the count a Clean instruction at that scope's exit must drop.
func (s *ScopeStack) TotalVarCount(span ir.Span) int {
	_ = span
	return s.top().declaredHere
}

// PopLast unwinds the bookkeeping for the current scope. It does not
// rewind nextSlot: slots are a monotonically increasing stack position
// counter for the whole build, not reused once a scope closes.
func (s *ScopeStack) PopLast(span ir.Span) {
	_ = span
	s.frames = s.frames[:len(s.frames)-1]
}
