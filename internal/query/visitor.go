package query

import "github.com/quillscript/quillc/internal/ir"

// Visitor receives every Meta resolved while draining unused entries, so
// external tooling (diagnostics, dead-code warnings) can observe
// declarations nothing else in the program reaches. See spec §6 and
// scenario F.
type Visitor interface {
	VisitMeta(sourceID ir.SourceId, meta ir.Meta, span ir.Span)
}

// NopVisitor discards every visit; useful for drives that only care about
// reaching a fixed point, not about the diagnostics themselves.
type NopVisitor struct{}

func (NopVisitor) VisitMeta(ir.SourceId, ir.Meta, ir.Span) {}
