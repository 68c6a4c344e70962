package diagnostics

import "github.com/quillscript/quillc/internal/ir"

// Declaration is one item the drive loop's unused-entries pass surfaced:
// something nothing live in the program referenced, materialized purely
// so tooling (dead-code warnings, documentation generators) can see it.
type Declaration struct {
	Item     string   `json:"item"`
	Kind     string   `json:"kind"`
	SourceID uint32   `json:"source_id"`
	Span     string   `json:"span"`
	EnumItem string   `json:"enum_item,omitempty"`
	Captures []string `json:"captures,omitempty"`
	Call     string   `json:"call,omitempty"`
	Const    string   `json:"const_value,omitempty"`
}

// Collector is the default query.Visitor: it appends every visited Meta
// as a Declaration, in the order the drive loop visits them.
type Collector struct {
	declarations []Declaration
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// VisitMeta implements query.Visitor.
func (c *Collector) VisitMeta(sourceID ir.SourceId, meta ir.Meta, span ir.Span) {
	d := Declaration{
		SourceID: uint32(sourceID),
		Span:     span.String(),
	}

	switch k := meta.Kind.(type) {
	case ir.MetaEnum:
		d.Item = k.Item.String()
		d.Kind = "enum"
	case ir.MetaStruct:
		d.Item = k.Item.String()
		d.Kind = "struct"
	case ir.MetaVariant:
		d.Item = k.Item.String()
		d.Kind = "variant"
		d.EnumItem = k.EnumItem.String()
	case ir.MetaFunction:
		d.Item = k.Item.String()
		d.Kind = "function"
		d.Call = k.Call.String()
	case ir.MetaInstanceFunction:
		d.Item = k.Item.String()
		d.Kind = "instance-function"
		d.Call = k.Call.String()
	case ir.MetaClosure:
		d.Item = k.Item.String()
		d.Kind = "closure"
		d.Call = k.Call.String()
		d.Captures = k.Captures.Idents()
	case ir.MetaAsyncBlock:
		d.Item = k.Item.String()
		d.Kind = "async-block"
		d.Call = k.Call.String()
		d.Captures = k.Captures.Idents()
	case ir.MetaConst:
		d.Item = k.Item.String()
		d.Kind = "const"
		d.Const = ir.ConstValueString(k.Value)
	default:
		panic("diagnostics: unhandled MetaKind variant")
	}

	c.declarations = append(c.declarations, d)
}

// Declarations returns every declaration visited so far, in visit order.
func (c *Collector) Declarations() []Declaration {
	return c.declarations
}
