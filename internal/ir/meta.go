package ir

// CallConvention is how a function-shaped item is invoked at its call
// site: as an ordinary call, as something awaited, or as something iterated.
type CallConvention int

const (
	// CallImmediate is an ordinary, synchronous function or closure.
	CallImmediate CallConvention = iota
	// CallAsync marks a function, closure, or async block whose result
	// must be awaited by the VM.
	CallAsync
	// CallGenerator marks a function that yields multiple values over time.
	CallGenerator
	// CallStream marks a function that produces an asynchronous sequence.
	CallStream
)

func (c CallConvention) String() string {
	switch c {
	case CallImmediate:
		return "immediate"
	case CallAsync:
		return "async"
	case CallGenerator:
		return "generator"
	case CallStream:
		return "stream"
	default:
		return "unknown"
	}
}

// StructShape describes the body shape of a struct declaration or enum
// variant: no fields, positional fields, or named fields. It is a sealed
// interface for the same reason ConstValue and MetaKind are.
type StructShape interface {
	structShape()
}

// ShapeUnit is a struct/variant with no body at all.
type ShapeUnit struct{}

func (ShapeUnit) structShape() {}

// ShapeTuple is a struct/variant with unnamed, positional fields.
type ShapeTuple struct {
	Arity int
}

func (ShapeTuple) structShape() {}

// ShapeObject is a struct/variant with named fields.
type ShapeObject struct {
	Fields []string
}

func (ShapeObject) structShape() {}

// CompileSource is the optional provenance attached to a Meta: where the
// declaration this metadata describes actually lives.
type CompileSource struct {
	Span Span
	Path string
}

// MetaKind is the sealed union of every resolved-entity shape a CompileMeta
// can carry. Exactly one concrete type implements it per Meta value.
type MetaKind interface {
	metaKind()
}

// MetaEnum is the metadata for an enum type declaration.
type MetaEnum struct {
	Item   Item
	TypeOf Hash
}

func (MetaEnum) metaKind() {}

// MetaStruct is the metadata for a (non-variant) struct declaration.
type MetaStruct struct {
	Item   Item
	TypeOf Hash
	Shape  StructShape
}

func (MetaStruct) metaKind() {}

// MetaVariant is the metadata for one member of an enum. EnumItem always
// resolves successfully before a MetaVariant is produced (spec §4.3 step 3).
type MetaVariant struct {
	Item     Item
	TypeOf   Hash
	EnumItem Item
	Shape    StructShape
}

func (MetaVariant) metaKind() {}

// MetaFunction is the metadata for a free function.
type MetaFunction struct {
	Item   Item
	TypeOf Hash
	Call   CallConvention
}

func (MetaFunction) metaKind() {}

// Visibility marks whether an indexed entry is reachable from outside
// the compiled unit. Per the "visibility-gated warnings" supplement, a
// Public item reaching the unused-entries drain still gets its body
// built (diagnostics still need a real Meta/build to report on), but is
// not itself reported as an unused-declaration warning, since something
// outside this compilation may be the item's only caller.
type Visibility int

const (
	// Private is the default: an item with no other reference is
	// genuinely dead code and is reported as unused.
	Private Visibility = iota
	// Public items are assumed reachable externally and are exempt from
	// the unused-declaration warning.
	Public
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	default:
		return "private"
	}
}

// MetaInstanceFunction is the metadata for a function defined inside an
// impl block. Resolving the receiver a given call site binds to is left to
// the surrounding driver (spec §9 Open Question); the core only records
// which impl block the function was declared in.
type MetaInstanceFunction struct {
	Item     Item
	TypeOf   Hash
	ImplItem Item
	Call     CallConvention
}

func (MetaInstanceFunction) metaKind() {}

// MetaClosure is the metadata for a closure literal, carrying the capture
// list the emitter reads back when compiling both the closure's body and
// its construction site.
type MetaClosure struct {
	Item     Item
	TypeOf   Hash
	Captures CaptureRecords
	Call     CallConvention
}

func (MetaClosure) metaKind() {}

// MetaAsyncBlock is the metadata for an async block, which the emitter
// treats as a zero-parameter closure with CallAsync convention.
type MetaAsyncBlock struct {
	Item     Item
	TypeOf   Hash
	Captures CaptureRecords
	Call     CallConvention
}

func (MetaAsyncBlock) metaKind() {}

// MetaConst is the metadata for an evaluated constant.
type MetaConst struct {
	Item  Item
	Value ConstValue
}

func (MetaConst) metaKind() {}

// Meta is the post-resolution record for an Item: its shape, plus the
// source location it was declared at (when known).
type Meta struct {
	Kind   MetaKind
	Source *CompileSource
}
