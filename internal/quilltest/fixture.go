package quilltest

// Fixture is one hand-written test program: a set of functions and
// closures, indexed and driven through the query engine exactly as a
// parser's output would be.
type Fixture struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Functions   []FixtureFunction `yaml:"functions,omitempty"`
	Closures    []FixtureClosure  `yaml:"closures,omitempty"`
	Consts      []FixtureConst    `yaml:"consts,omitempty"`
	// Entry names the function to compile first; Build queries it with
	// ir.UsedValue before driving the rest of the queue, matching the
	// way a real compilation starts from a program's reachable roots.
	Entry string `yaml:"entry"`
}

// FixtureFunction is a top-level function declaration. Impl, when set,
// names the impl block this function is a method of; Build registers it
// with the ImplRegistry under (Impl, Name), the way a real indexer would
// when it walks an `impl` block's method list.
type FixtureFunction struct {
	Name   string        `yaml:"name"`
	Impl   string        `yaml:"impl,omitempty"`
	Pub    bool          `yaml:"pub,omitempty"`
	Params []string      `yaml:"params,omitempty"`
	Body   FixtureBlock  `yaml:"body"`
	Async  bool          `yaml:"async,omitempty"`
}

// FixtureClosure is a closure or async-block declaration, addressed by a
// dotted path under Parent (e.g. Parent "main", Name "closure$0" produces
// the item "main::closure$0").
type FixtureClosure struct {
	Parent   string       `yaml:"parent"`
	Name     string       `yaml:"name"`
	Params   []string     `yaml:"params,omitempty"`
	Captures []string     `yaml:"captures,omitempty"`
	Async    bool         `yaml:"async,omitempty"`
	Body     FixtureBlock `yaml:"body"`
}

// FixtureBlock is a sequence of let-bindings followed by an optional
// trailing expression, mirroring ast.Block.
type FixtureBlock struct {
	Lets []FixtureLet  `yaml:"lets,omitempty"`
	Tail *FixtureExpr  `yaml:"tail,omitempty"`
}

// FixtureLet binds Value to Name in the enclosing block.
type FixtureLet struct {
	Name  string      `yaml:"name"`
	Value FixtureExpr `yaml:"value"`
}

// FixtureExpr is a loosely typed tagged union over ast.Expr: exactly one
// field is set per instance. This mirrors the teacher's
// harness.ActionStep.Args (a map[string]interface{} grab-bag interpreted
// by action name) rather than a strictly typed sum type, since both only
// ever hold hand-authored test data.
type FixtureExpr struct {
	Int     *int64           `yaml:"int,omitempty"`
	Bool    *bool            `yaml:"bool,omitempty"`
	Ident   *string          `yaml:"ident,omitempty"`
	BinOp   *FixtureBinOp    `yaml:"binop,omitempty"`
	Call    *FixtureCall     `yaml:"call,omitempty"`
	// Closure references a FixtureClosure by its qualified "parent::name"
	// path, producing an ast.ClosureLit at the construction site.
	Closure *string          `yaml:"closure,omitempty"`
}

// FixtureConst is a top-level const declaration, unreachable from Entry
// by design in most fixtures so the unused-entries drain (spec §5) has
// something to surface to a diagnostics.Collector. Pub exempts it from
// that warning (the "visibility-gated warnings" supplement) while still
// evaluating it.
type FixtureConst struct {
	Name string `yaml:"name"`
	Int  int64  `yaml:"int"`
	Pub  bool   `yaml:"pub,omitempty"`
}

// FixtureBinOp applies an operator (by name: "add", "sub", "mul", "div",
// "shl", "shr", "eq", "lt") to two subexpressions.
type FixtureBinOp struct {
	Op    string      `yaml:"op"`
	Left  FixtureExpr `yaml:"left"`
	Right FixtureExpr `yaml:"right"`
}

// FixtureCall invokes Callee with Args.
type FixtureCall struct {
	Callee FixtureExpr   `yaml:"callee"`
	Args   []FixtureExpr `yaml:"args"`
}
