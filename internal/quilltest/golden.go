package quilltest

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/quillscript/quillc/internal/codegen"
	"github.com/quillscript/quillc/internal/diagnostics"
)

// AssertGolden disassembles unit (codegen.Disassemble) and compares it
// against testdata/fixtures/{name}.golden, following the teacher's
// harness.AssertGolden (sebdah/goldie, one fixture directory per
// package). Run `go test ./internal/quilltest/... -update` to regenerate
// fixtures after an intentional instruction-stream change.
func AssertGolden(t *testing.T, name string, unit *codegen.Unit) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/fixtures"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(codegen.Disassemble(unit)))
}

// AssertDeclarationsGolden marshals decls (ordinarily a
// diagnostics.Collector's Declarations(), after a Drive) as indented JSON
// and compares it against testdata/fixtures/{name}.declarations.golden.
// Unlike Disassemble, this needs no hash-to-item substitution: Declaration
// already carries Item as a plain string field, so encoding/json alone
// produces a stable, reviewable snapshot. Marshaling happens here, with
// plain byte comparison via g.Assert, rather than goldie's own JSON
// helper, so the exact encoding is this package's to control.
func AssertDeclarationsGolden(t *testing.T, name string, decls []diagnostics.Declaration) {
	t.Helper()
	data, err := json.MarshalIndent(decls, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/fixtures"),
		goldie.WithNameSuffix(".declarations.golden"),
	)
	g.Assert(t, name, data)
}
