package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/quillscript/quillc/internal/constinterp"
)

// Config is one compilation's tunable parameters.
type Config struct {
	// ConstBudget bounds the const interpreter's step count (spec §4.4).
	ConstBudget int64
	// HostCatalogPath is where the emitter's host-function catalog
	// database lives; empty means no host module is wired in.
	HostCatalogPath string
}

// defaults mirrors the zero-config experience: a budget generous enough
// for ordinary programs and no host catalog.
func defaults() Config {
	return Config{ConstBudget: constinterp.DefaultBudget}
}

// Load parses src (a CUE source document) into a Config, applying
// defaults for anything src leaves unset.
func Load(src string) (*Config, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	return compile(v)
}

// compile walks v the same way CompileConcept walks a concept struct:
// LookupPath each known field, type-assert it, and fall through to the
// zero-config default when the field is simply absent.
func compile(v cue.Value) (*Config, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	cfg := defaults()

	if budget := v.LookupPath(cue.ParsePath("const_budget")); budget.Exists() {
		n, err := budget.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if n <= 0 {
			return nil, &CompileError{Field: "const_budget", Message: "must be positive", Pos: budget.Pos()}
		}
		cfg.ConstBudget = n
	}

	if path := v.LookupPath(cue.ParsePath("host_catalog_path")); path.Exists() {
		s, err := path.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		cfg.HostCatalogPath = s
	}

	return &cfg, nil
}

// CompileError is a configuration field that failed to parse or
// validate, carrying the CUE source position it came from.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE's (possibly
// multi-error) error values.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	pos := first.Position()
	field := ""
	if path := first.Path(); len(path) > 0 {
		field = path[len(path)-1]
	}
	return &CompileError{Field: field, Message: first.Error(), Pos: pos}
}
