package query

import (
	"github.com/quillscript/quillc/internal/constinterp"
	"github.com/quillscript/quillc/internal/index"
	"github.com/quillscript/quillc/internal/ir"
)

// buildIndexedEntry dispatches on rec's variant, grounded directly on
// original_source's build_indexed_entry: Enum synthesizes its own type
// hash; Variant resolves its parent enum first so the enum's Meta is
// always present by the time any variant is; Struct assembles its body
// shape; Function/Closure/AsyncBlock push a BuildEntry for the emitter
// and return the matching Meta kind; Const evaluates eagerly and, when
// unused, also pushes a diagnostics-only BuildEntry.
func (e *Engine) buildIndexedEntry(span ir.Span, item ir.Item, rec *index.Record, used ir.Used) (*ir.Meta, error) {
	source := &ir.CompileSource{Span: rec.Span}

	switch entry := rec.Entry.(type) {
	case index.EnumEntry:
		return &ir.Meta{
			Kind:   ir.MetaEnum{Item: item, TypeOf: ir.HashItem(item)},
			Source: source,
		}, nil

	case index.VariantEntry:
		if _, err := e.queryMetaWithUse(span, entry.EnumItem, ir.UsedValue); err != nil {
			return nil, err
		}
		return &ir.Meta{
			Kind: ir.MetaVariant{
				Item:     item,
				TypeOf:   ir.HashItem(item),
				EnumItem: entry.EnumItem,
				Shape:    entry.AST.Shape,
			},
			Source: source,
		}, nil

	case index.StructEntry:
		return &ir.Meta{
			Kind:   ir.MetaStruct{Item: item, TypeOf: ir.HashItem(item), Shape: entry.AST.Shape},
			Source: source,
		}, nil

	case index.FunctionEntry:
		implItem := entry.AST.ImplItem
		if len(implItem.Components) == 0 {
			e.queue.pushBack(BuildEntry{
				Item:     item,
				Build:    BuildFunction{AST: entry.AST},
				Source:   *source,
				SourceID: rec.SourceID,
				Used:     used,
			})
			return &ir.Meta{
				Kind:   ir.MetaFunction{Item: item, TypeOf: ir.HashItem(item), Call: entry.Call},
				Source: source,
			}, nil
		}
		e.queue.pushBack(BuildEntry{
			Item:     item,
			Build:    BuildInstanceFunction{AST: entry.AST, ImplItem: implItem},
			Source:   *source,
			SourceID: rec.SourceID,
			Used:     used,
		})
		return &ir.Meta{
			Kind:   ir.MetaInstanceFunction{Item: item, TypeOf: ir.HashItem(item), ImplItem: implItem, Call: entry.Call},
			Source: source,
		}, nil

	case index.ClosureEntry:
		e.queue.pushBack(BuildEntry{
			Item:     item,
			Build:    BuildClosure{AST: entry.AST, Captures: entry.Captures},
			Source:   *source,
			SourceID: rec.SourceID,
			Used:     used,
		})
		return &ir.Meta{
			Kind:   ir.MetaClosure{Item: item, TypeOf: ir.HashItem(item), Captures: entry.Captures, Call: entry.Call},
			Source: source,
		}, nil

	case index.AsyncBlockEntry:
		e.queue.pushBack(BuildEntry{
			Item:     item,
			Build:    BuildAsyncBlock{AST: entry.AST, Captures: entry.Captures},
			Source:   *source,
			SourceID: rec.SourceID,
			Used:     used,
		})
		return &ir.Meta{
			Kind:   ir.MetaAsyncBlock{Item: item, TypeOf: ir.HashItem(item), Captures: entry.Captures, Call: ir.CallAsync},
			Source: source,
		}, nil

	case index.ConstEntry:
		return e.buildConst(span, item, entry, rec, used)

	default:
		return nil, ir.NewCompileError(span, ir.ErrMissingType, "unrecognized indexed entry for %s", item)
	}
}

func (e *Engine) buildConst(span ir.Span, item ir.Item, entry index.ConstEntry, rec *index.Record, used ir.Used) (*ir.Meta, error) {
	interp := constinterp.New(e.budget, e)
	key := item.Key()
	e.building[key] = &buildingConst{interp: interp, ir: entry.IR}
	defer delete(e.building, key)

	value, err := interp.Eval(entry.IR)
	if err != nil {
		return nil, err
	}

	if used.IsUnused() {
		e.queue.pushBack(BuildEntry{
			Item:     item,
			Build:    BuildUnusedConst{Value: value},
			Source:   ir.CompileSource{Span: rec.Span},
			SourceID: rec.SourceID,
			Used:     ir.Unused,
		})
	}

	return &ir.Meta{
		Kind:   ir.MetaConst{Item: item, Value: value},
		Source: &ir.CompileSource{Span: rec.Span},
	}, nil
}
