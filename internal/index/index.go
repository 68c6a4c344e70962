package index

import "github.com/quillscript/quillc/internal/ir"

// Record is one entry in an Index: the declaration awaiting a build,
// alongside the source position it was declared at. Visibility defaults
// to ir.Private; a caller that knows an item is externally reachable
// marks it with MarkPublic right after Insert.
type Record struct {
	Item       ir.Item
	Span       ir.Span
	SourceID   ir.SourceId
	Entry      IndexedEntry
	Visibility ir.Visibility
}

// Index maps canonical items to their pre-build record. It enforces spec
// invariant 1 (an Item appears at most once) and invariant 2 (an Item is
// either indexed-and-unresolved or moved to the Meta cache, never both) by
// only ever handing a Record out once, via Take.
type Index struct {
	records map[string]*Record
}

// New returns an empty Index.
func New() *Index {
	return &Index{records: make(map[string]*Record)}
}

// Insert adds item to the index. If item is already present, Insert
// leaves the existing record untouched and returns a CompileError whose
// Span is the *first* definition's span — per spec scenario D, the
// diagnostic must point at the original declaration, not the duplicate.
func (idx *Index) Insert(item ir.Item, span ir.Span, sourceID ir.SourceId, entry IndexedEntry) *ir.CompileError {
	key := item.Key()
	if existing, ok := idx.records[key]; ok {
		return ir.NewCompileError(existing.Span, ir.ErrItemConflict, "item %s already declared", item)
	}
	idx.records[key] = &Record{Item: item, Span: span, SourceID: sourceID, Entry: entry}
	return nil
}

// MarkPublic records that item is externally reachable, exempting it
// from the unused-declaration warning in QueueUnusedEntries while still
// letting its body be built. A no-op if item is not (or no longer)
// indexed.
func (idx *Index) MarkPublic(item ir.Item) {
	if rec, ok := idx.records[item.Key()]; ok {
		rec.Visibility = ir.Public
	}
}

// Take removes and returns item's record. Called exactly once per item,
// by the query engine's resolution step — after Take succeeds the item is
// no longer "indexed and unresolved"; it is mid-resolution.
func (idx *Index) Take(item ir.Item) (*Record, bool) {
	key := item.Key()
	rec, ok := idx.records[key]
	if !ok {
		return nil, false
	}
	delete(idx.records, key)
	return rec, true
}

// Contains reports whether item is still indexed (i.e. Take has not yet
// been called for it). Used by callers that need to distinguish "unknown
// item" from "known but not yet resolved" without consuming the record.
func (idx *Index) Contains(item ir.Item) bool {
	_, ok := idx.records[item.Key()]
	return ok
}

// Len reports how many records remain indexed.
func (idx *Index) Len() int {
	return len(idx.records)
}

// IterSnapshot returns a shallow copy of every record currently indexed,
// for the "queue unused entries" pass (spec §4.3). Taking records found by
// a snapshot is safe even though the snapshot itself does not reflect
// concurrent mutation, because the core is single-writer: nothing else
// touches the Index between the snapshot and the drain that follows it.
func (idx *Index) IterSnapshot() []Record {
	out := make([]Record, 0, len(idx.records))
	for _, rec := range idx.records {
		out = append(out, *rec)
	}
	return out
}
