// Package diagnostics is the default query.Visitor: it collects every
// Meta the drive loop's unused-entries pass materializes (spec §6 "a
// trait with visit_meta... so external tooling can collect
// declarations") into an ordered, serializable snapshot.
//
// Collection order is the drive loop's own FIFO order (spec §5), which
// is already deterministic, so — unlike the teacher's event-sourced
// store, which canonicalizes map-keyed JSON before hashing it — nothing
// here needs a canonical-JSON pass: a []Declaration already marshals
// deterministically through encoding/json.
package diagnostics
