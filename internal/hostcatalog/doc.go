// Package hostcatalog is the emitter-side, read-only view onto the VM's
// host-registered functions (spec §6): a SQLite-backed table mapping a
// fully qualified item to the hash the VM resolves a direct call to,
// populated once at startup and queried by the code emitter while
// compiling an Ident that did not resolve to a local.
//
// # Database configuration
//
//   - WAL mode: concurrent reads while the catalog is (re)populated
//   - synchronous=NORMAL: balance durability and load time
//   - busy_timeout=5000: tolerate transient lock contention
//
// The catalog is small (one row per host function) and read-mostly, so
// none of the durability machinery a write-heavy event log needs
// (sequence numbers, provenance edges, replay) applies here.
package hostcatalog
