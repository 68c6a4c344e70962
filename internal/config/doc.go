// Package config loads compiler configuration from CUE, the same way
// the teacher's concept compiler reads its specs: via the CUE Go API
// directly (cuecontext.New + cue.Value.LookupPath), never by shelling
// out to the cue CLI.
//
// A compilation's configuration is deliberately small: the const
// interpreter's step budget, and where to find the host function
// catalog database. Everything else about a compilation (the source
// files, the module's declarations) arrives through the parser
// collaborator, not through config.
package config
