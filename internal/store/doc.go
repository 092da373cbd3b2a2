// Package store provides the section store: a key-value document per
// section name, persisted on an injected domain.Root.
//
// Every section is one file inside a single shared base directory
// (domain.BaseDirectory). Each operation independently resolves the base
// directory, opens the section file and reads it whole. Mutations write the
// whole document back. Nothing is cached between calls.
//
// Behaviour worth knowing before use:
//   - Get with explicit keys omits keys whose value is falsy (false, 0, "",
//     null). Get(nil) returns them.
//   - Clear removes the shared base directory, and with it every section.
//   - There is no locking between the read and the write of a mutation.
//     Concurrent Set calls on one section can lose updates.
//   - Unparsable content reads as an empty document unless the store was
//     built WithStrictDecoding.
//   - OnChange accepts a handler and never calls it.
package store
