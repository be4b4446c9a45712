// Package storage provides the transactional key-value engines that persist
// settings.
//
// Every engine exposes the same small contract:
//
//   - Reads: Get and Scan against committed state only
//   - Writes: BeginWrite opens a single write transaction; staged Set and
//     Delete calls become visible together at Commit, or not at all
//   - Single writer: BeginWrite blocks while another write transaction is open
//
// Two engines are provided: BadgerEngine (durable, Badger v3) and
// memory.Store (volatile, for tests and dry runs).
package storage
