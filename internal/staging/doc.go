// Package staging holds the staged settings snapshot and the coordinator
// that commits it.
//
// A Snapshot mirrors every catalog key in one flat struct. Callers edit it
// freely; nothing reaches the store until Mirror.Save writes all fields in
// a single write transaction. The field set is driven by one binding
// table, so defaults, load and save cannot drift apart.
package staging
