// Package setting defines the catalog of persisted settings keys.
//
// Each key knows its name, its value type and its default, and can read
// itself from a store or write itself into an open write transaction.
// Values live under "setting/<name>" and are encoded as protobuf wrapper
// messages. A key that is absent or cannot be decoded reads as its default.
package setting
