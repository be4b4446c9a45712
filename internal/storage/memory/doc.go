// Package memory provides a volatile storage.Engine.
//
// It keeps committed values in a sorted-on-read map and applies a write
// transaction's staged operations under a single lock at commit, so readers
// never observe a partially applied transaction.
//
// Thread Safety:
//
// Reads use RLock, commit uses Lock. Write transactions are serialized by a
// separate writer mutex held from BeginWrite until Commit or Discard.
package memory
