// Package main provides the entry point for prefmirror.
//
// prefmirror inspects and edits the staged settings store: every edit
// is applied to an in-memory snapshot and committed in one transaction.
package main
