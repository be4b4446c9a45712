// Package logger provides structured logging for prefmirror.
//
// It wraps log/slog with a small Logger interface, a process-wide level that
// can be changed at runtime, context propagation of the active logger and of
// the current commit ID, and redaction of private-key material.
//
// Features:
//   - JSON structured logging (default) or text
//   - Redaction of nsec1/ncryptsec1 values and secret-looking keys
//   - Context-aware logging with commit ID propagation
package logger
