// Package metric provides Prometheus metrics for prefmirror.
//
// Metrics include:
//
//   - Save counts by result and save latency
//   - Fields written per committed save
//   - Run-state transitions made by reconciliation
//
// The CLI writes them to a node-exporter textfile after each command; the
// watch command can also serve them over HTTP.
package metric
