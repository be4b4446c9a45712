// Package command provides the prefmirror CLI commands.
//
// Commands are built with urfave/cli/v2:
//
//   - root.go: App, global flags, per-run environment
//   - settings.go: show, get, defaults, keys
//   - edit.go: set, reset
//   - transfer.go: export, import
//   - maintenance.go: status, backup, gc
//   - watch.go: apply a settings file on every change
//
// Every edit loads a snapshot, changes it in memory and commits it with a
// single save.
package command
