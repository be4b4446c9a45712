// Package confloader loads prefmirror configuration and watches files.
//
// Sources, lowest to highest priority:
//
//  1. Defaults (the target struct as passed in)
//  2. YAML configuration file
//  3. PREFMIRROR_* environment variables
//  4. Command-line flags, applied with LoadMap
//
// Watcher reports writes to individual files, watching the parent
// directory so editors that replace files by rename are still seen.
package confloader
