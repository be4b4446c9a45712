// Package config defines the prefmirror configuration structure.
//
// Values come from Default, then a YAML file, then PREFMIRROR_* variables,
// then command-line flags (see internal/infra/confloader). Verify checks
// the merged result before anything is opened.
package config
