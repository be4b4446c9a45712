// Package output renders command results as a table, JSON or YAML.
//
// Tables are built from slices of structs (one row per element, columns
// from json tags) or from a single struct (one row per field).
package output
