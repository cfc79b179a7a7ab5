// Package report serializes attribute reports and guards their destination.
//
// Reports are written as CSV by default, or as JSON or YAML documents.
// A Target refuses to overwrite an existing file.
package report
