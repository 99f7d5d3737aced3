// Package export renders an assembled topology into its delivery formats:
// the full topology JSON, a compact summary, a per-site hierarchy, CSV
// tables for spreadsheets, and plain-text reports for the terminal.
//
// Every writer takes an io.Writer; the CLI decides whether that is a file
// or stdout. Sites are always emitted in inventory first-occurrence order
// so repeated runs over identical input produce identical bytes.
package export
