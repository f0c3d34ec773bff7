// Package output assembles evaluated series into result and diagnostic
// tables and writes them as CSV.
package output
