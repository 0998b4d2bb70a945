// Package errors provides the structured error type used across the systolic
// simulator. Every failure carries a machine-readable code so callers can tell
// configuration mistakes (empty chain, empty input, conflicting chain sources)
// from construction-time parameter violations (zero divisor, wrong builder
// overload) without string matching.
package errors
