// Package render writes evaluation results as text, JSON or YAML.
//
// Text output prints one output per line. With verbose output the chain
// and the step diagram are printed first, styled with lipgloss unless color
// is disabled.
package render
