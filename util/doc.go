// Package util provides the small parsing helpers shared by the equation
// compiler, the configuration layer, and the CLI.
package util
