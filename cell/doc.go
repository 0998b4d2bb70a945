// Package cell implements the computational stages of a systolic array.
//
// A Cell is a small state machine: Feed stores the partial handed over by the
// previous stage, Compute turns it into a new partial, and Partial reports the
// last computed value without recomputing. The arithmetic performed is chosen
// by the cell's Kind; the set of kinds is closed and dispatched by switch.
//
// Partials travel as (accumulated, produced) pairs. The accumulated value is
// the running result of the expression so far; the produced value is the raw
// input forwarded unchanged so every downstream stage sees the same x.
package cell
