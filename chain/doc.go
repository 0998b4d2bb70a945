// Package chain assembles ordered cell chains for a systolic container.
//
// A Builder accepts explicit cell requests, polynomial coefficient lists
// (one Horner stage per coefficient, highest degree first), equation strings
// such as "2*X^3-6*X^2+2*X-1", and declarative YAML chain specs. Build hands
// the assembled cells to the caller and leaves the builder empty.
//
//	cells, err := chain.NewBuilder().
//	    Add(cell.Multiplication, -4).
//	    Add(cell.Square, 0).
//	    Add(cell.Addition, 7).
//	    Build()
package chain
