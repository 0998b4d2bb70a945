// Package systolic simulates a systolic pipeline: a linear chain of cells
// through which a stream of integer inputs flows one global step at a time.
//
// On every step each cell is fed the partial its predecessor produced on the
// previous step (the head is fed the next input), then every cell computes.
// When the tail's partial carries a produced value, its accumulated value is
// appended to the outputs.
//
//	cells, _ := chain.NewBuilder().FromCoefficients(2, -6, 2, -1).Build()
//	c := systolic.New([]int{3, 4, 5}, systolic.WithCells(cells))
//	if err := c.Compute(ctx); err != nil {
//	    return err
//	}
//	fmt.Println(c.Outputs())
//
// A Container is not safe for concurrent use.
package systolic
