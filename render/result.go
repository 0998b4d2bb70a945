package render

import (
	"github.com/kbukum/systolic/systolic"
)

// Result is the outcome of one evaluation.
type Result struct {
	Name    string              `json:"name,omitempty" yaml:"name,omitempty"`
	RunID   string              `json:"run_id" yaml:"run_id"`
	Chain   []string            `json:"chain" yaml:"chain"`
	Inputs  []int               `json:"inputs" yaml:"inputs"`
	Outputs []int               `json:"outputs" yaml:"outputs"`
	Steps   int                 `json:"steps" yaml:"steps"`
	Trace   []systolic.Snapshot `json:"trace,omitempty" yaml:"trace,omitempty"`
	Log     string              `json:"-" yaml:"-"`
}

// NewResult captures a computed container. inputs are the values the
// container was created with.
func NewResult(name string, inputs []int, c *systolic.Container) *Result {
	cells := c.Cells()
	chain := make([]string, len(cells))
	for i, cl := range cells {
		chain[i] = cl.String()
	}
	if inputs == nil {
		inputs = []int{}
	}
	return &Result{
		Name:    name,
		RunID:   c.ID(),
		Chain:   chain,
		Inputs:  inputs,
		Outputs: c.Outputs(),
		Steps:   c.Steps(),
		Trace:   c.Snapshots(),
		Log:     c.Log(),
	}
}
