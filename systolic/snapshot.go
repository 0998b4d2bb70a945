package systolic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/kbukum/systolic/cell"
	"github.com/kbukum/systolic/util"
)

// CellSnapshot is the state of one cell at a step boundary.
type CellSnapshot struct {
	Index       int          `json:"index" yaml:"index"`
	Kind        cell.Kind    `json:"kind" yaml:"kind"`
	Description string       `json:"description" yaml:"description"`
	In          cell.Partial `json:"in" yaml:"in"`
	Out         cell.Partial `json:"out" yaml:"out"`
}

// Snapshot is the full container state after a step.
type Snapshot struct {
	Step    int            `json:"step" yaml:"step"`
	Inputs  []int          `json:"inputs" yaml:"inputs"`
	Cells   []CellSnapshot `json:"cells" yaml:"cells"`
	Outputs []int          `json:"outputs" yaml:"outputs"`
}

func (c *Container) snapshot() Snapshot {
	s := Snapshot{
		Step:    c.steps,
		Inputs:  c.Remaining(),
		Cells:   make([]CellSnapshot, len(c.cells)),
		Outputs: c.Outputs(),
	}
	for i, cl := range c.cells {
		s.Cells[i] = CellSnapshot{
			Index:       i,
			Kind:        cl.Kind(),
			Description: cl.Description(),
			In:          cl.Pending(),
			Out:         cl.Partial(),
		}
	}
	return s
}

// String renders the snapshot as a fixed-width diagram:
//
//	step 2
//	inputs  | 3 4
//	cell    | 0        | 1     | 2
//	op      | + X * -4 | + X^2 | + 7
//	acc     | -8       | -3    | -
//	x       | 2        | 1     | -
//	outputs |
func (s Snapshot) String() string {
	rows := [][]string{
		{"cell"},
		{"op"},
		{"acc"},
		{"x"},
	}
	for _, cs := range s.Cells {
		rows[0] = append(rows[0], strconv.Itoa(cs.Index))
		rows[1] = append(rows[1], cs.Description)
		rows[2] = append(rows[2], cs.Out.Accumulated.String())
		rows[3] = append(rows[3], cs.Out.Produced.String())
	}

	widths := make([]int, len(rows[0]))
	widths[0] = runewidth.StringWidth("outputs")
	for _, row := range rows {
		for i, v := range row {
			if w := runewidth.StringWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "step %d\n", s.Step)
	writeLabel(&b, "inputs", widths[0])
	b.WriteString(strings.TrimRight(" "+util.FormatIntList(s.Inputs, " "), " "))
	b.WriteByte('\n')
	for _, row := range rows {
		cols := make([]string, len(row))
		for i, v := range row {
			cols[i] = runewidth.FillRight(v, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(cols, " | "), " "))
		b.WriteByte('\n')
	}
	writeLabel(&b, "outputs", widths[0])
	b.WriteString(strings.TrimRight(" "+util.FormatIntList(s.Outputs, " "), " "))
	b.WriteByte('\n')
	return b.String()
}

func writeLabel(b *strings.Builder, label string, width int) {
	b.WriteString(runewidth.FillRight(label, width))
	b.WriteString(" |")
}
