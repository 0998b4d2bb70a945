package systolic

import (
	"context"
	"strings"
	"testing"

	"github.com/kbukum/systolic/cell"
)

func TestSnapshots_Recorded(t *testing.T) {
	c := newTestContainer([]int{1, 2, 3, 4}, quadraticChain(t), WithTrace(true))
	if err := c.Compute(context.Background()); err != nil {
		t.Fatal(err)
	}
	snaps := c.Snapshots()
	if len(snaps) != c.Steps() {
		t.Fatalf("expected one snapshot per step, got %d for %d steps", len(snaps), c.Steps())
	}
	for i, s := range snaps {
		if s.Step != i+1 {
			t.Errorf("snapshot %d has step %d", i, s.Step)
		}
		if len(s.Cells) != 3 {
			t.Errorf("snapshot %d has %d cells", i, len(s.Cells))
		}
	}

	second := snaps[1]
	if second.Cells[1].Out.Accumulated != cell.Some(-3) || second.Cells[1].Out.Produced != cell.Some(1) {
		t.Errorf("step 2 cell 1 = %+v, want acc -3 x 1", second.Cells[1].Out)
	}
	if second.Cells[1].In.Accumulated != cell.Some(-4) {
		t.Errorf("step 2 cell 1 was fed %+v, want acc -4", second.Cells[1].In)
	}
}

func TestSnapshot_String(t *testing.T) {
	c := newTestContainer([]int{1, 2, 3, 4}, quadraticChain(t), WithTrace(true))
	for i := 0; i < 2; i++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	want := "step 2\n" +
		"inputs  | 3 4\n" +
		"cell    | 0        | 1     | 2\n" +
		"op      | + X * -4 | + X^2 | + 7\n" +
		"acc     | -8       | -3    | -\n" +
		"x       | 2        | 1     | -\n" +
		"outputs |\n"
	if got := c.CurrentStateLog(); got != want {
		t.Errorf("CurrentStateLog() =\n%s\nwant\n%s", got, want)
	}
}

func TestLog_Concatenates(t *testing.T) {
	c := newTestContainer([]int{1, 2}, quadraticChain(t), WithTrace(true))
	if c.Log() != "" || c.CurrentStateLog() != "" {
		t.Fatal("expected empty log before stepping")
	}
	if err := c.Compute(context.Background()); err != nil {
		t.Fatal(err)
	}
	log := c.Log()
	if n := strings.Count(log, "step "); n != 5 {
		t.Errorf("expected 5 step headers, got %d", n)
	}
	if !strings.HasSuffix(log, c.CurrentStateLog()) {
		t.Error("log should end with the latest snapshot")
	}
	if !strings.Contains(c.CurrentStateLog(), "outputs | 4 3") {
		t.Errorf("final snapshot should list outputs, got\n%s", c.CurrentStateLog())
	}
}

func TestTraceDisabled(t *testing.T) {
	c := newTestContainer([]int{1}, quadraticChain(t))
	if err := c.Compute(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(c.Snapshots()) != 0 || c.Log() != "" {
		t.Error("expected no snapshots when tracing is off")
	}
}
