package chain

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/systolic/cell"
	"github.com/kbukum/systolic/errors"
	"github.com/kbukum/systolic/logger"
)

func newTestBuilder() *Builder {
	return NewBuilder(WithLogger(logger.Nop()))
}

func params(cells []*cell.Cell) []int {
	out := make([]int, len(cells))
	for i, c := range cells {
		out[i] = c.Param()
	}
	return out
}

func TestBuilder_ExplicitCells(t *testing.T) {
	cells, err := newTestBuilder().
		Add(cell.Multiplication, -4).
		Add(cell.Square, 0).
		Add(cell.Addition, 7).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []cell.Kind{cell.Multiplication, cell.Square, cell.Addition}
	if len(cells) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(cells))
	}
	for i, k := range want {
		if cells[i].Kind() != k {
			t.Errorf("cell %d: kind %s, want %s", i, cells[i].Kind(), k)
		}
	}
}

func TestBuilder_BuildTransfersOwnership(t *testing.T) {
	b := newTestBuilder().FromCoefficients(1, 2, 3)
	first, err := b.Build()
	if err != nil || len(first) != 3 {
		t.Fatalf("first build: %d cells, err %v", len(first), err)
	}
	second, err := b.Build()
	if err != nil {
		t.Fatalf("second build: unexpected error: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second build should be empty, got %d cells", len(second))
	}
	if b.Len() != 0 {
		t.Errorf("builder should be empty after Build, Len=%d", b.Len())
	}
}

func TestBuilder_WrongOverload(t *testing.T) {
	t.Run("custom kind through Add", func(t *testing.T) {
		b := newTestBuilder().Add(cell.Custom, 3)
		if b.Len() != 0 {
			t.Errorf("nothing should be appended, Len=%d", b.Len())
		}
		_, err := b.Build()
		if !errors.IsCode(err, errors.ErrCodeInvalidParameter) {
			t.Fatalf("expected INVALID_PARAMETER, got %v", err)
		}
	})

	t.Run("predefined kind through AddCustom", func(t *testing.T) {
		_, err := newTestBuilder().AddCustom(cell.Addition, func(x int) int { return x }).Build()
		if !errors.IsCode(err, errors.ErrCodeInvalidParameter) {
			t.Fatalf("expected INVALID_PARAMETER, got %v", err)
		}
	})

	t.Run("custom kind through AddCustom", func(t *testing.T) {
		cells, err := newTestBuilder().AddCustom(cell.Custom, func(x int) int { return 2 * x }).Build()
		if err != nil || len(cells) != 1 || cells[0].Kind() != cell.Custom {
			t.Fatalf("expected one custom cell, got %v, %v", cells, err)
		}
	})
}

func TestBuilder_StickyError(t *testing.T) {
	b := newTestBuilder().
		Add(cell.Addition, 1).
		Add(cell.Division, 0).
		Add(cell.Addition, 2)
	if b.Err() == nil {
		t.Fatal("expected error after zero divisor")
	}
	if b.Len() != 1 {
		t.Errorf("calls after the error must be no-ops, Len=%d", b.Len())
	}
	cells, err := b.Build()
	if cells != nil || !errors.IsCode(err, errors.ErrCodeInvalidParameter) {
		t.Fatalf("expected nil cells and INVALID_PARAMETER, got %v, %v", cells, err)
	}
	if b.Err() != nil {
		t.Errorf("Build should reset the recorded error")
	}
}

func TestBuilder_AddCellIgnoresNilAndDuplicates(t *testing.T) {
	c := cell.NewAddition(1)
	cells, err := newTestBuilder().AddCell(c).AddCell(nil).AddCell(c).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 1 {
		t.Errorf("expected 1 cell, got %d", len(cells))
	}
}

func TestBuilder_FromEquationMatchesCoefficients(t *testing.T) {
	fromEq, err := newTestBuilder().FromEquation("2*X^3-6*X^2+2*X-1").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromCoefs, _ := newTestBuilder().FromCoefficients(2, -6, 2, -1).Build()
	if len(fromEq) != len(fromCoefs) {
		t.Fatalf("length mismatch: %d vs %d", len(fromEq), len(fromCoefs))
	}
	for i := range fromEq {
		if fromEq[i].Kind() != cell.Polynomial || fromEq[i].Param() != fromCoefs[i].Param() {
			t.Errorf("cell %d: %s, want %s", i, fromEq[i], fromCoefs[i])
		}
	}
}

func TestBuilder_FromEquationNegativeDegreeWarns(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "warn", Format: "json"}, "", &buf)
	cells, err := NewBuilder(WithLogger(log)).FromEquation("X^-2+1").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 1 || cells[0].Param() != 1 {
		t.Fatalf("expected a single constant stage, got %v", cells)
	}
	if !strings.Contains(buf.String(), "dropping term with negative degree") {
		t.Errorf("expected negative degree warning, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "1*X^-2") {
		t.Errorf("expected dropped term in warning, got %q", buf.String())
	}
}

func TestBuilder_FromEquationTooLarge(t *testing.T) {
	_, err := newTestBuilder().FromEquation("x^5000").Build()
	if !errors.IsCode(err, errors.ErrCodeInvalidParameter) {
		t.Fatalf("expected INVALID_PARAMETER, got %v", err)
	}
}

func TestBuilder_FromSpec(t *testing.T) {
	tests := []struct {
		name string
		spec *Spec
		want []int
	}{
		{"cells", &Spec{Cells: []CellDef{{Kind: "multiplication", Param: -4}, {Kind: "square"}, {Kind: "addition", Param: 7}}}, []int{-4, 2, 7}},
		{"coefficients", &Spec{Coefficients: []int{2, -6, 2, -1}}, []int{2, -6, 2, -1}},
		{"equation", &Spec{Equation: "x^2+1"}, []int{1, 0, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cells, err := newTestBuilder().FromSpec(tc.spec).Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := params(cells)
			if len(got) != len(tc.want) {
				t.Fatalf("params = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("params = %v, want %v", got, tc.want)
					break
				}
			}
		})
	}
}

func TestBuilder_FromSpecUnknownKind(t *testing.T) {
	_, err := newTestBuilder().FromSpec(&Spec{Cells: []CellDef{{Kind: "modulo"}}}).Build()
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestParseSpec(t *testing.T) {
	data := []byte(`
name: quadratic
cells:
  - kind: multiplication
    param: -4
  - kind: square
  - kind: addition
    param: 7
`)
	s, err := ParseSpec(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "quadratic" || len(s.Cells) != 3 {
		t.Fatalf("unexpected spec: %+v", s)
	}
	if s.Cells[0].Param != -4 || s.Cells[1].Kind != "square" {
		t.Errorf("unexpected cells: %+v", s.Cells)
	}
}

func TestParseSpec_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.ErrorCode
	}{
		{"invalid yaml", "cells: [", errors.ErrCodeInvalidFormat},
		{"no source", "name: empty", errors.ErrCodeMissingField},
		{"two sources", "coefficients: [1]\nequation: x", errors.ErrCodeConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSpec([]byte(tc.data))
			if !errors.IsCode(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestLoadSpec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cubic.yaml")
	if err := os.WriteFile(path, []byte("equation: 2*X^3-6*X^2+2*X-1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSpec(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Equation != "2*X^3-6*X^2+2*X-1" {
		t.Errorf("equation = %q", s.Equation)
	}

	_, err = LoadSpec(filepath.Join(dir, "missing.yaml"))
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
