package cell

import (
	"encoding/json"
	"testing"

	"github.com/kbukum/systolic/errors"
)

func TestCompute_Transforms(t *testing.T) {
	square := NewSquare()
	power, _ := NewPower(3)
	div, _ := NewDivision(4)
	negDiv, _ := NewDivision(4)
	custom, _ := NewCustom(func(x int) int { return 10 * x })

	tests := []struct {
		name string
		cell *Cell
		in   Partial
		want int
	}{
		{"addition adds its term", NewAddition(7), Partial{Accumulated: Some(-3), Produced: Some(1)}, 4},
		{"multiplication adds x*factor", NewMultiplication(-4), Seed(2), -8},
		{"division truncates", div, Seed(7), 1},
		{"division truncates toward zero", negDiv, Seed(-7), -1},
		{"square adds x*x", square, Partial{Accumulated: Some(-8), Produced: Some(2)}, -4},
		{"power adds x^exp", power, Partial{Accumulated: Some(1), Produced: Some(2)}, 9},
		{"polynomial is one horner step", NewPolynomial(-6), Partial{Accumulated: Some(2), Produced: Some(3)}, 0},
		{"polynomial head seeds with coef", NewPolynomial(2), Seed(3), 2},
		{"custom applies function", custom, Partial{Accumulated: Some(5), Produced: Some(3)}, 35},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cell.Feed(tc.in)
			got := tc.cell.Compute()
			if !got.Accumulated.Valid || got.Accumulated.Int != tc.want {
				t.Fatalf("accumulated = %v, want %d", got.Accumulated, tc.want)
			}
			if got.Produced != tc.in.Produced {
				t.Errorf("produced = %v, want forwarded input %v", got.Produced, tc.in.Produced)
			}
		})
	}
}

func TestCompute_EmptyInput(t *testing.T) {
	c := NewAddition(1)
	got := c.Compute()
	if got.Accumulated.Valid || got.Produced.Valid {
		t.Fatalf("expected empty partial on idle cell, got %+v", got)
	}
	if c.State() != Idle {
		t.Errorf("expected idle, got %s", c.State())
	}

	c.Feed(Seed(4))
	c.Compute()
	c.Feed(Partial{})
	got = c.Compute()
	if !got.Empty() || got.Accumulated.Valid {
		t.Fatalf("expected empty partial after empty feed, got %+v", got)
	}
	if c.State() != Primed {
		t.Errorf("cell stays primed once fed, got %s", c.State())
	}
	if c.Contributed() != 1 {
		t.Errorf("empty steps must not reset the contribution total, got %d", c.Contributed())
	}
}

func TestContributed_Accumulates(t *testing.T) {
	c := NewMultiplication(2)
	for _, x := range []int{1, 2, 3} {
		c.Feed(Seed(x))
		c.Compute()
	}
	if c.Contributed() != 12 {
		t.Errorf("expected 2+4+6=12, got %d", c.Contributed())
	}
}

func TestPartial_IdempotentObservation(t *testing.T) {
	c := NewPolynomial(5)
	c.Feed(Partial{Accumulated: Some(2), Produced: Some(3)})
	computed := c.Compute()
	first := c.Partial()
	second := c.Partial()
	if first != second || first != computed {
		t.Fatalf("Partial() not stable: %+v, %+v, computed %+v", first, second, computed)
	}
}

func TestFeed_DoesNotCompute(t *testing.T) {
	c := NewAddition(3)
	c.Feed(Seed(1))
	c.Compute()
	before := c.Partial()
	c.Feed(Seed(100))
	if c.Partial() != before {
		t.Fatalf("Feed mutated the last partial: %+v -> %+v", before, c.Partial())
	}
	if c.Pending() != Seed(100) {
		t.Errorf("expected pending to hold the fed value, got %+v", c.Pending())
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		arg  int
	}{
		{"zero divisor", Division, 0},
		{"negative exponent", Power, -1},
		{"custom via integer", Custom, 3},
		{"unknown kind", Kind(99), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.kind, tc.arg)
			if err == nil {
				t.Fatalf("expected error, got cell %v", c)
			}
			if !errors.IsCode(err, errors.ErrCodeInvalidParameter) {
				t.Errorf("expected INVALID_PARAMETER, got %v", err)
			}
		})
	}

	if _, err := NewCustom(nil); !errors.IsCode(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("expected nil function to be rejected, got %v", err)
	}
}

func TestNew_AllPredefinedKinds(t *testing.T) {
	for _, k := range Kinds() {
		if k == Custom {
			continue
		}
		c, err := New(k, 2)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", k, err)
		}
		if c.Kind() != k {
			t.Errorf("expected kind %s, got %s", k, c.Kind())
		}
	}
}

func TestDescription(t *testing.T) {
	div, _ := NewDivision(4)
	pow, _ := NewPower(3)
	custom, _ := NewCustom(func(x int) int { return x })
	tests := []struct {
		cell *Cell
		want string
	}{
		{NewAddition(7), "+ 7"},
		{NewMultiplication(-4), "+ X * -4"},
		{div, "+ X / 4"},
		{NewSquare(), "+ X^2"},
		{pow, "+ X^3"},
		{NewPolynomial(7), "* X + 7"},
		{custom, "+ f(X)"},
	}
	for _, tc := range tests {
		if got := tc.cell.Description(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.cell.Kind(), got, tc.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"addition":       Addition,
		"Multiplication": Multiplication,
		"div":            Division,
		" square ":       Square,
		"pow":            Power,
		"polynomial":     Polynomial,
		"custom":         Custom,
		"*":              Multiplication,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseKind(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseKind("modulo"); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND for unknown kind, got %v", err)
	}
}

func TestKind_TextRoundTrip(t *testing.T) {
	var k Kind
	if err := k.UnmarshalText([]byte("division")); err != nil {
		t.Fatal(err)
	}
	text, _ := k.MarshalText()
	if string(text) != "division" {
		t.Errorf("got %q", text)
	}
}

func TestIpow(t *testing.T) {
	tests := []struct{ base, exp, want int }{
		{2, 0, 1}, {2, 10, 1024}, {-3, 3, -27}, {0, 0, 1}, {5, 1, 5},
	}
	for _, tc := range tests {
		if got := ipow(tc.base, tc.exp); got != tc.want {
			t.Errorf("ipow(%d, %d) = %d, want %d", tc.base, tc.exp, got, tc.want)
		}
	}
}

func TestValue(t *testing.T) {
	if None().String() != "-" || Some(-4).String() != "-4" {
		t.Errorf("unexpected rendering: %q %q", None().String(), Some(-4).String())
	}
	if None().Or(9) != 9 || Some(2).Or(9) != 2 {
		t.Error("Or returned the wrong value")
	}
}

func TestPartial_JSON(t *testing.T) {
	data, err := json.Marshal(Partial{Accumulated: Some(-3)})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"accumulated":-3,"produced":null}` {
		t.Errorf("json = %s", data)
	}

	var p Partial
	if err := json.Unmarshal([]byte(`{"accumulated":null,"produced":7}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Accumulated.Valid || p.Produced != Some(7) {
		t.Errorf("decoded %+v", p)
	}
}
