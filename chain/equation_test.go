package chain

import (
	"reflect"
	"testing"

	"github.com/kbukum/systolic/errors"
)

func TestCoefficients(t *testing.T) {
	tests := []struct {
		name     string
		equation string
		want     []int
	}{
		{"cubic", "2*X^3-6*X^2+2*X-1", []int{2, -6, 2, -1}},
		{"whitespace and lowercase", " 2 * x^3 - 6*x^2 + 2*x - 1 ", []int{2, -6, 2, -1}},
		{"missing middle degrees", "x^3+1", []int{1, 0, 0, 1}},
		{"missing constant", "x^2-x", []int{1, -1, 0}},
		{"leading negation", "-x", []int{-1, 0}},
		{"implicit multiplication", "3x^2+4", []int{3, 0, 4}},
		{"equal degrees are summed", "3x^2+2x^2", []int{5, 0, 0}},
		{"out of order terms", "1+x^2", []int{1, 0, 1}},
		{"constant only", "42", []int{42}},
		{"repeated plus signs", "x++1", []int{1, 1}},
		{"empty", "", nil},
		{"negative degree dropped", "X^-2+1", []int{1}},
		{"only negative degrees", "3x^-1", nil},
		{"negative exponent keeps later subtraction", "x^-2+x-4", []int{1, -4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Coefficients(tc.equation)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Coefficients(%q) = %v, want %v", tc.equation, got, tc.want)
			}
		})
	}
}

func TestParseEquation_Terms(t *testing.T) {
	got := ParseEquation("2*X^3-6*X^2+2*X-1")
	want := []Term{{2, 3}, {-6, 2}, {2, 1}, {-1, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseEquation = %v, want %v", got, want)
	}
}

func TestParseEquation_NegativeExponent(t *testing.T) {
	tests := []struct {
		equation string
		want     []Term
	}{
		{"X^-2+1", []Term{{1, -2}, {1, 0}}},
		{"-3x^-1-x", []Term{{-3, -1}, {-1, 1}}},
		{"x^-", []Term{{1, -1}}},
	}
	for _, tc := range tests {
		t.Run(tc.equation, func(t *testing.T) {
			got := ParseEquation(tc.equation)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseEquation(%q) = %v, want %v", tc.equation, got, tc.want)
			}
		})
	}
}

func TestParseEquation_MalformedNeverPanics(t *testing.T) {
	inputs := []string{"abc", "xx", "x^", "^^^", "-", "+", "x-", "*x*", "1x2x3", "--x", "x^99999999999999999999999"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("ParseEquation(%q) panicked: %v", in, r)
				}
			}()
			_ = ParseEquation(in)
			_, _ = Coefficients(in)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("drops negative degrees", func(t *testing.T) {
		got, err := Normalize([]Term{{1, -2}, {3, 1}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Term{{3, 1}, {0, 0}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Normalize = %v, want %v", got, want)
		}
	})

	t.Run("only negative degrees yields nothing", func(t *testing.T) {
		got, err := Normalize([]Term{{1, -1}})
		if err != nil || got != nil {
			t.Errorf("expected nil, nil; got %v, %v", got, err)
		}
	})

	t.Run("rejects degree above maximum", func(t *testing.T) {
		_, err := Normalize([]Term{{1, MaxDegree + 1}})
		if !errors.IsCode(err, errors.ErrCodeInvalidParameter) {
			t.Fatalf("expected INVALID_PARAMETER, got %v", err)
		}
	})

	t.Run("maximum degree accepted", func(t *testing.T) {
		got, err := Normalize([]Term{{1, MaxDegree}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != MaxDegree+1 {
			t.Errorf("expected %d terms, got %d", MaxDegree+1, len(got))
		}
	})
}

func TestTerm_String(t *testing.T) {
	if got := (Term{Coef: -6, Degree: 2}).String(); got != "-6*X^2" {
		t.Errorf("String() = %q", got)
	}
}
