package cell

import (
	"strings"

	"github.com/kbukum/systolic/errors"
)

// Kind identifies the arithmetic a cell performs.
type Kind int

const (
	Addition Kind = iota
	Multiplication
	Division
	Square
	Power
	Polynomial
	Custom
)

var kindNames = map[Kind]string{
	Addition:       "addition",
	Multiplication: "multiplication",
	Division:       "division",
	Square:         "square",
	Power:          "power",
	Polynomial:     "polynomial",
	Custom:         "custom",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{Addition, Multiplication, Division, Square, Power, Polynomial, Custom}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind resolves a kind by name. Matching is case-insensitive and also
// accepts the short operator aliases used in chain files.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "add", "+":
		return Addition, nil
	case "mul", "multiply", "*":
		return Multiplication, nil
	case "div", "divide", "/":
		return Division, nil
	case "sq", "^2":
		return Square, nil
	case "pow", "^":
		return Power, nil
	case "poly", "horner":
		return Polynomial, nil
	}
	for k, s := range kindNames {
		if s == n {
			return k, nil
		}
	}
	return 0, errors.NotFound("cell kind", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
