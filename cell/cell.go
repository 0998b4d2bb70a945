package cell

import (
	"fmt"

	"github.com/kbukum/systolic/errors"
)

// State is the observable lifecycle state of a cell.
type State int

const (
	// Idle cells have never been fed a present value.
	Idle State = iota
	// Primed cells have been fed at least once.
	Primed
)

func (s State) String() string {
	if s == Primed {
		return "primed"
	}
	return "idle"
}

// Func is a user-supplied total function applied by Custom cells.
type Func func(int) int

// Cell is one stage of a systolic chain.
type Cell struct {
	kind  Kind
	param int
	fn    Func

	pending Partial
	last    Partial
	state   State
	total   int
}

// New creates a predefined cell of the given kind. Custom cells need a
// function and must be created with NewCustom.
func New(kind Kind, param int) (*Cell, error) {
	switch kind {
	case Addition:
		return NewAddition(param), nil
	case Multiplication:
		return NewMultiplication(param), nil
	case Division:
		return NewDivision(param)
	case Square:
		return NewSquare(), nil
	case Power:
		return NewPower(param)
	case Polynomial:
		return NewPolynomial(param), nil
	case Custom:
		return nil, errors.InvalidParameter(kind.String(), "a custom cell needs a function, not an integer parameter")
	default:
		return nil, errors.InvalidParameter(kind.String(), fmt.Sprintf("kind %d is not implemented", int(kind)))
	}
}

// NewAddition creates a cell adding term to the running value.
func NewAddition(term int) *Cell {
	return &Cell{kind: Addition, param: term}
}

// NewMultiplication creates a cell adding x*factor to the running value.
func NewMultiplication(factor int) *Cell {
	return &Cell{kind: Multiplication, param: factor}
}

// NewDivision creates a cell adding x/divisor, truncated toward zero.
func NewDivision(divisor int) (*Cell, error) {
	if divisor == 0 {
		return nil, errors.InvalidParameter(Division.String(), "divisor must be non-zero")
	}
	return &Cell{kind: Division, param: divisor}, nil
}

// NewSquare creates a cell adding x*x.
func NewSquare() *Cell {
	return &Cell{kind: Square, param: 2}
}

// NewPower creates a cell adding x^exp. Negative exponents are rejected.
func NewPower(exp int) (*Cell, error) {
	if exp < 0 {
		return nil, errors.InvalidParameter(Power.String(), "exponent must not be negative")
	}
	return &Cell{kind: Power, param: exp}, nil
}

// NewPolynomial creates a Horner stage computing acc*x + coef.
func NewPolynomial(coef int) *Cell {
	return &Cell{kind: Polynomial, param: coef}
}

// NewCustom creates a cell adding fn(x).
func NewCustom(fn Func) (*Cell, error) {
	if fn == nil {
		return nil, errors.InvalidParameter(Custom.String(), "function must not be nil")
	}
	return &Cell{kind: Custom, fn: fn}, nil
}

// Kind returns the cell's arithmetic kind.
func (c *Cell) Kind() Kind { return c.kind }

// Param returns the integer the cell was configured with.
func (c *Cell) Param() int { return c.param }

// State reports whether the cell has been fed a value yet.
func (c *Cell) State() State { return c.state }

// Contributed returns the sum of every change this cell has applied to the
// running value over its lifetime.
func (c *Cell) Contributed() int { return c.total }

// Feed stores p for the next Compute. It performs no arithmetic.
func (c *Cell) Feed(p Partial) {
	c.pending = p
	if p.Produced.Valid {
		c.state = Primed
	}
}

// Compute applies the cell's transform to the pending partial. With no
// pending input it reports an empty partial.
func (c *Cell) Compute() Partial {
	if !c.pending.Produced.Valid {
		c.last = Partial{}
		return c.last
	}
	acc := c.pending.Accumulated.Or(0)
	x := c.pending.Produced.Int
	next := c.apply(acc, x)
	c.total += next - acc
	c.last = Partial{Accumulated: Some(next), Produced: Some(x)}
	return c.last
}

// Partial returns the result of the last Compute.
func (c *Cell) Partial() Partial { return c.last }

// Pending returns the partial most recently fed.
func (c *Cell) Pending() Partial { return c.pending }

// Description renders the transform symbolically, e.g. "+ X / 4".
func (c *Cell) Description() string {
	switch c.kind {
	case Addition:
		return fmt.Sprintf("+ %d", c.param)
	case Multiplication:
		return fmt.Sprintf("+ X * %d", c.param)
	case Division:
		return fmt.Sprintf("+ X / %d", c.param)
	case Square:
		return "+ X^2"
	case Power:
		return fmt.Sprintf("+ X^%d", c.param)
	case Polynomial:
		return fmt.Sprintf("* X + %d", c.param)
	case Custom:
		return "+ f(X)"
	default:
		return "?"
	}
}

func (c *Cell) String() string {
	return c.kind.String() + "(" + c.Description() + ")"
}

func (c *Cell) apply(acc, x int) int {
	switch c.kind {
	case Addition:
		return acc + c.param
	case Multiplication:
		return acc + x*c.param
	case Division:
		return acc + x/c.param
	case Square:
		return acc + x*x
	case Power:
		return acc + ipow(x, c.param)
	case Polynomial:
		return acc*x + c.param
	case Custom:
		return acc + c.fn(x)
	default:
		return acc
	}
}

// ipow computes base^exp by squaring. exp is never negative.
func ipow(base, exp int) int {
	result := 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
