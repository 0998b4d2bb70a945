package chain

import (
	"github.com/kbukum/systolic/cell"
	"github.com/kbukum/systolic/errors"
	"github.com/kbukum/systolic/logger"
)

// Builder assembles an ordered cell chain. Every method returns the builder
// so calls can be chained; the first failing call records its error, appends
// nothing, and turns the remaining calls into no-ops until Build.
type Builder struct {
	cells []*cell.Cell
	err   error
	log   *logger.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for warnings about ignored cells.
func WithLogger(log *logger.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.WithComponent("chain")
	}
	return b
}

// Add appends one predefined cell. Custom cells need a function; requesting
// one here records an INVALID_PARAMETER error.
func (b *Builder) Add(kind cell.Kind, param int) *Builder {
	if b.err != nil {
		return b
	}
	if kind == cell.Custom {
		b.err = errors.InvalidParameter(kind.String(), "cannot declare a custom cell with an integer parameter, use AddCustom")
		return b
	}
	c, err := cell.New(kind, param)
	if err != nil {
		b.err = err
		return b
	}
	b.cells = append(b.cells, c)
	return b
}

// AddCustom appends a custom cell running fn. kind must be cell.Custom.
func (b *Builder) AddCustom(kind cell.Kind, fn cell.Func) *Builder {
	if b.err != nil {
		return b
	}
	if kind != cell.Custom {
		b.err = errors.InvalidParameter(kind.String(), "cannot use a custom function on a predefined cell, use Add")
		return b
	}
	c, err := cell.NewCustom(fn)
	if err != nil {
		b.err = err
		return b
	}
	b.cells = append(b.cells, c)
	return b
}

// AddCell appends an already constructed cell. A nil cell, or one already
// in the chain, is ignored with a warning.
func (b *Builder) AddCell(c *cell.Cell) *Builder {
	if b.err != nil {
		return b
	}
	if c == nil {
		b.log.Warn("ignoring nil cell")
		return b
	}
	for i, existing := range b.cells {
		if existing == c {
			b.log.Warn("ignoring duplicate cell", logger.Fields(logger.FieldCell, i, logger.FieldKind, c.Kind().String()))
			return b
		}
	}
	b.cells = append(b.cells, c)
	return b
}

// FromCoefficients appends one polynomial cell per coefficient, in order.
// For c0*x^n + ... + cn pass c0 first.
func (b *Builder) FromCoefficients(coefs ...int) *Builder {
	if b.err != nil {
		return b
	}
	for _, coef := range coefs {
		b.cells = append(b.cells, cell.NewPolynomial(coef))
	}
	return b
}

// FromEquation compiles a polynomial equation into Horner stages, highest
// degree first, with zero stages for missing degrees.
func (b *Builder) FromEquation(equation string) *Builder {
	if b.err != nil {
		return b
	}
	terms := ParseEquation(equation)
	for _, t := range terms {
		if t.Degree < 0 {
			b.log.Warn("dropping term with negative degree", logger.Fields("term", t.String()))
		}
	}
	normalized, err := Normalize(terms)
	if err != nil {
		b.err = err
		return b
	}
	if len(normalized) == 0 {
		b.log.Warn("equation yielded no terms", logger.Fields("equation", equation))
	}
	for _, t := range normalized {
		b.cells = append(b.cells, cell.NewPolynomial(t.Coef))
	}
	return b
}

// FromSpec appends the cells a declarative chain spec describes.
func (b *Builder) FromSpec(spec *Spec) *Builder {
	if b.err != nil {
		return b
	}
	if err := spec.Validate(); err != nil {
		b.err = err
		return b
	}
	switch {
	case len(spec.Coefficients) > 0:
		return b.FromCoefficients(spec.Coefficients...)
	case spec.Equation != "":
		return b.FromEquation(spec.Equation)
	}
	for _, def := range spec.Cells {
		kind, err := cell.ParseKind(def.Kind)
		if err != nil {
			b.err = err
			return b
		}
		b.Add(kind, def.Param)
	}
	return b
}

// Len returns the number of cells assembled so far.
func (b *Builder) Len() int { return len(b.cells) }

// Err returns the first error recorded since the last Build.
func (b *Builder) Err() error { return b.err }

// Build transfers the assembled cells, and the first recorded error, to the
// caller. The builder is empty afterwards.
func (b *Builder) Build() ([]*cell.Cell, error) {
	cells, err := b.cells, b.err
	b.cells, b.err = nil, nil
	if err != nil {
		return nil, err
	}
	if cells == nil {
		cells = []*cell.Cell{}
	}
	return cells, nil
}
