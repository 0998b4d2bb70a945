package chain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/kbukum/systolic/cell"
	"github.com/kbukum/systolic/errors"
	"github.com/kbukum/systolic/util"
)

// MaxDegree bounds the degree accepted from an equation. Every degree level
// becomes one cell, so the bound caps the chain length.
const MaxDegree = 4096

// Term is one monomial: Coef * X^Degree.
type Term struct {
	Coef   int
	Degree int
}

func (t Term) String() string {
	return fmt.Sprintf("%d*X^%d", t.Coef, t.Degree)
}

var plusRuns = regexp.MustCompile(`\++`)

// ParseEquation splits a sum of signed monomials into terms, in source order.
//
// Parsing is lenient: a coefficient or degree that is not a number reads as
// the leading digits it starts with, or 0. Malformed text never fails; it
// produces whatever terms the lenient reading yields.
func ParseEquation(text string) []Term {
	e := reformat(text)
	var terms []Term
	for _, member := range strings.Split(e, "+") {
		if member == "" {
			continue
		}
		if !strings.Contains(member, "x") {
			terms = append(terms, Term{Coef: util.Atoi(member), Degree: 0})
			continue
		}
		terms = append(terms, parseMonomial(member))
	}
	return terms
}

// reformat strips whitespace, lowercases the variable and rewrites every
// subtraction as the addition of a negated term. A minus right after '^'
// signs the exponent and is left alone.
func reformat(text string) string {
	e := strings.ReplaceAll(util.StripSpace(text), "X", "x")
	var b strings.Builder
	b.Grow(len(e) * 2)
	for i := 0; i < len(e); i++ {
		if e[i] == '-' && (i == 0 || e[i-1] != '^') {
			b.WriteByte('+')
		}
		b.WriteByte(e[i])
	}
	return plusRuns.ReplaceAllString(b.String(), "+")
}

func parseMonomial(member string) Term {
	sub := strings.Split(member, "x")
	coef := signedDigits(sub[0])
	t := Term{Coef: 1, Degree: 1}
	switch coef {
	case "":
	case "-":
		t.Coef = -1
	default:
		t.Coef = util.Atoi(coef)
	}
	if len(sub) == 2 && sub[1] != "" {
		deg := signedDigits(sub[1])
		if deg == "-" {
			t.Degree = -1
		} else {
			t.Degree = util.Atoi(deg)
		}
	}
	return t
}

func signedDigits(s string) string {
	return util.KeepRunes(s, func(r rune) bool { return r == '-' || unicode.IsDigit(r) })
}

// Normalize turns terms into the dense Horner form: equal degrees are summed,
// degrees are sorted highest first, and a zero term is synthesized for every
// missing degree down to 0. Terms with a negative degree cannot be expressed
// as Horner stages and are dropped.
func Normalize(terms []Term) ([]Term, error) {
	byDegree := make(map[int]int)
	highest := -1
	for _, t := range terms {
		if t.Degree < 0 {
			continue
		}
		if t.Degree > MaxDegree {
			return nil, errors.InvalidParameter(cell.Polynomial.String(), fmt.Sprintf("degree %d exceeds the maximum of %d", t.Degree, MaxDegree))
		}
		byDegree[t.Degree] += t.Coef
		if t.Degree > highest {
			highest = t.Degree
		}
	}
	if highest < 0 {
		return nil, nil
	}
	out := make([]Term, 0, highest+1)
	for d := highest; d >= 0; d-- {
		out = append(out, Term{Coef: byDegree[d], Degree: d})
	}
	return out, nil
}

// Coefficients compiles an equation into Horner coefficients, highest degree
// first. It returns nil when the equation yields no terms.
func Coefficients(text string) ([]int, error) {
	terms, err := Normalize(ParseEquation(text))
	if err != nil || len(terms) == 0 {
		return nil, err
	}
	coefs := make([]int, len(terms))
	for i, t := range terms {
		coefs[i] = t.Coef
	}
	return coefs, nil
}
