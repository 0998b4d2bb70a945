package chain

import (
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/systolic/errors"
)

// Spec is a declarative chain definition. Exactly one of Cells,
// Coefficients or Equation must be set.
type Spec struct {
	// Name identifies the chain in logs.
	Name string `yaml:"name" json:"name,omitempty"`
	// Cells lists explicit cells, head first.
	Cells []CellDef `yaml:"cells,omitempty" json:"cells,omitempty"`
	// Coefficients lists Horner coefficients, highest degree first.
	Coefficients []int `yaml:"coefficients,omitempty" json:"coefficients,omitempty"`
	// Equation is a polynomial such as "2*X^3-6*X^2+2*X-1".
	Equation string `yaml:"equation,omitempty" json:"equation,omitempty"`
}

// CellDef declares one predefined cell.
type CellDef struct {
	Kind  string `yaml:"kind" json:"kind"`
	Param int    `yaml:"param,omitempty" json:"param,omitempty"`
}

// Validate checks that exactly one chain source is set.
func (s *Spec) Validate() error {
	sources := 0
	if len(s.Cells) > 0 {
		sources++
	}
	if len(s.Coefficients) > 0 {
		sources++
	}
	if strings.TrimSpace(s.Equation) != "" {
		sources++
	}
	switch {
	case sources == 0:
		return errors.MissingField("cells, coefficients or equation")
	case sources > 1:
		return errors.Conflict("a chain spec must use only one of cells, coefficients or equation")
	}
	return nil
}

// ParseSpec decodes a YAML chain spec.
func ParseSpec(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.InvalidFormat("chain spec", "YAML document").WithCause(err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSpec reads and decodes a YAML chain spec from path.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NotFound("chain spec", path).WithCause(err)
	}
	return ParseSpec(data)
}
