package cell

import (
	"encoding/json"
	"strconv"
)

// Value is an integer that may be absent.
type Value struct {
	Int   int
	Valid bool
}

// Some returns a present Value.
func Some(v int) Value { return Value{Int: v, Valid: true} }

// None returns an absent Value.
func None() Value { return Value{} }

// Or returns the integer, or def when the value is absent.
func (v Value) Or(def int) int {
	if !v.Valid {
		return def
	}
	return v.Int
}

// String renders the value, using "-" for an absent value.
func (v Value) String() string {
	if !v.Valid {
		return "-"
	}
	return strconv.Itoa(v.Int)
}

// MarshalJSON encodes an absent value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Int)
}

// UnmarshalJSON decodes null as an absent value.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	if err := json.Unmarshal(data, &v.Int); err != nil {
		return err
	}
	v.Valid = true
	return nil
}

// MarshalYAML encodes an absent value as null.
func (v Value) MarshalYAML() (interface{}, error) {
	if !v.Valid {
		return nil, nil
	}
	return v.Int, nil
}

// Partial is the pair a cell hands to the next stage.
type Partial struct {
	Accumulated Value `json:"accumulated" yaml:"accumulated"`
	Produced    Value `json:"produced" yaml:"produced"`
}

// Empty reports whether the partial carries no produced value.
func (p Partial) Empty() bool { return !p.Produced.Valid }

// Seed builds the partial fed to the head of a chain for a raw input.
func Seed(x int) Partial {
	return Partial{Produced: Some(x)}
}
