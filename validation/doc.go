// Package validation checks evaluation options before they reach a chain
// builder or container.
//
// It supports both struct tag validation (using the validator library, with
// an extra "equation" tag) and programmatic validation with error
// collection.
//
// # Struct Tag Validation
//
//	type Request struct {
//	    Inputs   []int  `json:"inputs" validate:"required,min=1"`
//	    Equation string `json:"equation" validate:"omitempty,equation"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("with-x", raw).IntList("with-x", raw)
//	err := v.Validate()
package validation
