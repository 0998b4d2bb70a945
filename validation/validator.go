package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/systolic/chain"
	"github.com/kbukum/systolic/errors"
	"github.com/kbukum/systolic/util"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}

	return appErr
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// OptionalUUID checks if a non-empty string is a valid UUID.
func (v *Validator) OptionalUUID(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := uuid.Parse(value); err != nil {
		v.AddError(field, "must be a valid UUID")
	}
	return v
}

// Range checks if a number is within a range.
func (v *Validator) Range(field string, value, minVal, maxVal int) *Validator {
	if value < minVal || value > maxVal {
		v.AddError(field, fmt.Sprintf("must be between %d and %d", minVal, maxVal))
	}
	return v
}

// Min checks if a number meets minimum value.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		v.AddError(field, fmt.Sprintf("must be at least %d", minVal))
	}
	return v
}

// Pattern checks if a string matches a regex pattern.
func (v *Validator) Pattern(field, value, pattern string) *Validator {
	if value == "" {
		return v
	}
	matched, err := regexp.MatchString(pattern, value)
	if err != nil || !matched {
		v.AddError(field, "does not match required format")
	}
	return v
}

// OneOf checks if a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// Exclusive checks that at most one of the named options is set.
func (v *Validator) Exclusive(set map[string]bool) *Validator {
	var names []string
	for name, ok := range set {
		if ok {
			names = append(names, name)
		}
	}
	if len(names) > 1 {
		slices.Sort(names)
		v.AddError(strings.Join(names, ","), "cannot be used together")
	}
	return v
}

// IntList checks that a non-empty value is a comma separated list of
// integers such as "1,-2,3".
func (v *Validator) IntList(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v
	}
	if !intListPattern.MatchString(value) {
		v.AddError(field, "must be a comma separated list of integers")
	}
	return v
}

// Equation checks that a non-empty value is a polynomial in X.
func (v *Validator) Equation(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v
	}
	if err := ValidateEquation(value); err != nil {
		v.AddError(field, err.Error())
	}
	return v
}

var (
	intListPattern = regexp.MustCompile(`^\s*[+-]?\d+\s*(,\s*[+-]?\d+\s*)*$`)
	monomial       = `(\d+\*?[xX](\^\d+)?|[xX](\^\d+)?|\d+)`
	equationRegexp = regexp.MustCompile(`^[+-]?` + monomial + `([+-]` + monomial + `)*$`)
)

// ValidateEquation strictly checks a polynomial equation such as
// "2*X^3-6*X^2+2*X-1". Chain builders accept malformed text leniently; this
// is for callers that want to reject it up front.
func ValidateEquation(text string) error {
	compact := util.StripSpace(text)
	if compact == "" {
		return errors.MissingField("equation")
	}
	if !equationRegexp.MatchString(compact) {
		return errors.InvalidFormat("equation", "a sum of terms like 3*X^2, -X or 7")
	}
	if _, err := chain.Coefficients(compact); err != nil {
		return err
	}
	return nil
}

// ParseIntList validates and parses a comma separated integer list.
func ParseIntList(field, value string) ([]int, error) {
	if appErr := New().Required(field, value).IntList(field, value).Validate(); appErr != nil {
		return nil, appErr
	}
	values, err := util.ParseIntList(value)
	if err != nil {
		return nil, errors.InvalidFormat(field, "comma separated integers").WithCause(err)
	}
	return values, nil
}

// Required validates a single required field and returns an error if empty.
func Required(field, value string) error {
	v := New().Required(field, value)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
