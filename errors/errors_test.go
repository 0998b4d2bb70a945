package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
}

func TestAppError_InvalidParameter(t *testing.T) {
	err := InvalidParameter("division", "divisor must be non-zero")
	if err.Code != ErrCodeInvalidParameter {
		t.Errorf("expected INVALID_PARAMETER, got %s", err.Code)
	}
	if err.Details["kind"] != "division" {
		t.Errorf("expected kind=division, got %v", err.Details["kind"])
	}
	if !strings.Contains(err.Message, "divisor must be non-zero") {
		t.Errorf("expected reason in message, got %q", err.Message)
	}
	if IsConfigurationCode(err.Code) {
		t.Error("INVALID_PARAMETER is a construction error, not a configuration error")
	}
}

func TestAppError_InvalidInput_Success(t *testing.T) {
	err := InvalidInput("with-x", "must be a list of integers")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "with-x" {
		t.Errorf("expected field=with-x, got %v", err.Details["field"])
	}
}

func TestAppError_InvalidInput_NoField(t *testing.T) {
	err := InvalidInput("", "bad")
	if _, ok := err.Details["field"]; ok {
		t.Error("expected no 'field' key in details when field is empty")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := NotFound("chain file", "quadratic.yaml").WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := NotFound("chain file", "1").WithDetails(map[string]any{
		"extra": "info",
	})
	if err.Details["extra"] != "info" {
		t.Errorf("expected extra=info in details")
	}
	if err.Details["resource"] != "chain file" {
		t.Error("expected original details to be preserved")
	}

	err.WithDetails(map[string]any{
		"another": "detail",
	})
	if err.Details["another"] != "detail" {
		t.Error("expected another=detail to be merged")
	}
	if err.Details["extra"] != "info" {
		t.Error("expected extra=info to be preserved after second merge")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized")
	}
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Unwrap_Success(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Internal(cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	err2 := EmptyChain()
	if err2.Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
		config bool
	}{
		{"EmptyChain", EmptyChain(), ErrCodeEmptyChain, http.StatusUnprocessableEntity, true},
		{"EmptyInput", EmptyInput(), ErrCodeEmptyInput, http.StatusUnprocessableEntity, true},
		{"Conflict", Conflict("coefs and equation are exclusive"), ErrCodeConflict, http.StatusConflict, true},
		{"MissingField", MissingField("with-x"), ErrCodeMissingField, http.StatusBadRequest, true},
		{"InvalidFormat", InvalidFormat("coefs", "1,2,3"), ErrCodeInvalidFormat, http.StatusBadRequest, true},
		{"Validation", Validation("inputs: is required"), ErrCodeInvalidInput, http.StatusBadRequest, true},
		{"Busy", Busy("evaluator"), ErrCodeBusy, http.StatusServiceUnavailable, false},
		{"PayloadTooLarge", PayloadTooLarge(1024), ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge, false},
		{"Internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if IsConfigurationCode(tc.err.Code) != tc.config {
				t.Errorf("expected configuration=%v for %s", tc.config, tc.code)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	wrapped := fmt.Errorf("compute: %w", EmptyInput())
	if !IsCode(wrapped, ErrCodeEmptyInput) {
		t.Error("expected wrapped EMPTY_INPUT to match")
	}
	if IsCode(wrapped, ErrCodeEmptyChain) {
		t.Error("did not expect EMPTY_CHAIN to match")
	}
	if IsCode(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("plain errors never match a code")
	}
}

func TestToResponse(t *testing.T) {
	resp := MissingField("equation").ToResponse()
	if resp.Error.Code != ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", resp.Error.Code)
	}
	if resp.Error.Details["field"] != "equation" {
		t.Errorf("expected field=equation, got %v", resp.Error.Details["field"])
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Conflict("x"))
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeConflict {
		t.Fatalf("expected CONFLICT app error, got %v (ok=%v)", appErr, ok)
	}
	if IsAppError(stderrors.New("plain")) {
		t.Error("plain error is not an AppError")
	}
}
