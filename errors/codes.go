package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input and configuration errors
const (
	// ErrCodeInvalidInput indicates a caller-supplied value is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required option is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates an option has an invalid textual format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrCodeConflict indicates mutually exclusive options were combined.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeNotFound indicates a referenced resource (chain file, kind) does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Pipeline errors
const (
	// ErrCodeInvalidParameter indicates a cell was requested with a parameter it cannot accept.
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"
	// ErrCodeEmptyChain indicates a container was stepped without cells.
	ErrCodeEmptyChain ErrorCode = "EMPTY_CHAIN"
	// ErrCodeEmptyInput indicates a container was computed without inputs.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"
)

// Service errors
const (
	// ErrCodeBusy indicates the service is at its concurrency limit.
	ErrCodeBusy ErrorCode = "BUSY"
	// ErrCodePayloadTooLarge indicates a request body over the size limit.
	ErrCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// configurationCodes are the codes reported for user configuration mistakes.
var configurationCodes = map[ErrorCode]bool{
	ErrCodeInvalidInput:  true,
	ErrCodeMissingField:  true,
	ErrCodeInvalidFormat: true,
	ErrCodeConflict:      true,
	ErrCodeNotFound:      true,
	ErrCodeEmptyChain:    true,
	ErrCodeEmptyInput:    true,
}

// IsConfigurationCode reports whether code describes a user configuration
// error rather than a programming error.
func IsConfigurationCode(code ErrorCode) bool {
	return configurationCodes[code]
}
