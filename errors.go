package alembic

import (
	"fmt"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeKeyNotFound indicates no binding exists for the requested key
	CodeKeyNotFound = "KEY_NOT_FOUND"

	// CodeInvalidKey indicates an empty or otherwise unusable type key
	CodeInvalidKey = "INVALID_KEY"

	// CodeInvalidFactory indicates a factory function is invalid or nil
	CodeInvalidFactory = "INVALID_FACTORY"

	// CodeInvalidTag indicates an empty tag identity
	CodeInvalidTag = "INVALID_TAG"

	// CodeTypeMismatch indicates a type mismatch during resolution
	CodeTypeMismatch = "TYPE_MISMATCH"

	// CodeInvalidScope indicates a nil custom scope
	CodeInvalidScope = "INVALID_SCOPE"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidFactory is returned when a nil factory is registered.
var ErrInvalidFactory = errs.NewError(CodeInvalidFactory, "factory cannot be nil", nil)

// ErrInvalidKey is returned when an empty type key is used for registration.
var ErrInvalidKey = errs.NewError(CodeInvalidKey, "type key cannot be empty", nil)

// ErrInvalidTag is returned when an empty tag is used.
var ErrInvalidTag = errs.NewError(CodeInvalidTag, "tag cannot be empty", nil)

// ErrInvalidScope is returned when a nil custom scope is supplied.
var ErrInvalidScope = errs.NewError(CodeInvalidScope, "scope cannot be nil", nil)

// ErrKeyNotFoundSentinel is a sentinel error for unregistered keys (for error checking).
var ErrKeyNotFoundSentinel = errs.NewError(CodeKeyNotFound, "key not registered", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrKeyNotFound creates an error for a key with no binding and no override.
// A missing binding is a programmer error and is surfaced immediately rather
// than silently defaulted.
func ErrKeyNotFound(key TypeKey) *errs.Error {
	return errs.NewError(
		CodeKeyNotFound,
		fmt.Sprintf("key '%s' not registered", key),
		nil,
	).WithContext("key", string(key)).(*errs.Error)
}

// ErrTypeMismatch creates an error for a type mismatch during resolution.
func ErrTypeMismatch(key TypeKey, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("key '%s' type mismatch: got %T", key, actual),
		nil,
	).WithContext("key", string(key)).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}
