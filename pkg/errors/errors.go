package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeDuplicateKey       Code = "DUPLICATE_KEY"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidRange       Code = "INVALID_RANGE"
	CodeInvalidAmount      Code = "INVALID_AMOUNT"
	CodeInvalidQuantity    Code = "INVALID_QUANTITY"
	CodeEmptyField         Code = "EMPTY_FIELD"
	CodeEmptyIdentifier    Code = "EMPTY_IDENTIFIER"
	CodeEmptyName          Code = "EMPTY_NAME"
	CodeMalformedDetails   Code = "MALFORMED_DETAILS"
	CodeUnknownProduct     Code = "UNKNOWN_PRODUCT"
	CodeInvalidNumeric     Code = "INVALID_NUMERIC_INPUT"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	CodeInternal           Code = "INTERNAL_ERROR"
)

// Metadata describes how a caller is expected to react to a code.
type Metadata struct {
	// Validation marks failures caused by caller input; interactive callers re-prompt.
	Validation    bool
	Retryable     bool
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeDuplicateKey: {
		Validation:    true,
		PublicMessage: "identifier already exists",
	},
	CodeNotFound: {
		Validation:    true,
		PublicMessage: "record not found",
	},
	CodeInvalidRange: {
		Validation:    true,
		PublicMessage: "value out of range",
	},
	CodeInvalidAmount: {
		Validation:    true,
		PublicMessage: "amount must be positive",
	},
	CodeInvalidQuantity: {
		Validation:    true,
		PublicMessage: "quantity must be a positive integer",
	},
	CodeEmptyField: {
		Validation:    true,
		PublicMessage: "required field is empty",
	},
	CodeEmptyIdentifier: {
		Validation:    true,
		PublicMessage: "identifier cannot be empty",
	},
	CodeEmptyName: {
		Validation:    true,
		PublicMessage: "name cannot be empty",
	},
	CodeMalformedDetails: {
		Validation:    true,
		PublicMessage: "record details are incomplete",
	},
	CodeUnknownProduct: {
		Validation:    true,
		PublicMessage: "product does not exist in the catalog",
	},
	CodeInvalidNumeric: {
		Validation:    true,
		PublicMessage: "value is not a number",
	},
	CodeStorageUnavailable: {
		Retryable:     true,
		PublicMessage: "storage unavailable",
	},
	CodeInternal: {
		Retryable:     true,
		PublicMessage: "internal error",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	for cur := err; cur != nil; cur = stdErrors.Unwrap(cur) {
		if typed, ok := cur.(*Error); ok && typed != nil && typed.code == code {
			return true
		}
	}
	return false
}

// IsValidation reports whether err is a caller input failure.
func IsValidation(err error) bool {
	typed := As(err)
	return typed != nil && MetadataFor(typed.code).Validation
}
