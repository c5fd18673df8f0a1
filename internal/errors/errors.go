package errors

import (
	"encoding/json"
	"fmt"
)

// Closed set of failures the customer API can report. Storage errors are
// classified into one of these types at the repository boundary, so raw
// driver errors never travel further up.

// InvalidIDErr signals a malformed or non-positive customer identifier.
type InvalidIDErr struct {
	message string
}

func (e *InvalidIDErr) Error() string {
	return e.message
}

// Label returns the wire label of the error kind.
func (e *InvalidIDErr) Label() string {
	return "Invalid Customer ID"
}

// NewInvalidIDErr builds new InvalidIDErr
func NewInvalidIDErr(msg string) *InvalidIDErr {
	return &InvalidIDErr{message: msg}
}

// NotFoundErr signals that a well-formed identifier matched no customer.
type NotFoundErr struct {
	message string
}

func (e *NotFoundErr) Error() string {
	return e.message
}

// Label returns the wire label of the error kind.
func (e *NotFoundErr) Label() string {
	return "Customer not found"
}

// NewNotFoundErr builds new NotFoundErr
func NewNotFoundErr(msg string) *NotFoundErr {
	return &NotFoundErr{message: msg}
}

// DuplicateEntryErr signals an email collision with an existing customer.
type DuplicateEntryErr struct {
	message string
}

func (e *DuplicateEntryErr) Error() string {
	return e.message
}

// Label returns the wire label of the error kind.
func (e *DuplicateEntryErr) Label() string {
	return "Duplicate Entry"
}

// NewDuplicateEntryErr builds new DuplicateEntryErr
func NewDuplicateEntryErr(msg string) *DuplicateEntryErr {
	return &DuplicateEntryErr{message: msg}
}

// ValidationErr carries the ordered list of field-level violations.
type ValidationErr struct {
	message    string
	violations []string
}

func (e *ValidationErr) Error() string {
	return e.message
}

// Label returns the wire label of the error kind.
func (e *ValidationErr) Label() string {
	return "Validation Error"
}

// Violations returns field violation messages in check order.
func (e *ValidationErr) Violations() []string {
	return e.violations
}

func (e *ValidationErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}{Message: e.message, Errors: e.violations})
}

// NewValidationErr builds new ValidationErr
func NewValidationErr(msg string, violations []string) *ValidationErr {
	return &ValidationErr{message: msg, violations: violations}
}

// ServerErr wraps an unanticipated storage failure.
type ServerErr struct {
	message string
	cause   error
}

func (e *ServerErr) Error() string {
	return e.message
}

func (e *ServerErr) Unwrap() error {
	return e.cause
}

// Label returns the wire label of the error kind.
func (e *ServerErr) Label() string {
	return "Server Error"
}

// NewServerErr builds new ServerErr wrapping the storage-level cause
func NewServerErr(msg string, cause error) *ServerErr {
	return &ServerErr{message: fmt.Sprintf("%s - %v", msg, cause), cause: cause}
}
