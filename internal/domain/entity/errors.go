package entity

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrMalformedID indicates that a supplied identity does not have the store's identity shape
	ErrMalformedID = errors.New("malformed identity")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError represents a single violated rule with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Violations is an ordered list of validation errors collected without
// short-circuiting. A nil or empty list means the input is valid.
type Violations []ValidationError

// Add appends a violation without a value.
func (v *Violations) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// AddValue appends a violation that echoes the offending value.
func (v *Violations) AddValue(field string, value any, message string) {
	*v = append(*v, ValidationError{Field: field, Value: value, Message: message})
}

// Merge appends every violation of other, preserving order.
func (v *Violations) Merge(other Violations) {
	*v = append(*v, other...)
}

// Check appends the violation returned by a field validator, if any.
func (v *Violations) Check(ve *ValidationError) {
	if ve != nil {
		*v = append(*v, *ve)
	}
}

// Empty reports whether no rule was violated.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// Err returns v as an error, or nil when there are no violations.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

// Error joins every violation message.
func (v Violations) Error() string {
	msgs := make([]string, 0, len(v))
	for i := range v {
		msgs = append(msgs, v[i].Error())
	}
	return strings.Join(msgs, "; ")
}

// Is makes errors.Is(v, ErrValidationFailed) hold.
func (v Violations) Is(target error) bool {
	return target == ErrValidationFailed
}

// NotFoundError reports an identity-scoped operation against a missing document.
// It carries the single violation on the identity field.
type NotFoundError struct {
	Violation ValidationError
}

// NewNotFound builds a NotFoundError for the given identity field.
func NewNotFound(field string, value any, message string) *NotFoundError {
	return &NotFoundError{Violation: ValidationError{Field: field, Value: value, Message: message}}
}

func (e *NotFoundError) Error() string {
	return e.Violation.Message
}

// Unwrap lets errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// MalformedIDError reports an identity that does not have the store's identity shape.
type MalformedIDError struct {
	Violation ValidationError
}

func (e *MalformedIDError) Error() string {
	return e.Violation.Message
}

// Unwrap lets errors.Is(err, ErrMalformedID) hold.
func (e *MalformedIDError) Unwrap() error {
	return ErrMalformedID
}

// ParseID parses raw as a store identity. Anything but 24 hex characters
// yields a MalformedIDError on field; no store access is involved.
func ParseID(field, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, &MalformedIDError{Violation: ValidationError{
			Field:   field,
			Value:   raw,
			Message: fmt.Sprintf("%s is not a valid identity", field),
		}}
	}
	return id, nil
}
