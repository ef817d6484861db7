package request

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-paygate/pkg/schema"
)

var (
	// ErrUnknownField matches writes to a field the schema does not declare.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidFieldValue matches values rejected by their field kind.
	ErrInvalidFieldValue = errors.New("invalid field value")
)

// UnknownFieldError names the rejected field and the request type.
type UnknownFieldError struct {
	RequestType string
	Field       string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("request: unknown field %q for request type %q", e.Field, e.RequestType)
}

func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// InvalidFieldValueError reports a kind-level rejection.
type InvalidFieldValueError struct {
	Field  string
	Kind   schema.Kind
	Reason string
}

func (e *InvalidFieldValueError) Error() string {
	return fmt.Sprintf("request: invalid value for %s (%s): %s", e.Field, e.Kind, e.Reason)
}

func (e *InvalidFieldValueError) Is(target error) bool {
	return target == ErrInvalidFieldValue
}
