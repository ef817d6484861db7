package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-paygate/pkg/request"
)

// Issue codes.
const (
	CodeMissingRequired = "missing_required"
	CodeConstraint      = "constraint"
)

var (
	// ErrMissingRequiredFields matches results with absent required fields.
	ErrMissingRequiredFields = errors.New("missing required fields")
	// ErrCrossFieldConstraint matches results with a violated constraint.
	ErrCrossFieldConstraint = errors.New("cross-field constraint violated")
)

// Issue is a single violation. Field is empty for constraint violations.
type Issue struct {
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
	Code   string `json:"code"`
}

// Result is the verdict for one instance at one revision.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`

	subject  *request.Instance
	revision uint64
}

// Validate checks every required field for presence, collecting all missing
// ones in schema order, then evaluates each declared constraint. An instance
// with no fields set is never valid, even when its schema has no required
// fields. It does not modify the instance.
func Validate(inst *request.Instance) Result {
	result := Result{Valid: true}
	if inst == nil {
		result.Valid = false
		result.Issues = []Issue{{Reason: "request instance is required", Code: CodeMissingRequired}}
		return result
	}
	result.subject = inst
	result.revision = inst.Revision()

	rt := inst.Schema()
	if inst.Len() == 0 && len(rt.Required()) == 0 {
		result.Valid = false
		result.Issues = []Issue{{Reason: "no fields are set", Code: CodeMissingRequired}}
		return result
	}
	for _, name := range rt.Required() {
		if !inst.IsSet(name) {
			result.Issues = append(result.Issues, Issue{
				Field:  name,
				Reason: "is required",
				Code:   CodeMissingRequired,
			})
		}
	}
	for _, constraint := range rt.Constraints() {
		if !constraint.Satisfied(inst) {
			result.Issues = append(result.Issues, Issue{
				Reason: constraint.Description(),
				Code:   CodeConstraint,
			})
		}
	}

	result.Valid = len(result.Issues) == 0
	return result
}

// Covers reports whether the result was computed for inst at its current
// revision.
func (r Result) Covers(inst *request.Instance) bool {
	return inst != nil && r.subject == inst && r.revision == inst.Revision()
}

// Missing lists the missing required fields in schema order.
func (r Result) Missing() []string {
	var out []string
	for _, issue := range r.Issues {
		if issue.Code == CodeMissingRequired && issue.Field != "" {
			out = append(out, issue.Field)
		}
	}
	return out
}

// Err converts an invalid result into an error; valid results return nil.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	err := &Error{}
	if missing := r.Missing(); len(missing) > 0 {
		err.errs = append(err.errs, &MissingRequiredFieldsError{Fields: missing})
	}
	for _, issue := range r.Issues {
		if issue.Code == CodeConstraint {
			err.errs = append(err.errs, &ConstraintViolationError{Description: issue.Reason})
		}
	}
	if len(err.errs) == 0 {
		err.errs = append(err.errs, &MissingRequiredFieldsError{})
	}
	return err
}

// Error aggregates every violation found by Validate.
type Error struct {
	errs []error
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes the individual violations to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return append([]error(nil), e.errs...)
}

// MissingRequiredFieldsError lists every absent required field.
type MissingRequiredFieldsError struct {
	Fields []string
}

func (e *MissingRequiredFieldsError) Error() string {
	if len(e.Fields) == 0 {
		return "validation: no fields are set"
	}
	return fmt.Sprintf("validation: missing required fields: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingRequiredFieldsError) Is(target error) bool {
	return target == ErrMissingRequiredFields
}

// ConstraintViolationError describes a failed cross-field constraint.
type ConstraintViolationError struct {
	Description string
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("validation: constraint violated: %s", e.Description)
}

func (e *ConstraintViolationError) Is(target error) bool {
	return target == ErrCrossFieldConstraint
}
