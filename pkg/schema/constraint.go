package schema

import (
	"fmt"
	"strings"
)

// Values is the read-only view of a populated request that constraints are
// evaluated against. request.Instance satisfies it.
type Values interface {
	IsSet(field string) bool
	Rendered(field string) (string, bool)
}

// Constraint is a cross-field predicate declared on a request type. The
// validator evaluates every constraint after required-field presence checks.
type Constraint interface {
	// Description is surfaced to callers when the constraint is violated.
	Description() string
	// Satisfied reports whether the populated values honour the constraint.
	Satisfied(values Values) bool
	// Fields lists every field the constraint references so schemas can reject
	// predicates over unknown fields.
	Fields() []string
}

// Requires demands that every field in Needs is set whenever Field is set.
type Requires struct {
	Field string
	Needs []string
}

func (c Requires) Description() string {
	return fmt.Sprintf("%s requires %s", c.Field, strings.Join(c.Needs, ", "))
}

func (c Requires) Satisfied(values Values) bool {
	if !values.IsSet(c.Field) {
		return true
	}
	return allSet(values, c.Needs)
}

func (c Requires) Fields() []string {
	return append([]string{c.Field}, c.Needs...)
}

// Together demands that either all or none of Members are set.
type Together struct {
	Members []string
}

func (c Together) Description() string {
	return fmt.Sprintf("%s must be set together", strings.Join(c.Members, ", "))
}

func (c Together) Satisfied(values Values) bool {
	set := 0
	for _, name := range c.Members {
		if values.IsSet(name) {
			set++
		}
	}
	return set == 0 || set == len(c.Members)
}

func (c Together) Fields() []string {
	return append([]string(nil), c.Members...)
}

// When demands that every field in Require is set whenever Field renders to
// Equals (compared case-insensitively).
type When struct {
	Field   string
	Equals  string
	Require []string
}

func (c When) Description() string {
	return fmt.Sprintf("%s=%s requires %s", c.Field, c.Equals, strings.Join(c.Require, ", "))
}

func (c When) Satisfied(values Values) bool {
	rendered, ok := values.Rendered(c.Field)
	if !ok || !strings.EqualFold(rendered, c.Equals) {
		return true
	}
	return allSet(values, c.Require)
}

func (c When) Fields() []string {
	return append([]string{c.Field}, c.Require...)
}

// Func adapts a function into a Constraint for predicates the declarative
// forms cannot express.
type Func struct {
	Desc   string
	Refs   []string
	Verify func(Values) bool
}

func (c Func) Description() string {
	return c.Desc
}

func (c Func) Satisfied(values Values) bool {
	if c.Verify == nil {
		return true
	}
	return c.Verify(values)
}

func (c Func) Fields() []string {
	return append([]string(nil), c.Refs...)
}

func allSet(values Values, names []string) bool {
	for _, name := range names {
		if !values.IsSet(name) {
			return false
		}
	}
	return true
}
