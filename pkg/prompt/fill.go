package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-paygate/pkg/financial"
	"github.com/goliatone/go-paygate/pkg/request"
	"github.com/goliatone/go-paygate/pkg/schema"
)

const defaultAttempts = 3

// Option customises Fill.
type Option func(*filler)

// WithOptional also prompts for unset optional fields. An empty answer skips
// the field.
func WithOptional() Option {
	return func(f *filler) {
		f.optional = true
	}
}

// WithAttempts caps how often a rejected answer is asked again.
func WithAttempts(n int) Option {
	return func(f *filler) {
		if n > 0 {
			f.attempts = n
		}
	}
}

type filler struct {
	driver   Driver
	optional bool
	attempts int
}

// Fill prompts for every unset required field of req in schema order and
// stores the answers. Rejected answers are reported through Driver.Info and
// asked again.
func Fill(ctx context.Context, driver Driver, req *financial.Request, opts ...Option) error {
	if driver == nil || req == nil {
		return errors.New("prompt: driver and request are required")
	}
	f := &filler{driver: driver, attempts: defaultAttempts}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(f)
	}

	set := make(map[string]bool)
	for _, name := range req.SetFields() {
		set[name] = true
	}
	for _, field := range req.Schema().Fields() {
		if set[field.Name] {
			continue
		}
		if !field.Required && !f.optional {
			continue
		}
		if err := f.ask(ctx, req, field); err != nil {
			return err
		}
	}
	return nil
}

func (f *filler) ask(ctx context.Context, req *financial.Request, field schema.Field) error {
	scratch := request.New(req.Schema())
	check := func(answer string) error {
		if answer == "" && !field.Required {
			return nil
		}
		return scratch.Set(field.Name, answer)
	}

	var lastErr error
	for attempt := 0; attempt < f.attempts; attempt++ {
		answer, err := f.answer(ctx, field, check)
		if err != nil {
			return err
		}
		if answer == "" && !field.Required {
			return nil
		}
		lastErr = req.Set(field.Name, answer)
		if lastErr == nil {
			return nil
		}
		var invalid *request.InvalidFieldValueError
		if !errors.As(lastErr, &invalid) {
			return lastErr
		}
		if err := f.driver.Info(ctx, invalid.Error()); err != nil {
			return err
		}
	}
	return fmt.Errorf("prompt: %s: giving up after %d attempts: %w", field.Name, f.attempts, lastErr)
}

func (f *filler) answer(ctx context.Context, field schema.Field, check func(string) error) (string, error) {
	message := field.Name
	if field.Required {
		message += " *"
	}

	if field.Kind == schema.KindEnum {
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Values,
			DefaultIndex: -1,
			Help:         field.Description,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Values) {
			return "", fmt.Errorf("prompt: %s: selection %d out of range", field.Name, idx)
		}
		return field.Values[idx], nil
	}

	help := field.Kind.String()
	if field.Description != "" {
		help = fmt.Sprintf("%s (%s)", field.Description, field.Kind)
	}
	cfg := InputConfig{
		Message:   message,
		Help:      help,
		Validator: check,
	}
	var (
		answer string
		err    error
	)
	if secret(field) {
		answer, err = f.driver.Password(ctx, cfg)
	} else {
		answer, err = f.driver.Input(ctx, cfg)
	}
	return strings.TrimSpace(answer), err
}

func secret(field schema.Field) bool {
	name := strings.ToLower(field.Name)
	return strings.Contains(name, "password") || strings.Contains(name, "secret")
}
