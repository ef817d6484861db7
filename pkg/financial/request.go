package financial

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-paygate/pkg/document"
	"github.com/goliatone/go-paygate/pkg/registry"
	"github.com/goliatone/go-paygate/pkg/request"
	"github.com/goliatone/go-paygate/pkg/schema"
	"github.com/goliatone/go-paygate/pkg/validation"
)

// ErrFinalized is returned by setters once a request produced its document.
var ErrFinalized = errors.New("financial: request already produced its document")

// State tracks the request lifecycle.
type State int

const (
	StateEmpty State = iota
	StatePopulating
	StateValidated
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulating:
		return "populating"
	case StateValidated:
		return "validated"
	case StateRejected:
		return "rejected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Option customises a Request.
type Option func(*config)

type config struct {
	registry *registry.Registry
	logger   *zap.Logger
}

// WithRegistry resolves request types from reg instead of registry.Default().
func WithRegistry(reg *registry.Registry) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// WithLogger logs build attempts at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = registry.Default()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}

// Request is the caller-facing handle for one financial request. Like the
// instance it wraps, it belongs to a single goroutine.
type Request struct {
	inst   *request.Instance
	state  State
	doc    document.WireDocument
	issues []validation.Issue
	logger *zap.Logger
}

// New creates a request for the registered type id.
func New(id string, opts ...Option) (*Request, error) {
	cfg := newConfig(opts)
	rt, err := cfg.registry.SchemaFor(id)
	if err != nil {
		return nil, err
	}
	return newRequest(rt, cfg.logger), nil
}

// NewFromSchema creates a request bound directly to rt, bypassing any
// registry.
func NewFromSchema(rt *schema.RequestType, opts ...Option) (*Request, error) {
	if rt == nil {
		return nil, errors.New("financial: request type is required")
	}
	cfg := newConfig(opts)
	return newRequest(rt, cfg.logger), nil
}

func newRequest(rt *schema.RequestType, logger *zap.Logger) *Request {
	return &Request{
		inst:   request.New(rt),
		state:  StateEmpty,
		logger: logger.With(zap.String("request_type", rt.ID())),
	}
}

// Schema returns the request type.
func (r *Request) Schema() *schema.RequestType { return r.inst.Schema() }

// State returns the current lifecycle state.
func (r *Request) State() State { return r.state }

// Issues returns the findings of the last rejected Document call.
func (r *Request) Issues() []validation.Issue {
	return append([]validation.Issue(nil), r.issues...)
}

// Set validates and stores value for field. Kind errors surface here rather
// than at Document time.
func (r *Request) Set(field string, value any) error {
	if err := r.checkWritable(field); err != nil {
		return err
	}
	if err := r.inst.Set(field, value); err != nil {
		return err
	}
	r.state = StatePopulating
	return nil
}

// Unset clears a field.
func (r *Request) Unset(field string) error {
	if err := r.checkWritable(field); err != nil {
		return err
	}
	if err := r.inst.Unset(field); err != nil {
		return err
	}
	if r.inst.Len() == 0 {
		r.state = StateEmpty
	} else {
		r.state = StatePopulating
	}
	return nil
}

// checkWritable reports undeclared fields ahead of ErrFinalized.
func (r *Request) checkWritable(field string) error {
	if r.state != StateValidated {
		return nil
	}
	if _, ok := r.inst.Schema().Field(field); !ok {
		return &request.UnknownFieldError{RequestType: r.inst.Schema().ID(), Field: field}
	}
	return ErrFinalized
}

// Get returns the rendered value of field.
func (r *Request) Get(field string) (string, bool) {
	return r.inst.Rendered(field)
}

// SetFields lists the fields holding a value, in schema order.
func (r *Request) SetFields() []string {
	return r.inst.SetFields()
}

// Document validates the request and builds its wire document. A rejected
// request may be corrected and retried; a validated one returns the same
// document on every call.
func (r *Request) Document() (document.WireDocument, error) {
	if r.state == StateValidated {
		return r.doc, nil
	}

	result := validation.Validate(r.inst)
	if err := result.Err(); err != nil {
		r.state = StateRejected
		r.issues = result.Issues
		r.logger.Debug("request rejected",
			zap.Int("issues", len(result.Issues)),
			zap.Strings("missing", result.Missing()),
			zap.Error(err),
		)
		return document.WireDocument{}, err
	}

	doc, err := document.Build(r.inst, result)
	if err != nil {
		r.state = StateRejected
		return document.WireDocument{}, err
	}
	r.doc = doc
	r.issues = nil
	r.state = StateValidated
	r.logger.Debug("request validated", zap.Int("nodes", doc.Len()))
	return doc, nil
}
