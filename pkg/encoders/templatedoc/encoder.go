// Package templatedoc encodes wire documents through a caller supplied
// go-template (pongo2) template, for gateways whose payload shape the built-in
// encoders do not cover.
//
// Templates see these variables:
//
//	root              document root element name
//	request_type      registry id of the request
//	transaction_type  gateway transaction type
//	nodes             list of {name, field, value} in document order
//	values            map of field name to rendered value
package templatedoc

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/flosch/pongo2/v6"
	gotemplate "github.com/goliatone/go-template"

	"github.com/goliatone/go-paygate/pkg/document"
)

const (
	defaultName      = "template"
	defaultExtension = ".tpl"
)

// emptyFS backs encoders built from an inline source; the engine requires a
// template filesystem even when nothing is loaded from it.
var emptyFS embed.FS

// renderer is the subset of the go-template engine the encoder drives.
type renderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}

// Option configures the encoder.
type Option func(*config)

type config struct {
	name        string
	contentType string
	globals     map[string]any
	funcs       map[string]any
}

// WithName sets the registry name. Defaults to "template".
func WithName(name string) Option {
	return func(c *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			c.name = trimmed
		}
	}
}

// WithContentType sets the payload content type. Defaults to text/plain.
func WithContentType(contentType string) Option {
	return func(c *config) {
		if trimmed := strings.TrimSpace(contentType); trimmed != "" {
			c.contentType = trimmed
		}
	}
}

// WithGlobals adds values available to the template alongside the document.
// Document variables win on conflicting keys.
func WithGlobals(globals map[string]any) Option {
	return func(c *config) {
		for key, value := range globals {
			if trimmed := strings.TrimSpace(key); trimmed != "" {
				c.globals[trimmed] = value
			}
		}
	}
}

// WithFuncs registers helper functions callable from the template, e.g.
// {{ pad(values.amount) }}.
func WithFuncs(funcs map[string]any) Option {
	return func(c *config) {
		for name, fn := range funcs {
			if trimmed := strings.TrimSpace(name); trimmed != "" && fn != nil {
				c.funcs[trimmed] = fn
			}
		}
	}
}

// Encoder renders documents through a go-template engine. It is safe for
// concurrent use.
type Encoder struct {
	name        string
	contentType string
	engine      renderer
	source      string
	template    string
}

// New builds an encoder around an inline template source. The source is
// parsed eagerly so syntax errors surface here rather than at Encode.
func New(source string, opts ...Option) (*Encoder, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("templatedoc: template source is required")
	}
	if _, err := pongo2.FromString(source); err != nil {
		return nil, fmt.Errorf("templatedoc: parse template: %w", err)
	}
	cfg := newConfig(opts)
	engine, err := newEngine(cfg, emptyFS, defaultExtension)
	if err != nil {
		return nil, err
	}
	return &Encoder{
		name:        cfg.name,
		contentType: cfg.contentType,
		engine:      engine,
		source:      source,
	}, nil
}

// Load builds an encoder for the template at name inside fsys. Includes and
// extends resolve against the same filesystem. The file extension of name
// becomes the engine's template extension.
func Load(fsys fs.FS, name string, opts ...Option) (*Encoder, error) {
	if fsys == nil {
		return nil, errors.New("templatedoc: template filesystem is required")
	}
	ext := path.Ext(name)
	if ext == "" {
		return nil, fmt.Errorf("templatedoc: template %q needs a file extension", name)
	}
	if _, err := fs.Stat(fsys, name); err != nil {
		return nil, fmt.Errorf("templatedoc: load template %q: %w", name, err)
	}
	cfg := newConfig(opts)
	engine, err := newEngine(cfg, fsys, ext)
	if err != nil {
		return nil, err
	}
	return &Encoder{
		name:        cfg.name,
		contentType: cfg.contentType,
		engine:      engine,
		template:    strings.TrimSuffix(name, ext),
	}, nil
}

func newConfig(opts []Option) config {
	cfg := config{
		name:        defaultName,
		contentType: "text/plain; charset=utf-8",
		globals:     map[string]any{},
		funcs:       map[string]any{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

func newEngine(cfg config, fsys fs.FS, ext string) (renderer, error) {
	options := []gotemplate.Option{
		gotemplate.WithFS(fsys),
		gotemplate.WithExtension(ext),
	}
	if len(cfg.globals) > 0 {
		options = append(options, gotemplate.WithGlobalData(cfg.globals))
	}
	if len(cfg.funcs) > 0 {
		options = append(options, gotemplate.WithTemplateFunc(cfg.funcs))
	}
	engine, err := gotemplate.NewRenderer(options...)
	if err != nil {
		return nil, fmt.Errorf("templatedoc: create engine: %w", err)
	}
	return engine, nil
}

func (e *Encoder) Name() string { return e.name }

func (e *Encoder) ContentType() string { return e.contentType }

// Encode executes the template against doc.
func (e *Encoder) Encode(doc document.WireDocument) ([]byte, error) {
	if e == nil || e.engine == nil {
		return nil, errors.New("templatedoc: encoder is not initialised")
	}

	var (
		rendered string
		err      error
	)
	if e.source != "" {
		rendered, err = e.engine.RenderString(e.source, templateData(doc))
	} else {
		rendered, err = e.engine.RenderTemplate(e.template, templateData(doc))
	}
	if err != nil {
		return nil, fmt.Errorf("templatedoc: execute %s: %w", e.name, err)
	}
	return []byte(rendered), nil
}

func templateData(doc document.WireDocument) map[string]any {
	nodes := doc.Nodes()
	list := make([]any, len(nodes))
	values := make(map[string]any, len(nodes))
	for i, node := range nodes {
		list[i] = map[string]any{
			"name":  node.Name,
			"field": node.Field,
			"value": node.Value,
		}
		values[node.Field] = node.Value
	}
	return map[string]any{
		"root":             doc.Root(),
		"request_type":     doc.RequestType(),
		"transaction_type": doc.TransactionType(),
		"nodes":            list,
		"values":           values,
	}
}
