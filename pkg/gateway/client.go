package gateway

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-paygate/pkg/document"
	"github.com/goliatone/go-paygate/pkg/encode"
)

// Payload is an encoded request ready for a transport.
type Payload struct {
	RequestType     string
	TransactionType string
	Encoder         string
	ContentType     string
	Body            []byte
}

// Transport delivers payloads to a gateway and returns the raw response body.
type Transport interface {
	Send(ctx context.Context, payload Payload) ([]byte, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, payload Payload) ([]byte, error)

func (f TransportFunc) Send(ctx context.Context, payload Payload) ([]byte, error) {
	return f(ctx, payload)
}

// ResponseParser turns a raw gateway response into a caller-defined value.
type ResponseParser interface {
	Parse(ctx context.Context, raw []byte) (any, error)
}

// ParserFunc adapts a function to ResponseParser.
type ParserFunc func(ctx context.Context, raw []byte) (any, error)

func (f ParserFunc) Parse(ctx context.Context, raw []byte) (any, error) {
	return f(ctx, raw)
}

// Documenter is satisfied by financial.Request and every instrument facade.
type Documenter interface {
	Document() (document.WireDocument, error)
}

// Result is the outcome of Execute.
type Result struct {
	Payload Payload
	Raw     []byte
	// Response is nil when the client has no parser.
	Response any
}

// Option customises the client.
type Option func(*Client)

// WithEncoders replaces the encoder registry (default encode.DefaultRegistry()).
func WithEncoders(reg *encode.Registry) Option {
	return func(c *Client) {
		c.encoders = reg
	}
}

// WithDefaultEncoder picks the encoder used when Execute gets an empty name.
func WithDefaultEncoder(name string) Option {
	return func(c *Client) {
		c.defaultEncoder = name
	}
}

// WithParser installs a response parser.
func WithParser(parser ResponseParser) Option {
	return func(c *Client) {
		c.parser = parser
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client runs the document → encode → send → parse sequence.
type Client struct {
	transport      Transport
	parser         ResponseParser
	encoders       *encode.Registry
	defaultEncoder string
	logger         *zap.Logger
}

// New constructs a Client. Missing dependencies fall back to the built-in
// encoders and a no-op logger.
func New(transport Transport, options ...Option) (*Client, error) {
	if transport == nil {
		return nil, errors.New("gateway: transport is required")
	}
	c := &Client{
		transport:      transport,
		defaultEncoder: encode.DefaultEncoder,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.encoders == nil {
		c.encoders = encode.DefaultRegistry()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

// Encode builds the request document and encodes it without sending.
func (c *Client) Encode(ctx context.Context, req Documenter, encoderName string) (Payload, error) {
	if ctx == nil {
		return Payload{}, errors.New("gateway: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Payload{}, err
	}
	if req == nil {
		return Payload{}, errors.New("gateway: request is required")
	}

	doc, err := req.Document()
	if err != nil {
		return Payload{}, fmt.Errorf("gateway: build document: %w", err)
	}

	name := encoderName
	if name == "" {
		name = c.defaultEncoder
	}
	encoder, err := c.encoders.Get(name)
	if err != nil {
		return Payload{}, fmt.Errorf("gateway: %w", err)
	}
	body, err := encoder.Encode(doc)
	if err != nil {
		return Payload{}, fmt.Errorf("gateway: encode %s: %w", name, err)
	}

	return Payload{
		RequestType:     doc.RequestType(),
		TransactionType: doc.TransactionType(),
		Encoder:         encoder.Name(),
		ContentType:     encoder.ContentType(),
		Body:            body,
	}, nil
}

// Execute encodes req, sends it and parses the response. Requests that fail
// validation never reach the transport.
func (c *Client) Execute(ctx context.Context, req Documenter, encoderName string) (Result, error) {
	payload, err := c.Encode(ctx, req, encoderName)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	logger := c.logger.With(
		zap.String("request_type", payload.RequestType),
		zap.String("encoder", payload.Encoder),
	)
	logger.Debug("sending request", zap.Int("bytes", len(payload.Body)))

	raw, err := c.transport.Send(ctx, payload)
	if err != nil {
		logger.Warn("transport failed", zap.Error(err))
		return Result{Payload: payload}, fmt.Errorf("gateway: send: %w", err)
	}

	result := Result{Payload: payload, Raw: raw}
	if c.parser == nil {
		return result, nil
	}
	parsed, err := c.parser.Parse(ctx, raw)
	if err != nil {
		return result, fmt.Errorf("gateway: parse response: %w", err)
	}
	result.Response = parsed
	return result, nil
}
