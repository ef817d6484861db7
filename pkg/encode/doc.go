// Package encode defines the Encoder contract and a name-keyed Registry of
// encoders. Concrete encoders live under pkg/encoders; DefaultRegistry wires
// the built-in ones.
package encode
