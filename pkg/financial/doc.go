// Package financial exposes the request facade callers use to build payment
// gateway requests. A Request wraps a typed instance, runs validation when the
// document is requested and caches the result once it passes.
//
// Instrument-specific wrappers with named setters live in the wallets and
// reference subpackages; they are thin layers over the generic Set.
package financial
