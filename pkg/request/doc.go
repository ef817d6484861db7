// Package request holds the mutable bag of values for one request. Every write
// is checked against the schema: unknown fields and values that violate the
// declared kind are rejected immediately, before anything is stored.
package request
