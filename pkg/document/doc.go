// Package document renders validated requests into WireDocuments: ordered
// field/value pairs with values formatted per field kind, ready for an encoder
// and a transport. Node order is the schema's declared order, so identical
// input always yields identical documents.
package document
