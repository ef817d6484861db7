// Package schema declares the field contracts of gateway request types. A
// RequestType is an ordered list of Field declarations, each carrying a Kind
// and a required flag, plus optional cross-field Constraints. RequestTypes are
// frozen on construction; accessors hand out copies so a registered schema can
// be shared by any number of goroutines without synchronisation.
package schema
