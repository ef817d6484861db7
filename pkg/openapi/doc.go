// Package openapi exports registered request types as OpenAPI 3 component
// schemas using kin-openapi. Each request type becomes an object schema whose
// properties carry the field kind and wire node name as x-paygate
// extensions, so gateway clients in other stacks can reuse the definitions.
package openapi
