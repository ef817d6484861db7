// Package gateway connects request facades to a payment gateway through a
// caller supplied Transport. The client builds the document, encodes it with a
// registered encoder, hands the payload to the transport and optionally
// parses the response. No network transport ships with the package.
package gateway
