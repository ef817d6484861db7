// Package reference provides facades for requests that act on a previous
// transaction, identified by its unique id.
package reference

import "github.com/goliatone/go-paygate/pkg/financial"

// RefundType is the registry identifier of refund requests.
const RefundType = "refund"

// Refund returns funds of a captured transaction.
type Refund struct {
	*financial.Request
}

// NewRefund creates an empty refund request.
func NewRefund(opts ...financial.Option) (*Refund, error) {
	req, err := financial.New(RefundType, opts...)
	if err != nil {
		return nil, err
	}
	return &Refund{Request: req}, nil
}

func (r *Refund) SetTransactionID(id string) error { return r.Set("transactionId", id) }

func (r *Refund) SetUsage(usage string) error { return r.Set("usage", usage) }

func (r *Refund) SetRemoteIP(ip string) error { return r.Set("remoteIp", ip) }

// SetReferenceID sets the unique id of the transaction being refunded.
func (r *Refund) SetReferenceID(id string) error { return r.Set("referenceId", id) }

// SetAmount takes the refunded amount in minor currency units.
func (r *Refund) SetAmount(minor int64) error { return r.Set("amount", minor) }

func (r *Refund) SetCurrency(code string) error { return r.Set("currency", code) }
