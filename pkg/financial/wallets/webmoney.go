package wallets

import (
	"strconv"

	"github.com/goliatone/go-paygate/pkg/financial"
)

// WebMoneyType is the registry identifier of WebMoney requests.
const WebMoneyType = "webmoney"

// WebMoney builds WebMoney sale and payout requests.
type WebMoney struct {
	*financial.Request
}

// NewWebMoney creates an empty WebMoney request.
func NewWebMoney(opts ...financial.Option) (*WebMoney, error) {
	req, err := financial.New(WebMoneyType, opts...)
	if err != nil {
		return nil, err
	}
	return &WebMoney{Request: req}, nil
}

func (w *WebMoney) SetTransactionID(id string) error { return w.Set("transactionId", id) }

func (w *WebMoney) SetUsage(usage string) error { return w.Set("usage", usage) }

func (w *WebMoney) SetRemoteIP(ip string) error { return w.Set("remoteIp", ip) }

// SetCurrency takes an ISO-4217 alphabetic code such as "USD".
func (w *WebMoney) SetCurrency(code string) error { return w.Set("currency", code) }

// SetAmount takes the amount in minor currency units (cents for USD).
func (w *WebMoney) SetAmount(minor int64) error { return w.Set("amount", minor) }

func (w *WebMoney) SetCustomerEmail(email string) error { return w.Set("customerEmail", email) }

func (w *WebMoney) SetReturnSuccessURL(url string) error { return w.Set("returnSuccessUrl", url) }

func (w *WebMoney) SetReturnFailureURL(url string) error { return w.Set("returnFailureUrl", url) }

// SetIsPayout marks the request as a payout. Payouts require
// SetCustomerAccountID.
func (w *WebMoney) SetIsPayout(payout bool) error {
	return w.Set("isPayout", strconv.FormatBool(payout))
}

// SetCustomerAccountID sets the WebMoney purse receiving a payout.
func (w *WebMoney) SetCustomerAccountID(id string) error {
	return w.Set("customerAccountId", id)
}
