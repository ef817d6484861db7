package wallets

import "github.com/goliatone/go-paygate/pkg/financial"

// NetellerType is the registry identifier of Neteller requests.
const NetellerType = "neteller"

// Neteller builds Neteller wallet sale requests.
type Neteller struct {
	*financial.Request
}

// NewNeteller creates an empty Neteller request.
func NewNeteller(opts ...financial.Option) (*Neteller, error) {
	req, err := financial.New(NetellerType, opts...)
	if err != nil {
		return nil, err
	}
	return &Neteller{Request: req}, nil
}

func (n *Neteller) SetTransactionID(id string) error { return n.Set("transactionId", id) }

func (n *Neteller) SetUsage(usage string) error { return n.Set("usage", usage) }

func (n *Neteller) SetRemoteIP(ip string) error { return n.Set("remoteIp", ip) }

func (n *Neteller) SetCurrency(code string) error { return n.Set("currency", code) }

// SetAmount takes the amount in minor currency units.
func (n *Neteller) SetAmount(minor int64) error { return n.Set("amount", minor) }

func (n *Neteller) SetCustomerEmail(email string) error { return n.Set("customerEmail", email) }

// SetCustomerAccount sets the Neteller account id or registered email.
func (n *Neteller) SetCustomerAccount(account string) error {
	return n.Set("customerAccount", account)
}

// SetAccountPassword sets the Neteller secure id.
func (n *Neteller) SetAccountPassword(secret string) error {
	return n.Set("accountPassword", secret)
}

// SetReturnURLs sets both redirect targets; they must be supplied together.
func (n *Neteller) SetReturnURLs(success, failure string) error {
	if err := n.Set("returnSuccessUrl", success); err != nil {
		return err
	}
	return n.Set("returnFailureUrl", failure)
}
