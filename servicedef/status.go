package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Supabase IntegrationStatus `json:"supabase"`
	Stripe   IntegrationStatus `json:"stripe"`
	Web3     Web3Status        `json:"web3"`
	Demo     bool              `json:"demo"`
}

type IntegrationStatus struct {
	Configured bool `json:"configured"`
}

type Web3Status struct {
	WalletConnectConfigured bool          `json:"walletConnectConfigured"`
	NovaTokenConfigured     bool          `json:"novaTokenConfigured"`
	NFTContractConfigured   bool          `json:"nftContractConfigured"`
	ChainID                 ldvalue.Value `json:"chainId"`
	NovaAddress             string        `json:"novaAddress,omitempty"`
	NFTAddress              string        `json:"nftAddress,omitempty"`
}

// CheckoutParams is the body of POST /stripe/checkout.
type CheckoutParams struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	ProductName string  `json:"productName"`
	QRSlug      string  `json:"qrSlug,omitempty"`
	SuccessURL  string  `json:"successUrl,omitempty"`
	CancelURL   string  `json:"cancelUrl,omitempty"`
}

// CheckoutResponse covers both outcomes of POST /stripe/checkout: a session when payments are
// configured, or an error with Configured set to false when they are not.
type CheckoutResponse struct {
	SessionID  string        `json:"sessionId,omitempty"`
	URL        string        `json:"url,omitempty"`
	Error      string        `json:"error,omitempty"`
	Configured ldvalue.Value `json:"configured"`
}
