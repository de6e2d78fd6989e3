package application

import "context"

// PaymentGateway is the port for the external payment processor. A gateway is
// bound to one tenant's credentials; see GatewayLoader.
//
// A non-nil error means the call itself failed (network, auth, malformed
// response). A processor decline is not an error: it comes back as a
// SaleResult with Success=false and the processor's message.
type PaymentGateway interface {
	GenerateClientToken(ctx context.Context) (*ClientToken, error)
	Sale(ctx context.Context, req SaleRequest) (*SaleResult, error)
}

// GatewayLoader constructs a gateway bound to the credentials of the given
// client. Implementations build a fresh client per call so credential
// rotation takes effect immediately; nothing is cached across requests.
type GatewayLoader interface {
	Load(clientID string) (PaymentGateway, error)
}

// TopicResolver returns a handle to the named topic, creating it if it does
// not exist yet. An "already exists" conflict from the broker is success.
type TopicResolver interface {
	Resolve(ctx context.Context, topicName string) (Topic, error)
}

// Topic is a single publish destination. Publish returns the broker-assigned
// message ids.
type Topic interface {
	Name() string
	Publish(ctx context.Context, data []byte) ([]string, error)
}

// ClientToken is the client-side authorization token minted by the processor
// for the payment form.
type ClientToken struct {
	Token     string `json:"client_token"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

type SaleRequest struct {
	Amount              string   `json:"amount"`
	OrderID             string   `json:"order_id,omitempty"`
	Customer            Customer `json:"customer"`
	PaymentMethodNonce  string   `json:"payment_method_nonce"`
	SubmitForSettlement bool     `json:"submit_for_settlement"`
}

type Customer struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Company   string `json:"company,omitempty"`
}

type SaleResult struct {
	Success     bool         `json:"success"`
	Transaction *Transaction `json:"transaction,omitempty"`
	Message     string       `json:"message,omitempty"`
}

type Transaction struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}
