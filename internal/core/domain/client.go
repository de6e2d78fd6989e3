package domain

// ClientConfig is the per-tenant credential and settings bundle used to
// construct a payment gateway client. Credentials are opaque strings issued
// by the processor's sandbox dashboard.
type ClientConfig struct {
	MerchantID  string `json:"merchant_id" validate:"required"`
	PublicKey   string `json:"public_key" validate:"required"`
	PrivateKey  string `json:"private_key" validate:"required"`
	DisplayName string `json:"display_name"`
	TopicName   string `json:"topic_name"`
}

// ClientDirectory maps a client id to its configuration. It is loaded once at
// startup and never mutated, so concurrent reads need no locking.
type ClientDirectory map[string]ClientConfig

// Lookup returns the configuration for the given client id. The second return
// value reports whether the id is known.
func (d ClientDirectory) Lookup(clientID string) (ClientConfig, bool) {
	cfg, ok := d[clientID]
	return cfg, ok
}
