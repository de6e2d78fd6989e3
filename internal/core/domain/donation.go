package domain

import "encoding/json"

// Amount is the raw donation amount exactly as received. Donation forms send
// it as either a JSON number or a quoted string depending on the widget
// version, so both decode into the raw text and validation does the parsing.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(b)
	return nil
}

func (a Amount) String() string {
	return string(a)
}

// DonationRequest is the decoded body of a donation submission. It lives for
// the duration of a single request and is never persisted.
type DonationRequest struct {
	Amount    Amount `json:"amount"`
	OrderID   string `json:"orderId"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	ClientID  string `json:"clientId"`
	Nonce     string `json:"payment_method_nonce"`
}
