package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
)

var validate = validator.New()

// Validator holds the read-only inputs the request predicates need: the
// client directory and the configured donation amount bounds.
type Validator struct {
	clients       ClientDirectory
	minAmount     float64
	maxAmount     float64
	amountMessage string
}

func NewValidator(clients ClientDirectory, minAmount, maxAmount float64) *Validator {
	return &Validator{
		clients:   clients,
		minAmount: minAmount,
		maxAmount: maxAmount,
		amountMessage: "Invalid amount - please provide an amount greater than " +
			strconv.FormatFloat(minAmount, 'f', -1, 64) + ". ",
	}
}

// IsValidClient reports whether the client id is non-empty and present in the
// directory.
func (v *Validator) IsValidClient(clientID string) bool {
	if clientID == "" {
		return false
	}
	_, ok := v.clients.Lookup(clientID)
	return ok
}

// IsAmountValid reports whether the raw amount parses to a non-zero finite
// number within the configured bounds. Unparseable input is invalid, never an
// error. ParseFloat accepts "NaN", which would slip past every range
// comparison, so it needs its own guard.
func (v *Validator) IsAmountValid(amount string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || math.IsNaN(f) || f == 0 {
		return false
	}
	if f < v.minAmount || f > v.maxAmount {
		return false
	}
	return true
}

// IsEmailValid reports whether the string is a syntactically valid address.
func (v *Validator) IsEmailValid(email string) bool {
	if email == "" {
		return false
	}
	return validate.Var(email, "email") == nil
}

// ValidateDonation runs every donation check and accumulates the message for
// each failing one, so the caller sees all violations at once. An empty
// return means the request is valid.
func (v *Validator) ValidateDonation(req *DonationRequest) string {
	var b strings.Builder
	if !v.IsValidClient(req.ClientID) {
		b.WriteString("Please provide a clientId. ")
	}
	if !v.IsAmountValid(req.Amount.String()) {
		b.WriteString(v.amountMessage)
	}
	if req.Nonce == "" {
		b.WriteString("Nonce field cannot be empty. ")
	}
	if !v.IsEmailValid(req.Email) {
		b.WriteString("Please ensure you provide a valid email address. ")
	}
	return b.String()
}
