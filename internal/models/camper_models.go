package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Payment card issuers accepted for stored payment methods.
const (
	IssuerVisa       = "Visa"
	IssuerMasterCard = "MasterCard"
	IssuerAmex       = "Amex"
)

// NormalizeIssuer maps a case-insensitive issuer name onto its canonical
// form. "American Express" is accepted as Amex.
func NormalizeIssuer(issuer string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(issuer)) {
	case "visa":
		return IssuerVisa, true
	case "mastercard":
		return IssuerMasterCard, true
	case "amex", "american express":
		return IssuerAmex, true
	default:
		return "", false
	}
}

// Camper is the profile of a user who books campsites.
type Camper struct {
	ID          int64   `json:"id" db:"id"`
	UserID      int64   `json:"user_id" db:"user_id"`
	Age         *int    `json:"age" db:"age"`
	PhoneNumber *string `json:"phone_number" db:"phone_number"`
}

// PaymentMethod is a stored card. Card data is kept for display only and
// never leaves the server unmasked.
type PaymentMethod struct {
	ID             int64     `db:"id"`
	CamperID       int64     `db:"camper_id"`
	Issuer         string    `db:"issuer"`
	CardNumber     string    `db:"card_number"`
	CardholderName string    `db:"cardholder_name"`
	ExpirationDate Date      `db:"expiration_date"`
	CVV            string    `db:"cvv"`
	BillingName    *string   `db:"billing_name"`
	BillingAddress *string   `db:"billing_address"`
	IsDefault      bool      `db:"is_default"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// MaskedCardNumber shows only the last four digits.
func (p PaymentMethod) MaskedCardNumber() string {
	if len(p.CardNumber) < 4 {
		return "**** **** **** ****"
	}
	return "**** **** **** " + p.CardNumber[len(p.CardNumber)-4:]
}

// ExpirationDisplay renders the expiration as MM/YY.
func (p PaymentMethod) ExpirationDisplay() string {
	if p.ExpirationDate.IsZero() {
		return ""
	}
	return p.ExpirationDate.Format("01/06")
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID               int64     `json:"id"`
		Issuer           string    `json:"issuer"`
		MaskedCardNumber string    `json:"masked_card_number"`
		CardholderName   string    `json:"cardholder_name"`
		ExpirationDate   string    `json:"expiration_date"`
		BillingName      *string   `json:"billing_name"`
		BillingAddress   *string   `json:"billing_address"`
		IsDefault        bool      `json:"is_default"`
		CreatedAt        time.Time `json:"created_at"`
		UpdatedAt        time.Time `json:"updated_at"`
	}{
		ID:               p.ID,
		Issuer:           p.Issuer,
		MaskedCardNumber: p.MaskedCardNumber(),
		CardholderName:   p.CardholderName,
		ExpirationDate:   p.ExpirationDisplay(),
		BillingName:      p.BillingName,
		BillingAddress:   p.BillingAddress,
		IsDefault:        p.IsDefault,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	})
}

// CamperProfile is the composed view returned by the profile endpoint.
type CamperProfile struct {
	ID                 int64           `json:"id"`
	User               *User           `json:"user"`
	IsAdmin            bool            `json:"is_admin"`
	PaymentMethods     []PaymentMethod `json:"payment_methods"`
	ReservationHistory []Reservation   `json:"reservation_history"`
	Age                *int            `json:"age"`
	PhoneNumber        *string         `json:"phone_number"`
}
