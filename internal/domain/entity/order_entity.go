package entity

import (
	"time"
)

// Payment methods accepted at checkout. Payment details are stored with the
// order, never charged by this service.
const (
	PaymentCreditCard = "Credit card"
	PaymentDebitCard  = "Debit card"
	PaymentPaypal     = "Paypal"
)

// OrderItem is a line of an order snapshot. It references the product by ID
// only; the quantity and the order total are frozen at placement time.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// BillingAddress and PaymentInfo carry json tags because they are persisted
// as JSONB documents on the order row.
type BillingAddress struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address"`
	Address2     string `json:"address2,omitempty"`
	Apartment    string `json:"apartment,omitempty"`
	Country      string `json:"country"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	ShippingSame bool   `json:"shipping_same"`
}

type PaymentInfo struct {
	PaymentMethod string `json:"payment_method"`
	CardName      string `json:"card_name,omitempty"`
	CardNumber    string `json:"card_number,omitempty"`
	ExpiryDate    string `json:"expiry_date,omitempty"`
	CVV           string `json:"cvv,omitempty"`
}

// Order is an immutable purchase snapshot. IsPaid and IsDelivered are flags
// driven by an external fulfillment process, not by this service.
type Order struct {
	ID             string
	UserID         string
	Items          []OrderItem
	TotalPrice     float64
	BillingAddress BillingAddress
	PaymentInfo    PaymentInfo
	IsPaid         bool
	IsDelivered    bool
	CreatedAt      time.Time
}
