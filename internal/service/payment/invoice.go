// Package payment builds Stars (XTR) invoices for checked-out orders. It
// only constructs payloads; the transport layer carries them to the payment
// provider.
package payment

import "fmt"

// Currency is the Stars currency code.
const Currency = "XTR"

// LabeledPrice is one line item on an invoice, in minor currency units.
type LabeledPrice struct {
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

// Invoice is a payment request for one order.
type Invoice struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Payload     string         `json:"payload"`
	Currency    string         `json:"currency"`
	Prices      []LabeledPrice `json:"prices"`
}

// NewInvoice builds the invoice for an order. The payload is the
// deterministic "order_<id>" reference the provider echoes back on payment.
func NewInvoice(orderID string, total int) Invoice {
	return Invoice{
		Title:       fmt.Sprintf("Order %s", orderID),
		Description: fmt.Sprintf("Payment of %d for your bouquet order", total),
		Payload:     "order_" + orderID,
		Currency:    Currency,
		Prices:      []LabeledPrice{{Label: "Bouquet", Amount: total * 100}},
	}
}
