package payment

import "testing"

func TestNewInvoice(t *testing.T) {
	inv := NewInvoice("ord-42", 2400)

	if inv.Currency != "XTR" {
		t.Fatalf("expected XTR, got %s", inv.Currency)
	}
	if inv.Payload != "order_ord-42" {
		t.Fatalf("expected the order reference in the payload, got %s", inv.Payload)
	}
	if len(inv.Prices) != 1 {
		t.Fatalf("expected one price line, got %d", len(inv.Prices))
	}
	if inv.Prices[0].Amount != 240000 {
		t.Fatalf("expected the amount in minor units, got %d", inv.Prices[0].Amount)
	}
}
