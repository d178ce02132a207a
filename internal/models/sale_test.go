package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewSaleRejectsNegativeAmount(t *testing.T) {
	_, err := NewSale(time.Now(), []string{"Teclado"}, decimal.RequireFromString("-800"), PaymentCash)
	if err == nil {
		t.Fatal("expected error for negative sale amount")
	}
}

func TestNewRefundRejectsPositiveAmount(t *testing.T) {
	_, err := NewRefund(time.Now(), []string{"Teclado"}, decimal.RequireFromString("800"), PaymentCash)
	if err == nil {
		t.Fatal("expected error for positive refund amount")
	}
}

func TestConstructorsTagKind(t *testing.T) {
	sale, err := NewSale(time.Now(), []string{"Monitor"}, decimal.RequireFromString("3200"), PaymentCash)
	if err != nil {
		t.Fatalf("sale: %v", err)
	}
	if sale.Kind != KindSale {
		t.Fatalf("expected kind %q, got %q", KindSale, sale.Kind)
	}

	refund, err := NewRefund(time.Now(), []string{"Teclado"}, decimal.RequireFromString("-800"), PaymentCash)
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if refund.Kind != KindRefund {
		t.Fatalf("expected kind %q, got %q", KindRefund, refund.Kind)
	}
}

func TestNewSaleSnapshotsItems(t *testing.T) {
	items := []string{"Webcam", "Micrófono"}
	sale, err := NewSale(time.Now(), items, decimal.RequireFromString("2500"), PaymentTransfer)
	if err != nil {
		t.Fatalf("sale: %v", err)
	}

	items[0] = "mutated"
	if sale.Items[0] != "Webcam" {
		t.Fatal("sale items must be detached from the caller's slice")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	for _, valid := range []string{"cash", "card", "transfer", "check"} {
		if _, err := ParsePaymentMethod(valid); err != nil {
			t.Fatalf("method %q should parse: %v", valid, err)
		}
	}

	for _, invalid := range []string{"", "bitcoin", "CASH", "efectivo"} {
		if _, err := ParsePaymentMethod(invalid); err == nil {
			t.Fatalf("method %q should be rejected", invalid)
		}
	}
}

func TestDisplayNames(t *testing.T) {
	tests := map[PaymentMethod]string{
		PaymentCash:     "Efectivo",
		PaymentCard:     "Tarjeta",
		PaymentTransfer: "Transferencia",
		PaymentCheck:    "Cheque",
	}
	for method, want := range tests {
		if got := method.DisplayName(); got != want {
			t.Fatalf("%s: expected %q, got %q", method, want, got)
		}
	}
}
