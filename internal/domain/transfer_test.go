package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gotransfers/internal/domain"
)

func TestNewTransferEvent(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	transfer := &domain.Transfer{
		ID:          "5f1c2e52-9d6a-4c73-8f57-7f2a3d9be111",
		AccountFrom: "40817810000000000001",
		AccountTo:   "40817810000000000002",
		Amount:      decimal.RequireFromString("100"),
		Currency:    domain.CurrencyRUB,
		CreatedAt:   createdAt,
	}

	event := domain.NewTransferEvent(transfer, "7", "12")

	if event.TransferID != transfer.ID {
		t.Fatalf("expected transfer id %s, got %s", transfer.ID, event.TransferID)
	}
	if event.ClientIDFrom != "7" || event.ClientIDTo != "12" {
		t.Fatalf("expected owner ids to be filled in, got %s/%s", event.ClientIDFrom, event.ClientIDTo)
	}
	if event.Amount != "100.00" {
		t.Fatalf("expected two-decimal amount, got %s", event.Amount)
	}
	if event.CreatedAt != createdAt.Format(time.RFC3339Nano) {
		t.Fatalf("unexpected created_at: %s", event.CreatedAt)
	}
}

func TestValidCurrency(t *testing.T) {
	for _, code := range []string{"810", "840", "933"} {
		if !domain.ValidCurrency(code) {
			t.Fatalf("expected %s to be supported", code)
		}
	}

	for _, code := range []string{"978", "RUB", ""} {
		if domain.ValidCurrency(code) {
			t.Fatalf("expected %s to be rejected", code)
		}
	}
}
