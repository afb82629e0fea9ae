package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gotransfers/internal/domain"
)

func TestCheckNotSelfTransfer(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{name: "different accounts", from: "40817810000000000001", to: "40817810000000000002"},
		{name: "same account", from: "40817810000000000001", to: "40817810000000000001", wantErr: domain.ErrSameAccount},
		{name: "comparison is case sensitive", from: "abc", to: "ABC"},
		{name: "no whitespace normalization", from: "123", to: "123 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.CheckNotSelfTransfer(tt.from, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCheckAccountOpen(t *testing.T) {
	if err := domain.CheckAccountOpen(&domain.AccountSnapshot{Closed: false}); err != nil {
		t.Fatalf("unexpected error for open account: %v", err)
	}

	err := domain.CheckAccountOpen(&domain.AccountSnapshot{Closed: true})
	if !errors.Is(err, domain.ErrAccountClosed) {
		t.Fatalf("expected ErrAccountClosed, got %v", err)
	}
}

func TestCheckCurrencyMatch(t *testing.T) {
	if err := domain.CheckCurrencyMatch("810", "810"); err != nil {
		t.Fatalf("unexpected error for matching currencies: %v", err)
	}

	err := domain.CheckCurrencyMatch("810", "840")
	if !errors.Is(err, domain.ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestCheckSufficientFunds(t *testing.T) {
	acc := &domain.AccountSnapshot{Balance: decimal.RequireFromString("500.00")}

	if err := domain.CheckSufficientFunds(acc, decimal.RequireFromString("500.00")); err != nil {
		t.Fatalf("amount equal to balance should pass, got %v", err)
	}

	err := domain.CheckSufficientFunds(acc, decimal.RequireFromString("500.01"))
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestCheckOwnerActive(t *testing.T) {
	tests := []struct {
		name    string
		user    *domain.User
		wantErr error
	}{
		{name: "active user", user: &domain.User{ID: "7", Active: true}},
		{name: "nil user", user: nil, wantErr: domain.ErrUserNotFound},
		{name: "inactive user", user: &domain.User{ID: "7"}, wantErr: domain.ErrUserNotFound},
		{name: "deleted user", user: &domain.User{ID: "7", Active: true, Deleted: true}, wantErr: domain.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.CheckOwnerActive(tt.user)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMainAccountNumber_FirstMatchWins(t *testing.T) {
	accounts := []domain.AccountSnapshot{
		{AccountNumber: "acc-1", Main: false},
		{AccountNumber: "acc-2", Main: true},
		{AccountNumber: "acc-3", Main: true},
	}

	number, err := domain.MainAccountNumber(accounts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != "acc-2" {
		t.Fatalf("expected acc-2, got %s", number)
	}
}

func TestMainAccountNumber_NoMainAccount(t *testing.T) {
	accounts := []domain.AccountSnapshot{
		{AccountNumber: "acc-1"},
		{AccountNumber: "acc-2"},
	}

	_, err := domain.MainAccountNumber(accounts)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
