package domain

import "github.com/shopspring/decimal"

// AccountSnapshot is a read-only view of a remote ledger account at the
// moment it was fetched. It is never cached: every saga step that needs
// account state fetches a fresh snapshot.
type AccountSnapshot struct {
	AccountNumber string
	ClientID      string
	Currency      string
	Balance       decimal.Decimal
	Main          bool
	Closed        bool
}

// OperationKind identifies the direction of a remote balance mutation.
type OperationKind string

const (
	OperationDebit  OperationKind = "DEBIT"
	OperationCredit OperationKind = "CREDIT"
)

// BalanceChange is a signed balance delta applied to a remote account.
type BalanceChange struct {
	Kind   OperationKind
	Amount decimal.Decimal
}

// NewDebit builds a debit instruction for amount.
func NewDebit(amount decimal.Decimal) BalanceChange {
	return BalanceChange{Kind: OperationDebit, Amount: amount}
}

// NewCredit builds a credit instruction for amount.
func NewCredit(amount decimal.Decimal) BalanceChange {
	return BalanceChange{Kind: OperationCredit, Amount: amount}
}
