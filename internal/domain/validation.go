package domain

import "github.com/shopspring/decimal"

// The checks below are the transfer precondition chain. Each one is pure:
// it judges only the values passed to it and never reaches out to a remote
// service, which keeps the chain testable without any gateway in place.

// CheckNotSelfTransfer rejects transfers where both sides are the same
// identifier. Comparison is exact: no trimming, no case folding.
func CheckNotSelfTransfer(from, to string) error {
	if from == to {
		return ErrSameAccount
	}

	return nil
}

// CheckAccountOpen rejects closed accounts.
func CheckAccountOpen(acc *AccountSnapshot) error {
	if acc.Closed {
		return ErrAccountClosed
	}

	return nil
}

// CheckCurrencyMatch rejects requests whose currency differs from the
// account's actual currency. Only the destination leg of a transfer is ever
// converted; the source leg must already be in the requested currency.
func CheckCurrencyMatch(requested, actual string) error {
	if requested != actual {
		return ErrCurrencyMismatch
	}

	return nil
}

// CheckSufficientFunds rejects amounts above the account balance.
func CheckSufficientFunds(acc *AccountSnapshot, amount decimal.Decimal) error {
	if amount.GreaterThan(acc.Balance) {
		return ErrInsufficientFunds
	}

	return nil
}

// CheckOwnerActive rejects missing, inactive or deleted owners.
func CheckOwnerActive(u *User) error {
	if u == nil || !u.CanTransfer() {
		return ErrUserNotFound
	}

	return nil
}

// MainAccountNumber returns the number of the first account flagged as main,
// scanning in list order. If the upstream data ever held two main accounts,
// the first one wins; that ordering is part of the contract.
func MainAccountNumber(accounts []AccountSnapshot) (string, error) {
	for _, acc := range accounts {
		if acc.Main {
			return acc.AccountNumber, nil
		}
	}

	return "", ErrAccountNotFound
}
