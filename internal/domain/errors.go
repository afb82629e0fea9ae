package domain

import "errors"

var (
	// Request errors
	ErrSameAccount        = errors.New("cannot transfer to the same account")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidCurrency    = errors.New("unsupported currency code")
	ErrCurrencyMismatch   = errors.New("requested currency does not match account currency")
	ErrInvalidRequestKind = errors.New("unknown transfer request kind")

	// Remote entity errors
	ErrUserNotFound      = errors.New("user not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountClosed     = errors.New("account is closed")
	ErrInsufficientFunds = errors.New("insufficient funds on account")

	// Collaborator errors
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	ErrRemoteFailure   = errors.New("remote service failure")

	// Local store errors
	ErrTransferNotFound = errors.New("transfer not found")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
