package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/gotransfers/internal/domain"
)

// AccountGateway wraps the remote account ledger service.
type AccountGateway interface {
	GetAccount(ctx context.Context, accountNumber string) (*domain.AccountSnapshot, error)
	GetAccountsByClient(ctx context.Context, clientID string) ([]domain.AccountSnapshot, error)
	GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error)
	UpdateBalance(ctx context.Context, accountNumber string, change domain.BalanceChange) error
}

// UserGateway wraps the remote identity service.
type UserGateway interface {
	GetUserByID(ctx context.Context, clientID string) (*domain.User, error)
	GetUserByPhone(ctx context.Context, phoneNumber string) (*domain.User, error)
}

// RateSource provides the current exchange rate of a currency against the
// reference currency. It is never asked for the reference currency itself.
type RateSource interface {
	Rate(ctx context.Context, currencyCode string) (decimal.Decimal, error)
}

// TransferRepository defines data access for locally recorded transfers.
type TransferRepository interface {
	Create(ctx context.Context, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)
}

// EventPublisher delivers a transfer event to the downstream history
// consumer. Implementations own their retry policy; a returned error means
// immediate delivery has been given up on, not that delivery will never
// happen.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.TransferEvent) error
}

// IDGenerator generates unique transfer identifiers.
type IDGenerator interface {
	Generate() string
}
