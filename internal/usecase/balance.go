package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gotransfers/internal/domain"
)

// BalanceCoordinator performs the two-phase balance mutation of a transfer:
// debit the source account, then credit the destination account with the
// converted amount. The two remote calls are independent; there is no
// enclosing transaction. If the debit succeeds and the credit fails, the
// debit stays applied and the error is surfaced to the caller.
type BalanceCoordinator struct {
	accounts  AccountGateway
	converter *CurrencyConverter
	idGen     IDGenerator
	logger    zerolog.Logger
}

// NewBalanceCoordinator creates a new BalanceCoordinator.
func NewBalanceCoordinator(accounts AccountGateway, converter *CurrencyConverter, idGen IDGenerator, logger zerolog.Logger) *BalanceCoordinator {
	return &BalanceCoordinator{
		accounts:  accounts,
		converter: converter,
		idGen:     idGen,
		logger:    logger,
	}
}

// UpdateBalances debits accountFrom by amount in the request currency and
// credits accountTo by the amount converted into the destination account's
// currency. On success it returns the Transfer record, not yet persisted.
func (c *BalanceCoordinator) UpdateBalances(
	ctx context.Context,
	currency string,
	destination *domain.AccountSnapshot,
	accountFrom, accountTo string,
	amount decimal.Decimal,
) (*domain.Transfer, error) {
	debit := domain.NewDebit(amount)

	creditAmount, err := c.converter.Convert(ctx, amount, currency, destination.Currency)
	if err != nil {
		return nil, err
	}

	credit := domain.NewCredit(creditAmount)

	c.logger.Info().
		Str("account_from", accountFrom).
		Str("account_to", accountTo).
		Str("amount", amount.String()).
		Str("credit_amount", creditAmount.String()).
		Msg("moving funds")

	if err := c.accounts.UpdateBalance(ctx, accountFrom, debit); err != nil {
		return nil, err
	}

	if err := c.accounts.UpdateBalance(ctx, accountTo, credit); err != nil {
		// The debit has already been applied remotely. There is no
		// compensation step; the caller sees the error and the sender's
		// balance stays reduced.
		c.logger.Error().
			Err(err).
			Str("account_from", accountFrom).
			Str("account_to", accountTo).
			Msg("credit failed after successful debit")

		return nil, err
	}

	return &domain.Transfer{
		ID:          c.idGen.Generate(),
		AccountFrom: accountFrom,
		AccountTo:   accountTo,
		Amount:      amount,
		Currency:    currency,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
