package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gotransfers/internal/domain"
	"github.com/iho/gotransfers/internal/infrastructure/metrics"
)

// RequestKind selects the transfer strategy.
type RequestKind string

const (
	KindByAccount RequestKind = "ACCOUNT"
	KindByPhone   RequestKind = "PHONE"
)

// TransferUseCase orchestrates the transfer saga: validation, the two-phase
// balance mutation, local recording, and event publication, strictly in that
// order. One instance serves all requests; each call runs its own saga with
// no shared mutable state.
type TransferUseCase struct {
	accounts    AccountGateway
	users       UserGateway
	transfers   TransferRepository
	coordinator *BalanceCoordinator
	publisher   EventPublisher
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	accounts AccountGateway,
	users UserGateway,
	transfers TransferRepository,
	coordinator *BalanceCoordinator,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		accounts:    accounts,
		users:       users,
		transfers:   transfers,
		coordinator: coordinator,
		publisher:   publisher,
		metrics:     m,
		logger:      logger,
	}
}

// MakeTransferInput represents an inbound transfer request. Kind selects
// which variant fields are read: account numbers for ACCOUNT, phone numbers
// for PHONE.
type MakeTransferInput struct {
	Kind        RequestKind
	ClientID    string
	AccountFrom string
	AccountTo   string
	PhoneFrom   string
	PhoneTo     string
	Amount      decimal.Decimal
	Currency    string
}

// MakeTransferOutput is the saga result returned to the caller.
type MakeTransferOutput struct {
	Balance decimal.Decimal
	Message string
}

// MakeTransfer runs the transfer saga for the given request.
func (uc *TransferUseCase) MakeTransfer(ctx context.Context, input MakeTransferInput) (*MakeTransferOutput, error) {
	start := time.Now()
	out, err := uc.makeTransfer(ctx, input)

	if uc.metrics != nil {
		if err != nil {
			uc.metrics.TransfersFailed.WithLabelValues(errorType(err)).Inc()
		} else {
			uc.metrics.TransfersCompleted.WithLabelValues(string(input.Kind)).Inc()
			uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		}
	}

	return out, err
}

func (uc *TransferUseCase) makeTransfer(ctx context.Context, input MakeTransferInput) (*MakeTransferOutput, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if !domain.ValidCurrency(input.Currency) {
		return nil, domain.ErrInvalidCurrency
	}

	switch input.Kind {
	case KindByAccount:
		return uc.makeByAccount(ctx, input)
	case KindByPhone:
		return uc.makeByPhone(ctx, input)
	default:
		return nil, domain.ErrInvalidRequestKind
	}
}

// errorType collapses saga failures into a bounded label set.
func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTransferNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAccountClosed):
		return "account_closed"
	case errors.Is(err, domain.ErrRateUnavailable):
		return "rate_unavailable"
	case errors.Is(err, domain.ErrRemoteFailure):
		return "remote_failure"
	default:
		return "validation"
	}
}

// makeByAccount moves funds between two explicitly named accounts.
func (uc *TransferUseCase) makeByAccount(ctx context.Context, input MakeTransferInput) (*MakeTransferOutput, error) {
	if err := domain.CheckNotSelfTransfer(input.AccountFrom, input.AccountTo); err != nil {
		return nil, err
	}

	sender, err := uc.users.GetUserByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckOwnerActive(sender); err != nil {
		return nil, err
	}

	from, err := uc.accounts.GetAccount(ctx, input.AccountFrom)
	if err != nil {
		return nil, err
	}

	if err := domain.CheckAccountOpen(from); err != nil {
		return nil, err
	}
	if err := domain.CheckCurrencyMatch(input.Currency, from.Currency); err != nil {
		return nil, err
	}
	if err := domain.CheckSufficientFunds(from, input.Amount); err != nil {
		return nil, err
	}

	to, err := uc.accounts.GetAccount(ctx, input.AccountTo)
	if err != nil {
		return nil, err
	}

	if err := domain.CheckAccountOpen(to); err != nil {
		return nil, err
	}

	recipient, err := uc.users.GetUserByID(ctx, to.ClientID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckOwnerActive(recipient); err != nil {
		return nil, err
	}

	transfer, err := uc.coordinator.UpdateBalances(ctx, input.Currency, to, input.AccountFrom, input.AccountTo, input.Amount)
	if err != nil {
		return nil, err
	}

	return uc.finish(ctx, transfer, from.ClientID, to.ClientID)
}

// makeByPhone moves funds between the main accounts of two owners resolved
// by phone number.
func (uc *TransferUseCase) makeByPhone(ctx context.Context, input MakeTransferInput) (*MakeTransferOutput, error) {
	if err := domain.CheckNotSelfTransfer(input.PhoneFrom, input.PhoneTo); err != nil {
		return nil, err
	}

	sender, err := uc.users.GetUserByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckOwnerActive(sender); err != nil {
		return nil, err
	}
	if sender.PhoneNumber != input.PhoneFrom {
		return nil, domain.ErrUserNotFound
	}

	fromAccounts, err := uc.accounts.GetAccountsByClient(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	mainFrom, err := domain.MainAccountNumber(fromAccounts)
	if err != nil {
		return nil, err
	}

	from, err := uc.accounts.GetAccount(ctx, mainFrom)
	if err != nil {
		return nil, err
	}

	if err := domain.CheckAccountOpen(from); err != nil {
		return nil, err
	}
	if err := domain.CheckCurrencyMatch(input.Currency, from.Currency); err != nil {
		return nil, err
	}
	if err := domain.CheckSufficientFunds(from, input.Amount); err != nil {
		return nil, err
	}

	recipient, err := uc.users.GetUserByPhone(ctx, input.PhoneTo)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckOwnerActive(recipient); err != nil {
		return nil, err
	}

	toAccounts, err := uc.accounts.GetAccountsByClient(ctx, recipient.ID)
	if err != nil {
		return nil, err
	}

	mainTo, err := domain.MainAccountNumber(toAccounts)
	if err != nil {
		return nil, err
	}

	to, err := uc.accounts.GetAccount(ctx, mainTo)
	if err != nil {
		return nil, err
	}

	if err := domain.CheckAccountOpen(to); err != nil {
		return nil, err
	}

	transfer, err := uc.coordinator.UpdateBalances(ctx, input.Currency, to, mainFrom, mainTo, input.Amount)
	if err != nil {
		return nil, err
	}

	return uc.finish(ctx, transfer, sender.ID, recipient.ID)
}

// finish records the transfer, publishes the enriched event, and builds the
// response from the sender's refreshed balance. A publish failure degrades
// only the downstream notification: the transfer is already durable, so the
// saga still completes.
func (uc *TransferUseCase) finish(ctx context.Context, transfer *domain.Transfer, clientIDFrom, clientIDTo string) (*MakeTransferOutput, error) {
	if err := uc.transfers.Create(ctx, transfer); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("transfer_id", transfer.ID).
		Str("account_from", transfer.AccountFrom).
		Str("account_to", transfer.AccountTo).
		Msg("transfer recorded")

	event := domain.NewTransferEvent(transfer, clientIDFrom, clientIDTo)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn().
			Err(err).
			Str("transfer_id", transfer.ID).
			Msg("transfer event not delivered")
	}

	balance, err := uc.accounts.GetBalance(ctx, transfer.AccountFrom)
	if err != nil {
		return nil, err
	}

	return &MakeTransferOutput{
		Balance: balance,
		Message: fmt.Sprintf("Transfer completed successfully. Your balance is %s", balance),
	}, nil
}

// GetTransfer retrieves a recorded transfer by id.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	return uc.transfers.GetByID(ctx, id)
}
