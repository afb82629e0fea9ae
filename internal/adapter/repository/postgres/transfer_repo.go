package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gotransfers/internal/domain"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

// Create records a completed transfer.
func (r *TransferRepository) Create(ctx context.Context, transfer *domain.Transfer) error {
	const query = `
		INSERT INTO transfers (id, account_from, account_to, amount, cur, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		transfer.ID,
		transfer.AccountFrom,
		transfer.AccountTo,
		transfer.Amount,
		transfer.Currency,
		transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	const query = `
		SELECT id, account_from, account_to, amount, cur, created_at
		FROM transfers
		WHERE id = $1`

	var transfer domain.Transfer
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&transfer.ID,
		&transfer.AccountFrom,
		&transfer.AccountTo,
		&transfer.Amount,
		&transfer.Currency,
		&transfer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}
		return nil, fmt.Errorf("select transfer: %w", err)
	}

	return &transfer, nil
}
