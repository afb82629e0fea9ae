package dto

import (
	"time"

	"github.com/iho/gotransfers/internal/domain"
	"github.com/iho/gotransfers/internal/usecase"
)

// MakeTransferResponse is the success payload of a transfer request.
type MakeTransferResponse struct {
	Message string `json:"message"`
	Balance string `json:"balance"`
}

// MakeTransferResponseFromOutput converts use case output.
func MakeTransferResponseFromOutput(out *usecase.MakeTransferOutput) MakeTransferResponse {
	return MakeTransferResponse{
		Message: out.Message,
		Balance: out.Balance.StringFixed(2),
	}
}

// GetTransferResponse represents a recorded transfer.
type GetTransferResponse struct {
	ID                  string `json:"id"`
	AccountNumberFrom   string `json:"accountNumberFrom"`
	AccountNumberTo     string `json:"accountNumberTo"`
	Amount              string `json:"amount"`
	Cur                 string `json:"cur"`
	TransactionDateTime string `json:"transactionDateTime"`
}

// TransferFromDomain converts a domain transfer.
func TransferFromDomain(t *domain.Transfer) GetTransferResponse {
	return GetTransferResponse{
		ID:                  t.ID,
		AccountNumberFrom:   t.AccountFrom,
		AccountNumberTo:     t.AccountTo,
		Amount:              t.Amount.StringFixed(2),
		Cur:                 t.Currency,
		TransactionDateTime: t.CreatedAt.Format(time.RFC3339Nano),
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
