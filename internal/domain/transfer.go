package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is the durable local record of a completed money movement.
// It is created once, after both remote balance mutations have succeeded,
// and is never updated or deleted afterwards. Amount is kept in the source
// currency, before conversion to the destination leg.
type Transfer struct {
	ID          string
	AccountFrom string
	AccountTo   string
	Amount      decimal.Decimal
	Currency    string
	CreatedAt   time.Time
}

// TransferEvent is the payload handed to the message bus for the downstream
// history consumer. It carries all Transfer fields plus the owner ids of both
// sides, which are only known at publish time.
type TransferEvent struct {
	TransferID   string `json:"transfer_id"`
	ClientIDFrom string `json:"client_id_from"`
	ClientIDTo   string `json:"client_id_to"`
	AccountFrom  string `json:"account_number_from"`
	AccountTo    string `json:"account_number_to"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	CreatedAt    string `json:"created_at"`
}

// NewTransferEvent enriches a transfer with the resolved owner ids.
func NewTransferEvent(t *Transfer, clientIDFrom, clientIDTo string) *TransferEvent {
	return &TransferEvent{
		TransferID:   t.ID,
		ClientIDFrom: clientIDFrom,
		ClientIDTo:   clientIDTo,
		AccountFrom:  t.AccountFrom,
		AccountTo:    t.AccountTo,
		Amount:       t.Amount.StringFixed(2),
		Currency:     t.Currency,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339Nano),
	}
}
