package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gotransfers/internal/usecase"
)

// MakeTransferRequest represents a request to make a transfer. The
// requestType field selects which variant fields are read: account numbers
// for ACCOUNT, phone numbers for PHONE.
type MakeTransferRequest struct {
	RequestType       string          `json:"requestType"`
	ClientID          string          `json:"clientId"`
	AccountNumberFrom string          `json:"accountNumberFrom,omitempty"`
	AccountNumberTo   string          `json:"accountNumberTo,omitempty"`
	PhoneNumberFrom   string          `json:"phoneNumberFrom,omitempty"`
	PhoneNumberTo     string          `json:"phoneNumberTo,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Cur               string          `json:"cur"`
}

// Validate checks that the fields the declared kind needs are present.
func (r *MakeTransferRequest) Validate() error {
	if r.ClientID == "" {
		return fmt.Errorf("clientId is required")
	}
	switch usecase.RequestKind(r.RequestType) {
	case usecase.KindByAccount:
		if r.AccountNumberFrom == "" || r.AccountNumberTo == "" {
			return fmt.Errorf("accountNumberFrom and accountNumberTo are required")
		}
	case usecase.KindByPhone:
		if r.PhoneNumberFrom == "" || r.PhoneNumberTo == "" {
			return fmt.Errorf("phoneNumberFrom and phoneNumberTo are required")
		}
	}
	return nil
}

// ToUseCaseInput converts to use case input.
func (r *MakeTransferRequest) ToUseCaseInput() usecase.MakeTransferInput {
	return usecase.MakeTransferInput{
		Kind:        usecase.RequestKind(r.RequestType),
		ClientID:    r.ClientID,
		AccountFrom: r.AccountNumberFrom,
		AccountTo:   r.AccountNumberTo,
		PhoneFrom:   r.PhoneNumberFrom,
		PhoneTo:     r.PhoneNumberTo,
		Amount:      r.Amount,
		Currency:    r.Cur,
	}
}
