package dto

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gotransfers/internal/usecase"
)

func TestMakeTransferRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     MakeTransferRequest
		wantErr bool
	}{
		{
			name: "valid account transfer",
			req: MakeTransferRequest{
				RequestType:       "ACCOUNT",
				ClientID:          "client-1",
				AccountNumberFrom: "40817810000000000001",
				AccountNumberTo:   "40817810000000000002",
				Amount:            decimal.NewFromInt(100),
				Cur:               "810",
			},
		},
		{
			name: "valid phone transfer",
			req: MakeTransferRequest{
				RequestType:     "PHONE",
				ClientID:        "client-1",
				PhoneNumberFrom: "+79990000001",
				PhoneNumberTo:   "+79990000002",
				Amount:          decimal.NewFromInt(100),
				Cur:             "810",
			},
		},
		{
			name: "missing client id",
			req: MakeTransferRequest{
				RequestType:       "ACCOUNT",
				AccountNumberFrom: "40817810000000000001",
				AccountNumberTo:   "40817810000000000002",
			},
			wantErr: true,
		},
		{
			name: "account transfer without source account",
			req: MakeTransferRequest{
				RequestType:     "ACCOUNT",
				ClientID:        "client-1",
				AccountNumberTo: "40817810000000000002",
			},
			wantErr: true,
		},
		{
			name: "phone transfer without destination phone",
			req: MakeTransferRequest{
				RequestType:     "PHONE",
				ClientID:        "client-1",
				PhoneNumberFrom: "+79990000001",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestMakeTransferRequestToUseCaseInput(t *testing.T) {
	req := MakeTransferRequest{
		RequestType:     "PHONE",
		ClientID:        "client-1",
		PhoneNumberFrom: "+79990000001",
		PhoneNumberTo:   "+79990000002",
		Amount:          decimal.RequireFromString("150.55"),
		Cur:             "840",
	}

	input := req.ToUseCaseInput()

	if input.Kind != usecase.KindByPhone {
		t.Fatalf("expected phone kind, got %q", input.Kind)
	}
	if input.ClientID != "client-1" || input.PhoneFrom != "+79990000001" || input.PhoneTo != "+79990000002" {
		t.Fatalf("unexpected input: %+v", input)
	}
	if !input.Amount.Equal(decimal.RequireFromString("150.55")) || input.Currency != "840" {
		t.Fatalf("unexpected amount or currency: %+v", input)
	}
}
