package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gotransfers/internal/adapter/http/dto"
	"github.com/iho/gotransfers/internal/domain"
	"github.com/iho/gotransfers/internal/usecase"
)

type transferServiceStub struct {
	makeFn func(ctx context.Context, input usecase.MakeTransferInput) (*usecase.MakeTransferOutput, error)
	getFn  func(ctx context.Context, id string) (*domain.Transfer, error)
}

func (s *transferServiceStub) MakeTransfer(ctx context.Context, input usecase.MakeTransferInput) (*usecase.MakeTransferOutput, error) {
	return s.makeFn(ctx, input)
}

func (s *transferServiceStub) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	return s.getFn(ctx, id)
}

func TestTransferHandler_Make_Success(t *testing.T) {
	var captured usecase.MakeTransferInput
	handler := NewTransferHandler(&transferServiceStub{
		makeFn: func(ctx context.Context, input usecase.MakeTransferInput) (*usecase.MakeTransferOutput, error) {
			captured = input
			return &usecase.MakeTransferOutput{
				Balance: decimal.NewFromInt(400),
				Message: "Transfer completed successfully. Your balance is 400",
			}, nil
		},
	})

	body, _ := json.Marshal(dto.MakeTransferRequest{
		RequestType:       "ACCOUNT",
		ClientID:          "7",
		AccountNumberFrom: "acc-1",
		AccountNumberTo:   "acc-2",
		Amount:            decimal.NewFromInt(100),
		Cur:               "810",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Make(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usecase.KindByAccount, captured.Kind)
	assert.Equal(t, "7", captured.ClientID)
	assert.Equal(t, "acc-1", captured.AccountFrom)

	var resp dto.MakeTransferResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "400.00", resp.Balance)
	assert.Contains(t, resp.Message, "400")
}

func TestTransferHandler_Make_InvalidBody(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	handler.Make(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransferHandler_Make_MissingVariantFields(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{})

	body, _ := json.Marshal(dto.MakeTransferRequest{
		RequestType: "ACCOUNT",
		ClientID:    "7",
		Amount:      decimal.NewFromInt(100),
		Cur:         "810",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Make(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransferHandler_Make_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"same account", domain.ErrSameAccount, http.StatusBadRequest},
		{"invalid currency", domain.ErrInvalidCurrency, http.StatusBadRequest},
		{"currency mismatch", domain.ErrCurrencyMismatch, http.StatusBadRequest},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusBadRequest},
		{"unknown kind", domain.ErrInvalidRequestKind, http.StatusBadRequest},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"account closed", domain.ErrAccountClosed, http.StatusUnprocessableEntity},
		{"rate unavailable", domain.ErrRateUnavailable, http.StatusInternalServerError},
		{"remote failure", domain.ErrRemoteFailure, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransferHandler(&transferServiceStub{
				makeFn: func(ctx context.Context, input usecase.MakeTransferInput) (*usecase.MakeTransferOutput, error) {
					return nil, tt.err
				},
			})

			body, _ := json.Marshal(dto.MakeTransferRequest{
				RequestType:       "ACCOUNT",
				ClientID:          "7",
				AccountNumberFrom: "acc-1",
				AccountNumberTo:   "acc-2",
				Amount:            decimal.NewFromInt(100),
				Cur:               "810",
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Make(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTransferHandler_Get(t *testing.T) {
	created := time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)
	handler := NewTransferHandler(&transferServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transfer, error) {
			if id != "transfer-1" {
				return nil, domain.ErrTransferNotFound
			}
			return &domain.Transfer{
				ID:          "transfer-1",
				AccountFrom: "acc-1",
				AccountTo:   "acc-2",
				Amount:      decimal.NewFromInt(100),
				Currency:    "810",
				CreatedAt:   created,
			}, nil
		},
	})

	router := chi.NewRouter()
	router.Get("/api/v1/transfers/{id}", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transfers/transfer-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.GetTransferResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "transfer-1", resp.ID)
	assert.Equal(t, "100.00", resp.Amount)
	assert.Equal(t, "810", resp.Cur)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/transfers/missing", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
