package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gotransfers/internal/adapter/http/dto"
	"github.com/iho/gotransfers/internal/domain"
	"github.com/iho/gotransfers/internal/usecase"
)

// TransferService is what the handler needs from the transfer use case.
type TransferService interface {
	MakeTransfer(ctx context.Context, input usecase.MakeTransferInput) (*usecase.MakeTransferOutput, error)
	GetTransfer(ctx context.Context, id string) (*domain.Transfer, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Make runs the transfer saga for an incoming request.
func (h *TransferHandler) Make(w http.ResponseWriter, r *http.Request) {
	var req dto.MakeTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	out, err := h.transferUC.MakeTransfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to make transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MakeTransferResponseFromOutput(out))
}

// Get retrieves a transfer by ID.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	transfer, err := h.transferUC.GetTransfer(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}
