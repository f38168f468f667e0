package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/chris/card-transaction-pipeline/pkg/models"
	"github.com/chris/card-transaction-pipeline/pkg/storage"
	svc "github.com/chris/card-transaction-pipeline/pkg/transactions"
	"github.com/go-chi/chi/v5"
)

// PrivateMerchantIDHeader carries the merchant credential on charge requests.
const PrivateMerchantIDHeader = "Private-Merchant-Id"

// Service is the transaction service the handlers drive.
type Service interface {
	Charge(ctx context.Context, req svc.ChargeRequest) (*models.Transaction, error)
	Preauthorize(ctx context.Context, req svc.ChargeRequest) (*models.Transaction, error)
	Capture(ctx context.Context, ticketNumber string, amount *models.Amount) (*models.Transaction, error)
	Void(ctx context.Context, ticketNumber string) (*models.Transaction, error)
	Get(ctx context.Context, txID string) (*models.Transaction, error)
}

// CaptureRequest optionally overrides the captured amount.
type CaptureRequest struct {
	Amount *models.Amount `json:"amount,omitempty"`
}

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Service Service
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(service Service) *TransactionsHandler {
	return &TransactionsHandler{Service: service}
}

// Charge handles an immediate sale.
func (h *TransactionsHandler) Charge(w http.ResponseWriter, r *http.Request) {
	var req svc.ChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	req.PrivateMerchantID = r.Header.Get(PrivateMerchantIDHeader)

	tx, err := h.Service.Charge(r.Context(), req)
	if err != nil {
		writeError(w, r, "charge", err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// Preauthorize handles a deferred authorization.
func (h *TransactionsHandler) Preauthorize(w http.ResponseWriter, r *http.Request) {
	var req svc.ChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	req.PrivateMerchantID = r.Header.Get(PrivateMerchantIDHeader)

	tx, err := h.Service.Preauthorize(r.Context(), req)
	if err != nil {
		writeError(w, r, "preauthorize", err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// Capture settles the preauthorization identified by the ticketNumber URL parameter.
// An empty body captures the authorized amount.
func (h *TransactionsHandler) Capture(w http.ResponseWriter, r *http.Request) {
	var req CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	tx, err := h.Service.Capture(r.Context(), chi.URLParam(r, "ticketNumber"), req.Amount)
	if err != nil {
		writeError(w, r, "capture", err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// Void cancels the transaction identified by the ticketNumber URL parameter.
func (h *TransactionsHandler) Void(w http.ResponseWriter, r *http.Request) {
	tx, err := h.Service.Void(r.Context(), chi.URLParam(r, "ticketNumber"))
	if err != nil {
		writeError(w, r, "void", err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// GetTransactionById handles the logic for retrieving a transaction by its ID.
func (h *TransactionsHandler) GetTransactionById(w http.ResponseWriter, r *http.Request) {
	tx, err := h.Service.Get(r.Context(), chi.URLParam(r, "transactionId"))
	if err != nil {
		writeError(w, r, "retrieve", err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, svc.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, svc.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		slog.ErrorContext(r.Context(), "transaction request failed", "op", op, "error", err)
		http.Error(w, fmt.Sprintf("Failed to %s transaction: %v", op, err), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
