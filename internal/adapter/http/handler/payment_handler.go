package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finarc/fintxn/internal/adapter/http/dto"
	"github.com/finarc/fintxn/internal/usecase"
)

// PaymentHandler handles payment HTTP requests.
type PaymentHandler struct {
	payments *usecase.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(payments *usecase.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Create records a payment against a distribution line.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "id")

	var req dto.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	scope := scopeFromRequest(r)

	record, err := h.payments.Pay(r.Context(), scope, req.ToUseCaseInput(lineID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record payment", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(record))
}

// List returns all payments recorded against a distribution line.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "id")

	records, err := h.payments.ListPayments(r.Context(), scopeFromRequest(r), lineID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list payments", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentsFromDomain(records))
}
