package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finarc/fintxn/internal/adapter/http/dto"
	"github.com/finarc/fintxn/internal/usecase"
)

// DistributionHandler handles distribution HTTP requests.
type DistributionHandler struct {
	distributions *usecase.DistributionService
	orchestrator  *usecase.Orchestrator
}

// NewDistributionHandler creates a new DistributionHandler.
func NewDistributionHandler(distributions *usecase.DistributionService, orchestrator *usecase.Orchestrator) *DistributionHandler {
	return &DistributionHandler{
		distributions: distributions,
		orchestrator:  orchestrator,
	}
}

// Create distributes an amount across recipients.
func (h *DistributionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDistributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	scope := scopeFromRequest(r)

	header, lines, err := h.distributions.Distribute(r.Context(), scope, req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create distribution", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.DistributionFromDomain(header, lines))
}

// Get retrieves a distribution with its lines.
func (h *DistributionHandler) Get(w http.ResponseWriter, r *http.Request) {
	distributionID := chi.URLParam(r, "id")

	header, lines, err := h.distributions.GetDistribution(r.Context(), scopeFromRequest(r), distributionID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get distribution", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DistributionFromDomain(header, lines))
}

// DistributeAndPay distributes and then pays each line in one request.
// A failed payment does not fail the request; the response reports the
// outcome per line.
func (h *DistributionHandler) DistributeAndPay(w http.ResponseWriter, r *http.Request) {
	var req dto.DistributeAndPayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	scope := scopeFromRequest(r)

	result, err := h.orchestrator.DistributeAndPay(r.Context(), scope, req.ToUseCaseInput(), req.ToImmediatePayment())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to distribute", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.OrchestratorResultFromDomain(result))
}
