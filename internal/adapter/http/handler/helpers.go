package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finarc/fintxn/internal/adapter/http/dto"
	"github.com/finarc/fintxn/internal/domain"
)

// Governance scope headers. The authentication layer in front of this API
// is expected to have verified them; the engine re-validates completeness.
const (
	HeaderTenantID     = "X-Tenant-ID"
	HeaderBranchID     = "X-Branch-ID"
	HeaderCostCenterID = "X-Cost-Center-ID"
	HeaderWarehouseID  = "X-Warehouse-ID"
	HeaderActingUserID = "X-Acting-User-ID"
)

// scopeFromRequest builds the governance scope from request headers.
func scopeFromRequest(r *http.Request) domain.GovernanceContext {
	return domain.GovernanceContext{
		TenantID:     r.Header.Get(HeaderTenantID),
		BranchID:     r.Header.Get(HeaderBranchID),
		CostCenterID: r.Header.Get(HeaderCostCenterID),
		WarehouseID:  r.Header.Get(HeaderWarehouseID),
		ActingUserID: r.Header.Get(HeaderActingUserID),
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var (
		governance *domain.GovernanceViolation
		notMapped  *domain.RoleNotMappedError
		posting    *domain.PostingError
	)

	switch {
	case errors.As(err, &governance):
		return http.StatusForbidden
	case errors.As(err, &notMapped),
		errors.Is(err, domain.ErrRateNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrDistributionNotFound),
		errors.Is(err, domain.ErrLineNotFound),
		errors.Is(err, domain.ErrPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConcurrentPayment):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidPercentageTotal),
		errors.Is(err, domain.ErrInsufficientRetainedEarnings),
		errors.Is(err, domain.ErrNoRecipients),
		errors.Is(err, domain.ErrExceedsRemaining),
		errors.Is(err, domain.ErrMissingReference),
		errors.Is(err, domain.ErrLineAlreadyPaid),
		errors.Is(err, domain.ErrInvalidMethod),
		errors.Is(err, domain.ErrEmptyEntry),
		errors.Is(err, domain.ErrUnbalancedEntry),
		errors.Is(err, domain.ErrBothSidesSet),
		errors.Is(err, domain.ErrNegativeLineAmount),
		errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusBadRequest
	case errors.As(err, &posting):
		// Unbalanced is caught by ErrUnbalancedEntry above; what is left
		// here are store-level write failures.
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
