package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finarc/fintxn/internal/adapter/http/dto"
	"github.com/finarc/fintxn/internal/domain"
)

func TestScopeFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/distributions", nil)
	req.Header.Set(HeaderTenantID, "tenant-1")
	req.Header.Set(HeaderBranchID, "branch-1")
	req.Header.Set(HeaderCostCenterID, "cc-1")
	req.Header.Set(HeaderWarehouseID, "wh-1")
	req.Header.Set(HeaderActingUserID, "user-1")

	scope := scopeFromRequest(req)

	if scope.TenantID != "tenant-1" || scope.BranchID != "branch-1" ||
		scope.CostCenterID != "cc-1" || scope.WarehouseID != "wh-1" ||
		scope.ActingUserID != "user-1" {
		t.Fatalf("scope not populated from headers: %+v", scope)
	}

	if err := scope.Validate(true); err != nil {
		t.Fatalf("expected complete scope to validate, got %v", err)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"governance violation", &domain.GovernanceViolation{Field: "tenant_id"}, http.StatusForbidden},
		{"role not mapped", &domain.RoleNotMappedError{Role: domain.RoleBank, TenantID: "tenant-1"}, http.StatusUnprocessableEntity},
		{"rate not found", domain.ErrRateNotFound, http.StatusUnprocessableEntity},
		{"entry not found", domain.ErrEntryNotFound, http.StatusNotFound},
		{"distribution not found", domain.ErrDistributionNotFound, http.StatusNotFound},
		{"concurrent payment", domain.ErrConcurrentPayment, http.StatusConflict},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"insufficient retained earnings", domain.ErrInsufficientRetainedEarnings, http.StatusBadRequest},
		{"exceeds remaining", domain.ErrExceedsRemaining, http.StatusBadRequest},
		{"line already paid", domain.ErrLineAlreadyPaid, http.StatusBadRequest},
		{"unbalanced posting", &domain.PostingError{Kind: domain.PostingUnbalanced, Err: domain.ErrUnbalancedEntry}, http.StatusBadRequest},
		{"posting write failed", &domain.PostingError{Kind: domain.PostingWriteFailed, Err: errors.New("insert failed")}, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}
