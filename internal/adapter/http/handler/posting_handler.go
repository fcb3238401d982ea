package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finarc/fintxn/internal/adapter/http/dto"
	"github.com/finarc/fintxn/internal/usecase"
)

// PostingHandler handles journal entry HTTP requests.
type PostingHandler struct {
	posting *usecase.PostingService
}

// NewPostingHandler creates a new PostingHandler.
func NewPostingHandler(posting *usecase.PostingService) *PostingHandler {
	return &PostingHandler{posting: posting}
}

// Create posts a balanced journal entry.
func (h *PostingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PostJournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	scope := scopeFromRequest(r)

	entry, err := h.posting.Post(r.Context(), scope, req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to post journal entry", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.JournalEntryFromDomain(entry))
}

// Get retrieves a journal entry with its lines.
func (h *PostingHandler) Get(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")

	entry, err := h.posting.GetEntry(r.Context(), scopeFromRequest(r), entryID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get journal entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.JournalEntryFromDomain(entry))
}
