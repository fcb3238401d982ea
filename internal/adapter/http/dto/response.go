package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finarc/fintxn/internal/domain"
	"github.com/finarc/fintxn/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// JournalEntryLineResponse represents a journal line in API responses.
type JournalEntryLineResponse struct {
	ID               string          `json:"id"`
	AccountID        string          `json:"account_id"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Currency         string          `json:"currency"`
	OriginalCurrency string          `json:"original_currency,omitempty"`
	OriginalAmount   decimal.Decimal `json:"original_amount,omitempty"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate,omitempty"`
	RateProvenance   string          `json:"rate_provenance,omitempty"`
}

// JournalEntryResponse represents a journal entry in API responses.
type JournalEntryResponse struct {
	ID            string                     `json:"id"`
	PostingDate   time.Time                  `json:"posting_date"`
	Description   string                     `json:"description"`
	ReferenceType string                     `json:"reference_type"`
	ReferenceID   string                     `json:"reference_id"`
	Lines         []JournalEntryLineResponse `json:"lines"`
	CreatedAt     time.Time                  `json:"created_at"`
}

// JournalEntryFromDomain converts a domain entry to a response.
func JournalEntryFromDomain(e *domain.JournalEntry) *JournalEntryResponse {
	lines := make([]JournalEntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalEntryLineResponse{
			ID:               l.ID,
			AccountID:        l.AccountID,
			Debit:            l.Debit,
			Credit:           l.Credit,
			Currency:         l.Currency,
			OriginalCurrency: l.OriginalCurrency,
			OriginalAmount:   l.OriginalAmount,
			ExchangeRate:     l.ExchangeRate,
			RateProvenance:   string(l.RateProvenance),
		}
	}

	return &JournalEntryResponse{
		ID:            e.ID,
		PostingDate:   e.PostingDate,
		Description:   e.Description,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		Lines:         lines,
		CreatedAt:     e.CreatedAt,
	}
}

// DistributionLineResponse represents a distribution line in API responses.
type DistributionLineResponse struct {
	ID          string          `json:"id"`
	RecipientID string          `json:"recipient_id"`
	ShareAmount decimal.Decimal `json:"share_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Status      string          `json:"status"`
}

// DistributionResponse represents a distribution in API responses.
type DistributionResponse struct {
	ID             string                     `json:"id"`
	TotalAmount    decimal.Decimal            `json:"total_amount"`
	Currency       string                     `json:"currency"`
	Date           time.Time                  `json:"date"`
	FiscalYear     int                        `json:"fiscal_year"`
	JournalEntryID string                     `json:"journal_entry_id"`
	Lines          []DistributionLineResponse `json:"lines"`
	CreatedAt      time.Time                  `json:"created_at"`
}

// DistributionFromDomain converts a header and its lines to a response.
func DistributionFromDomain(h *domain.DistributionHeader, lines []*domain.DistributionLine) *DistributionResponse {
	resp := &DistributionResponse{
		ID:             h.ID,
		TotalAmount:    h.TotalAmount,
		Currency:       h.Currency,
		Date:           h.Date,
		FiscalYear:     h.FiscalYear,
		JournalEntryID: h.JournalEntryID,
		CreatedAt:      h.CreatedAt,
	}

	for _, l := range lines {
		resp.Lines = append(resp.Lines, DistributionLineResponse{
			ID:          l.ID,
			RecipientID: l.RecipientID,
			ShareAmount: l.ShareAmount,
			PaidAmount:  l.PaidAmount,
			Status:      string(l.Status),
		})
	}

	return resp
}

// PaymentResponse represents a payment record in API responses.
type PaymentResponse struct {
	ID              string          `json:"id"`
	LineID          string          `json:"line_id"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	Method          string          `json:"method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	JournalEntryID  string          `json:"journal_entry_id"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PaymentFromDomain converts a domain payment record to a response.
func PaymentFromDomain(p *domain.PaymentRecord) *PaymentResponse {
	return &PaymentResponse{
		ID:              p.ID,
		LineID:          p.LineID,
		Amount:          p.Amount,
		Date:            p.Date,
		Method:          string(p.Method),
		ReferenceNumber: p.ReferenceNumber,
		JournalEntryID:  p.JournalEntryID,
		CreatedAt:       p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payment records to responses.
func PaymentsFromDomain(records []*domain.PaymentRecord) []*PaymentResponse {
	result := make([]*PaymentResponse, len(records))
	for i, p := range records {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// PaymentOutcomeResponse reports one line's immediate-payment attempt.
type PaymentOutcomeResponse struct {
	LineID      string           `json:"line_id"`
	RecipientID string           `json:"recipient_id"`
	Payment     *PaymentResponse `json:"payment,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// OrchestratorResultResponse represents a distribute-and-pay result,
// including per-line payment outcomes when immediate payment was requested.
type OrchestratorResultResponse struct {
	Distribution *DistributionResponse    `json:"distribution"`
	Outcomes     []PaymentOutcomeResponse `json:"payment_outcomes,omitempty"`
}

// OrchestratorResultFromDomain converts an orchestrator result to a response.
func OrchestratorResultFromDomain(res *usecase.OrchestratorResult) *OrchestratorResultResponse {
	resp := &OrchestratorResultResponse{
		Distribution: DistributionFromDomain(res.Header, res.Lines),
	}

	for _, o := range res.Outcomes {
		out := PaymentOutcomeResponse{
			LineID:      o.LineID,
			RecipientID: o.RecipientID,
		}

		if o.Payment != nil {
			out.Payment = PaymentFromDomain(o.Payment)
		}

		if o.Err != nil {
			out.Error = o.Err.Error()
		}

		resp.Outcomes = append(resp.Outcomes, out)
	}

	return resp
}
