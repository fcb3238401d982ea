package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finarc/fintxn/internal/domain"
	"github.com/finarc/fintxn/internal/usecase"
)

// ProposedLineItem is one side of a posting request.
type ProposedLineItem struct {
	Role     string          `json:"role"`
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
	Currency string          `json:"currency,omitempty"`
}

// PostJournalEntryRequest represents a request to post a journal entry.
type PostJournalEntryRequest struct {
	PostingDate      time.Time          `json:"posting_date"`
	Description      string             `json:"description"`
	ReferenceType    string             `json:"reference_type"`
	ReferenceID      string             `json:"reference_id"`
	RequireWarehouse bool               `json:"require_warehouse,omitempty"`
	Lines            []ProposedLineItem `json:"lines"`
}

// ToUseCaseInput converts to use case input.
func (r *PostJournalEntryRequest) ToUseCaseInput() usecase.PostInput {
	lines := make([]usecase.ProposedLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = usecase.ProposedLine{
			Role:     domain.AccountRole(l.Role),
			Debit:    l.Debit,
			Credit:   l.Credit,
			Currency: l.Currency,
		}
	}

	return usecase.PostInput{
		PostingDate:      r.PostingDate,
		Description:      r.Description,
		ReferenceType:    r.ReferenceType,
		ReferenceID:      r.ReferenceID,
		RequireWarehouse: r.RequireWarehouse,
		Lines:            lines,
	}
}

// RecipientItem is one distribution target.
type RecipientItem struct {
	RecipientID string          `json:"recipient_id"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// CreateDistributionRequest represents a request to distribute an amount
// across recipients.
type CreateDistributionRequest struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	Date        time.Time       `json:"date"`
	FiscalYear  int             `json:"fiscal_year"`
	Description string          `json:"description,omitempty"`
	Recipients  []RecipientItem `json:"recipients"`
	EquityRole  string          `json:"equity_role"`
	PayableRole string          `json:"payable_role"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDistributionRequest) ToUseCaseInput() usecase.DistributeInput {
	recipients := make([]domain.Recipient, len(r.Recipients))
	for i, rec := range r.Recipients {
		recipients[i] = domain.Recipient{
			ID:         rec.RecipientID,
			Percentage: rec.Percentage,
		}
	}

	return usecase.DistributeInput{
		TotalAmount: r.TotalAmount,
		Date:        r.Date,
		FiscalYear:  r.FiscalYear,
		Description: r.Description,
		Recipients:  recipients,
		EquityRole:  domain.AccountRole(r.EquityRole),
		PayableRole: domain.AccountRole(r.PayableRole),
	}
}

// ImmediatePaymentItem asks for every line to be paid right after the
// distribution.
type ImmediatePaymentItem struct {
	SettlementRole  string `json:"settlement_role"`
	Method          string `json:"method"`
	ReferenceNumber string `json:"reference_number,omitempty"`
}

// DistributeAndPayRequest represents a distribute-and-pay request.
type DistributeAndPayRequest struct {
	CreateDistributionRequest
	ImmediatePayment *ImmediatePaymentItem `json:"immediate_payment,omitempty"`
}

// ToImmediatePayment converts the optional payment block.
func (r *DistributeAndPayRequest) ToImmediatePayment() *usecase.ImmediatePayment {
	if r.ImmediatePayment == nil {
		return nil
	}

	return &usecase.ImmediatePayment{
		SettlementRole:  domain.AccountRole(r.ImmediatePayment.SettlementRole),
		Method:          domain.PaymentMethod(r.ImmediatePayment.Method),
		ReferenceNumber: r.ImmediatePayment.ReferenceNumber,
	}
}

// CreatePaymentRequest represents a payment against a distribution line.
type CreatePaymentRequest struct {
	Amount          decimal.Decimal  `json:"amount"`
	Date            time.Time        `json:"date"`
	SettlementRole  string           `json:"settlement_role"`
	PayableRole     string           `json:"payable_role"`
	Method          string           `json:"method"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
	ExpectedPaid    *decimal.Decimal `json:"expected_paid,omitempty"`
}

// ToUseCaseInput converts to use case input for the given line.
func (r *CreatePaymentRequest) ToUseCaseInput(lineID string) usecase.PayInput {
	return usecase.PayInput{
		LineID:          lineID,
		Amount:          r.Amount,
		Date:            r.Date,
		SettlementRole:  domain.AccountRole(r.SettlementRole),
		PayableRole:     domain.AccountRole(r.PayableRole),
		Method:          domain.PaymentMethod(r.Method),
		ReferenceNumber: r.ReferenceNumber,
		ExpectedPaid:    r.ExpectedPaid,
	}
}
