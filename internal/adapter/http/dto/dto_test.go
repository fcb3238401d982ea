package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finarc/fintxn/internal/domain"
	"github.com/finarc/fintxn/internal/usecase"
)

func TestPostJournalEntryRequest_ToUseCaseInput(t *testing.T) {
	req := PostJournalEntryRequest{
		PostingDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:   "month-end close",
		ReferenceType: "manual",
		ReferenceID:   "ref-9",
		Lines: []ProposedLineItem{
			{Role: "retained_earnings", Debit: decimal.NewFromInt(250)},
			{Role: "dividends_payable", Credit: decimal.NewFromInt(250), Currency: "EUR"},
		},
	}

	input := req.ToUseCaseInput()

	require.Len(t, input.Lines, 2)
	assert.Equal(t, domain.RoleRetainedEarnings, input.Lines[0].Role)
	assert.True(t, input.Lines[0].Debit.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "EUR", input.Lines[1].Currency)
	assert.Equal(t, "manual", input.ReferenceType)
}

func TestDistributeAndPayRequest_ToImmediatePayment(t *testing.T) {
	t.Run("nil when no payment block", func(t *testing.T) {
		req := DistributeAndPayRequest{}
		assert.Nil(t, req.ToImmediatePayment())
	})

	t.Run("maps the payment block", func(t *testing.T) {
		req := DistributeAndPayRequest{
			ImmediatePayment: &ImmediatePaymentItem{
				SettlementRole:  "bank",
				Method:          "bank_transfer",
				ReferenceNumber: "TRF-42",
			},
		}

		payment := req.ToImmediatePayment()
		require.NotNil(t, payment)
		assert.Equal(t, domain.RoleBank, payment.SettlementRole)
		assert.Equal(t, domain.PaymentBankTransfer, payment.Method)
		assert.Equal(t, "TRF-42", payment.ReferenceNumber)
	})
}

func TestDistributionFromDomain(t *testing.T) {
	header := &domain.DistributionHeader{
		ID:             "dist-1",
		TotalAmount:    decimal.NewFromInt(1000),
		Currency:       "USD",
		FiscalYear:     2025,
		JournalEntryID: "je-1",
	}
	lines := []*domain.DistributionLine{
		{ID: "l1", RecipientID: "r1", ShareAmount: decimal.NewFromInt(600), Status: domain.DistributionPending},
		{ID: "l2", RecipientID: "r2", ShareAmount: decimal.NewFromInt(400), Status: domain.DistributionPaid},
	}

	resp := DistributionFromDomain(header, lines)

	assert.Equal(t, "dist-1", resp.ID)
	assert.Equal(t, "je-1", resp.JournalEntryID)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, "pending", resp.Lines[0].Status)
	assert.Equal(t, "paid", resp.Lines[1].Status)
}

func TestOrchestratorResultFromDomain(t *testing.T) {
	res := &usecase.OrchestratorResult{
		Header: &domain.DistributionHeader{ID: "dist-1", TotalAmount: decimal.NewFromInt(100)},
		Lines: []*domain.DistributionLine{
			{ID: "l1", RecipientID: "r1", ShareAmount: decimal.NewFromInt(100)},
		},
		Outcomes: []usecase.PaymentOutcome{
			{LineID: "l1", RecipientID: "r1", Payment: &domain.PaymentRecord{ID: "p1", LineID: "l1"}},
			{LineID: "l2", RecipientID: "r2", Err: errors.New("connection reset")},
		},
	}

	resp := OrchestratorResultFromDomain(res)

	require.NotNil(t, resp.Distribution)
	require.Len(t, resp.Outcomes, 2)
	require.NotNil(t, resp.Outcomes[0].Payment)
	assert.Empty(t, resp.Outcomes[0].Error)
	assert.Nil(t, resp.Outcomes[1].Payment)
	assert.Equal(t, "connection reset", resp.Outcomes[1].Error)
}
