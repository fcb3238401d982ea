package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/finarc/fintxn/internal/domain"
)

// Orchestrator sequences a distribution with optional immediate payment of
// every resulting line. Distribution is the financially authoritative step;
// payments are best-effort follow-ons, retryable per recipient.
type Orchestrator struct {
	distributions *DistributionService
	payments      *PaymentService
	log           zerolog.Logger
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(distributions *DistributionService, payments *PaymentService, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		distributions: distributions,
		payments:      payments,
		log:           log,
	}
}

// ImmediatePayment asks the orchestrator to pay every line's full share
// right after the distribution lands.
type ImmediatePayment struct {
	SettlementRole  domain.AccountRole
	Method          domain.PaymentMethod
	ReferenceNumber string
}

// PaymentOutcome is the per-line result of an immediate payment attempt.
type PaymentOutcome struct {
	LineID      string
	RecipientID string
	Payment     *domain.PaymentRecord
	Err         error
}

// OrchestratorResult reports the distribution and, when immediate payment
// was requested, every line's payment outcome. A failed payment never rolls
// back the distribution or other successful payments.
type OrchestratorResult struct {
	Header   *domain.DistributionHeader
	Lines    []*domain.DistributionLine
	Outcomes []PaymentOutcome
}

// DistributeAndPay runs the distribution and then, when payment is
// requested, attempts every line in order. Remaining lines are still
// attempted after a failure; the caller gets a partial-success report
// naming the lines that still need manual payment.
func (o *Orchestrator) DistributeAndPay(
	ctx context.Context,
	scope domain.GovernanceContext,
	input DistributeInput,
	payment *ImmediatePayment,
) (*OrchestratorResult, error) {
	header, lines, err := o.distributions.Distribute(ctx, scope, input)
	if err != nil {
		return nil, err
	}

	result := &OrchestratorResult{Header: header, Lines: lines}

	if payment == nil {
		return result, nil
	}

	for _, line := range lines {
		record, payErr := o.payments.Pay(ctx, scope, PayInput{
			LineID:          line.ID,
			Amount:          line.ShareAmount,
			Date:            input.Date,
			SettlementRole:  payment.SettlementRole,
			PayableRole:     input.PayableRole,
			Method:          payment.Method,
			ReferenceNumber: payment.ReferenceNumber,
		})

		if payErr != nil {
			o.log.Warn().Err(payErr).
				Str("line_id", line.ID).
				Str("recipient_id", line.RecipientID).
				Msg("immediate payment failed, line left pending")
		}

		result.Outcomes = append(result.Outcomes, PaymentOutcome{
			LineID:      line.ID,
			RecipientID: line.RecipientID,
			Payment:     record,
			Err:         payErr,
		})
	}

	return result, nil
}
