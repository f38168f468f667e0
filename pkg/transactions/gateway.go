package transactions

import (
	"context"

	"github.com/chris/card-transaction-pipeline/pkg/models"
)

// AuthorizationRequest is what the processor gateway needs to authorize a charge.
type AuthorizationRequest struct {
	TransactionID    string
	TicketNumber     string
	SaleTicketNumber string
	TransactionType  models.TransactionType
	MerchantID       string
	ProcessorID      string
	Amount           models.Amount
	Token            string
}

// AuthorizationResult is the processor's answer.
type AuthorizationResult struct {
	Approved     bool
	ApprovalCode string
	ResponseCode string
	ResponseText string
}

// ProcessorGateway is the opaque card-processor integration.
type ProcessorGateway interface {
	Authorize(ctx context.Context, req AuthorizationRequest) (*AuthorizationResult, error)
}
