package transactions

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// DeclineTokenPrefix makes SandboxGateway decline a request.
const DeclineTokenPrefix = "decline"

// SandboxGateway approves every request except those whose token starts with
// DeclineTokenPrefix. It stands in for a card processor in local runs.
type SandboxGateway struct{}

// Make sure we conform to the interface
var _ ProcessorGateway = SandboxGateway{}

// Authorize implements ProcessorGateway.
func (SandboxGateway) Authorize(_ context.Context, req AuthorizationRequest) (*AuthorizationResult, error) {
	if strings.HasPrefix(req.Token, DeclineTokenPrefix) {
		return &AuthorizationResult{ResponseCode: "05", ResponseText: "Do not honor"}, nil
	}
	return &AuthorizationResult{
		Approved:     true,
		ApprovalCode: strings.ToUpper(uuid.NewString()[:6]),
		ResponseCode: "00",
		ResponseText: "Approved",
	}, nil
}
