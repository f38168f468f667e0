package reactor

import "github.com/chris/card-transaction-pipeline/pkg/models"

// Action is one of the fan-out targets the reactor can dispatch to.
type Action string

const (
	// ActionWebhookRelay enqueues a webhook job for the merchant.
	ActionWebhookRelay Action = "WEBHOOK_RELAY"
	// ActionSyncPublish broadcasts the transaction to other services.
	ActionSyncPublish Action = "SYNC_PUBLISH"
	// ActionAnalyticsMirror mirrors the transaction to the analytics streams.
	ActionAnalyticsMirror Action = "ANALYTICS_MIRROR"
)

// Target is a fan-out action and whether its failure fails the event.
type Target struct {
	Action   Action
	Required bool
}

// Policy lists the targets attempted for each transaction type, in order.
type Policy map[models.TransactionType][]Target

// PolicyOptions controls the requiredness of the non-webhook targets.
type PolicyOptions struct {
	SyncRequired      bool
	AnalyticsRequired bool
}

// DefaultPolicy builds the per-deployment policy. The webhook relay is always
// required. Voids are not mirrored to analytics because the sale they reference
// already is.
func DefaultPolicy(opts PolicyOptions) Policy {
	webhook := Target{Action: ActionWebhookRelay, Required: true}
	sync := Target{Action: ActionSyncPublish, Required: opts.SyncRequired}
	analytics := Target{Action: ActionAnalyticsMirror, Required: opts.AnalyticsRequired}

	return Policy{
		models.SALE:             {webhook, sync, analytics},
		models.PREAUTHORIZATION: {webhook, sync, analytics},
		models.VOID:             {webhook, sync},
	}
}

// Targets returns the targets for txType. Unknown types have none.
func (p Policy) Targets(txType models.TransactionType) []Target {
	return p[txType]
}
