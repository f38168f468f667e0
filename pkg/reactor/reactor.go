package reactor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chris/card-transaction-pipeline/pkg/analytics"
	"github.com/chris/card-transaction-pipeline/pkg/models"
	"github.com/chris/card-transaction-pipeline/pkg/signalbus"
	"github.com/chris/card-transaction-pipeline/pkg/storage"
)

// State is the lifecycle of a single change event inside the reactor.
type State string

const (
	Received   State = "RECEIVED"
	Dispatched State = "DISPATCHED"
	Settled    State = "SETTLED"
	Failed     State = "FAILED"
)

// TargetResult records what happened to one target of an event.
type TargetResult struct {
	Action   Action
	Required bool
	Skipped  bool
	Err      error
}

// Outcome is the single result the reactor reduces an event to.
type Outcome struct {
	EventID       string
	TransactionID string
	State         State
	Results       []TargetResult
	Err           error
}

// Directory is the read-only view of merchant and processor settings.
type Directory interface {
	storage.MerchantReader
	storage.ProcessorReader
}

// Destinations are the environment-configured fan-out addresses.
type Destinations struct {
	WebhookQueueURL  string
	SyncTopicARN     string
	AnalyticsStreams []string
}

// Reactor turns transaction change events into fan-out side effects. It only
// reads from the store and never writes back the record it reacts to.
type Reactor struct {
	Directory    Directory
	Queue        signalbus.Enqueuer
	Topic        signalbus.Publisher
	Analytics    analytics.Emitter
	Policy       Policy
	Destinations Destinations
}

// New creates a new Reactor.
func New(dir Directory, queue signalbus.Enqueuer, topic signalbus.Publisher, emitter analytics.Emitter, policy Policy, dest Destinations) *Reactor {
	return &Reactor{
		Directory:    dir,
		Queue:        queue,
		Topic:        topic,
		Analytics:    emitter,
		Policy:       policy,
		Destinations: dest,
	}
}

// React processes one change event. The returned outcome is always terminal:
// Settled when every required target succeeded, Failed otherwise.
func (r *Reactor) React(ctx context.Context, ev models.ChangeEvent) Outcome {
	out := Outcome{EventID: ev.EventID, State: Received}
	if ev.NewImage != nil {
		out.TransactionID = ev.NewImage.TransactionID
	}
	logger := slog.With("event_id", ev.EventID, "transaction_id", out.TransactionID)

	if ev.Kind == models.ChangeRemove || !ev.StatusChanged() {
		logger.DebugContext(ctx, "change event skipped", "kind", ev.Kind)
		out.State = Settled
		return out
	}

	tx := *ev.NewImage
	targets := r.Policy.Targets(tx.TransactionType)
	if len(targets) == 0 {
		out.State = Settled
		return out
	}

	merchant, found, err := r.Directory.GetMerchant(ctx, tx.MerchantID)
	if err != nil {
		out.State = Failed
		out.Err = fmt.Errorf("failed to load merchant %s: %w", tx.MerchantID, err)
		logger.ErrorContext(ctx, "change event failed", "error", out.Err)
		return out
	}
	if !found {
		merchant = nil
	}

	r.enrichProcessor(ctx, &tx)

	out.State = Dispatched
	var required []error
	for _, target := range targets {
		result := TargetResult{Action: target.Action, Required: target.Required}

		if !r.applicable(target.Action, &tx, merchant) {
			result.Skipped = true
			out.Results = append(out.Results, result)
			continue
		}

		result.Err = r.dispatch(ctx, target.Action, ev.EventID, tx, merchant)
		if result.Err != nil {
			if target.Required {
				required = append(required, fmt.Errorf("%s: %w", target.Action, result.Err))
			} else {
				logger.WarnContext(ctx, "best-effort target failed", "action", target.Action, "error", result.Err)
			}
		}
		out.Results = append(out.Results, result)
	}

	if len(required) > 0 {
		out.State = Failed
		out.Err = errors.Join(required...)
		logger.ErrorContext(ctx, "change event failed", "error", out.Err)
		return out
	}

	out.State = Settled
	logger.InfoContext(ctx, "change event settled", "status", tx.Status, "targets", len(out.Results))
	return out
}

func (r *Reactor) applicable(action Action, tx *models.Transaction, merchant *models.Merchant) bool {
	switch action {
	case ActionWebhookRelay:
		if !tx.Status.IsNotifiable() {
			return false
		}
		// Web checkout deliveries are routed to a fixed URL by the dispatcher.
		return tx.HasChannel(models.WebCheckoutChannel) || (merchant != nil && merchant.WebhookURL != "")
	case ActionSyncPublish:
		return merchant != nil && merchant.SyncEnabled
	case ActionAnalyticsMirror:
		return len(r.Destinations.AnalyticsStreams) > 0
	}
	return false
}

func (r *Reactor) dispatch(ctx context.Context, action Action, eventID string, tx models.Transaction, merchant *models.Merchant) error {
	switch action {
	case ActionWebhookRelay:
		payload := models.WebhookPayload{Transaction: tx}
		if merchant != nil {
			payload.DestinationURL = merchant.WebhookURL
			payload.SigningSecret = merchant.WebhookSigningSecret
		}
		return r.Queue.Enqueue(ctx, r.Destinations.WebhookQueueURL, payload)
	case ActionSyncPublish:
		return r.Topic.PublishTopic(ctx, r.Destinations.SyncTopicARN, models.SyncEvent{
			EventID:     eventID,
			Transaction: tx,
		})
	case ActionAnalyticsMirror:
		record := []any{models.ToAnalyticsRecord(&tx)}
		var errs []error
		for _, stream := range r.Destinations.AnalyticsStreams {
			if err := r.Analytics.Put(ctx, record, stream); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
	return fmt.Errorf("unknown action %q", action)
}

// enrichProcessor fills in the processor name from the merchant's processor
// list. Lookup failures leave the transaction as is.
func (r *Reactor) enrichProcessor(ctx context.Context, tx *models.Transaction) {
	if tx.Processor.ProcessorID == "" || tx.Processor.ProcessorName != "" {
		return
	}

	processors, err := r.Directory.ListProcessorsByMerchantID(ctx, tx.MerchantID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "processor enrichment failed", "transaction_id", tx.TransactionID, "error", err)
		}
		return
	}

	for _, p := range processors {
		if p.ProcessorID == tx.Processor.ProcessorID {
			tx.Processor.ProcessorName = p.ProcessorName
			tx.Processor.ProcessorType = p.ProcessorType
			return
		}
	}
}
