package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/card-transaction-pipeline/pkg/models"
)

// Deliverer is implemented by Dispatcher.
type Deliverer interface {
	Deliver(ctx context.Context, payload models.WebhookPayload) (*DeliveryResult, error)
}

// Worker consumes webhook jobs from an SQS event source.
type Worker struct {
	Deliverer Deliverer
}

// NewWorker creates a new Worker.
func NewWorker(d Deliverer) *Worker {
	return &Worker{Deliverer: d}
}

// HandleSQS delivers every message in the batch and reports the failed ones
// so only those are redelivered. Messages that cannot be decoded, and jobs with
// no resolvable destination, are dropped.
func (w *Worker) HandleSQS(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse

	for _, record := range event.Records {
		var payload models.WebhookPayload
		if err := json.Unmarshal([]byte(record.Body), &payload); err != nil {
			slog.ErrorContext(ctx, "dropping malformed webhook job", "message_id", record.MessageId, "error", err)
			continue
		}

		if _, err := w.Deliverer.Deliver(ctx, payload); err != nil {
			if errors.Is(err, ErrNoDestination) {
				slog.ErrorContext(ctx, "dropping webhook job without destination",
					"message_id", record.MessageId,
					"transaction_id", payload.Transaction.TransactionID,
					"channel", payload.Transaction.Channel)
				continue
			}
			slog.WarnContext(ctx, "webhook delivery failed",
				"message_id", record.MessageId,
				"transaction_id", payload.Transaction.TransactionID,
				"error", err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}

	return resp, nil
}
