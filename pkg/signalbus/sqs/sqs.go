package sqs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/chris/card-transaction-pipeline/pkg/signalbus"
)

// SQSAPI is the subset of the SQS client used by Enqueuer.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Enqueuer implements the signalbus.Enqueuer interface using AWS SQS.
type Enqueuer struct {
	Client SQSAPI
}

// NewEnqueuer creates a new Enqueuer.
func NewEnqueuer(client SQSAPI) *Enqueuer {
	return &Enqueuer{Client: client}
}

// Make sure we conform to the interface
var _ signalbus.Enqueuer = (*Enqueuer)(nil)

// Enqueue sends the event to an SQS queue for asynchronous processing.
func (e *Enqueuer) Enqueue(ctx context.Context, queueURL string, event any) error {
	msg, err := signalbus.Encode(event)
	if err != nil {
		return fmt.Errorf("failed to encode event for SQS: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(msg.Body),
	}
	if msg.EventType != "" {
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			signalbus.EventTypeAttribute: {
				DataType:    aws.String("String"),
				StringValue: aws.String(msg.EventType),
			},
		}
	}

	if _, err := e.Client.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
