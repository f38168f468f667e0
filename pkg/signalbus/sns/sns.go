package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/chris/card-transaction-pipeline/pkg/signalbus"
)

// SNSAPI is the subset of the SNS client used by Publisher.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Publisher implements the signalbus.Publisher interface using AWS SNS.
type Publisher struct {
	Client SNSAPI
}

// NewPublisher creates a new Publisher.
func NewPublisher(client SNSAPI) *Publisher {
	return &Publisher{Client: client}
}

// Make sure we conform to the interface
var _ signalbus.Publisher = (*Publisher)(nil)

// PublishTopic broadcasts the event on an SNS topic. The event_type attribute
// lets subscribers filter without parsing the body.
func (p *Publisher) PublishTopic(ctx context.Context, topicARN string, event any) error {
	msg, err := signalbus.Encode(event)
	if err != nil {
		return fmt.Errorf("failed to encode event for SNS: %w", err)
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Message:  aws.String(msg.Body),
	}
	if msg.EventType != "" {
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			signalbus.EventTypeAttribute: {
				DataType:    aws.String("String"),
				StringValue: aws.String(msg.EventType),
			},
		}
	}

	if _, err := p.Client.Publish(ctx, input); err != nil {
		return fmt.Errorf("failed to publish message to SNS: %w", err)
	}

	return nil
}
