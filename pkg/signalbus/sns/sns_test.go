package sns

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/chris/card-transaction-pipeline/pkg/models"
	"github.com/chris/card-transaction-pipeline/pkg/signalbus"
	"github.com/chris/card-transaction-pipeline/pkg/signalbus/sns/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const topicARN = "arn:aws:sns:us-east-1:123456789012:transaction-sync"

func TestPublishTopic(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := mocks.NewSNSAPI(t)
		event := models.SyncEvent{EventID: "e-1", Transaction: models.Transaction{TransactionID: "tx-1"}}

		client.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
			attr, ok := in.MessageAttributes[signalbus.EventTypeAttribute]
			return aws.ToString(in.TopicArn) == topicARN &&
				ok && aws.ToString(attr.StringValue) == "transaction.sync"
		})).Return(&sns.PublishOutput{MessageId: aws.String("m-1")}, nil).Once()

		err := NewPublisher(client).PublishTopic(context.Background(), topicARN, event)

		assert.NoError(t, err)
	})

	t.Run("Broker Error", func(t *testing.T) {
		client := mocks.NewSNSAPI(t)
		client.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

		err := NewPublisher(client).PublishTopic(context.Background(), topicARN, models.SyncEvent{})

		assert.ErrorContains(t, err, "failed to publish message to SNS")
	})

	t.Run("Unserializable Event", func(t *testing.T) {
		client := mocks.NewSNSAPI(t)

		err := NewPublisher(client).PublishTopic(context.Background(), topicARN, make(chan int))

		assert.ErrorContains(t, err, "failed to encode event for SNS")
	})
}
