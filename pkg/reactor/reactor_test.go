package reactor

import (
	"context"
	"errors"
	"testing"

	analyticsmocks "github.com/chris/card-transaction-pipeline/pkg/analytics/mocks"
	"github.com/chris/card-transaction-pipeline/pkg/models"
	busmocks "github.com/chris/card-transaction-pipeline/pkg/signalbus/mocks"
	"github.com/chris/card-transaction-pipeline/pkg/storage"
	storagemocks "github.com/chris/card-transaction-pipeline/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	queueURL = "https://sqs.local/webhooks"
	topicARN = "arn:aws:sns:local:1:sync"
)

type fixture struct {
	dir       *storagemocks.TransactionRepository
	queue     *busmocks.Enqueuer
	topic     *busmocks.Publisher
	analytics *analyticsmocks.Emitter
	reactor   *Reactor
}

func newFixture(t *testing.T, opts PolicyOptions) *fixture {
	f := &fixture{
		dir:       storagemocks.NewTransactionRepository(t),
		queue:     busmocks.NewEnqueuer(t),
		topic:     busmocks.NewPublisher(t),
		analytics: analyticsmocks.NewEmitter(t),
	}
	f.reactor = New(f.dir, f.queue, f.topic, f.analytics, DefaultPolicy(opts), Destinations{
		WebhookQueueURL:  queueURL,
		SyncTopicARN:     topicARN,
		AnalyticsStreams: []string{"es-mirror", "billing-mirror"},
	})
	return f
}

var merchant = &models.Merchant{
	MerchantID:           "m-1",
	WebhookURL:           "https://merchant.example.com/hook",
	WebhookSigningSecret: "s3cret",
	SyncEnabled:          true,
}

func approvedSale() *models.Transaction {
	return &models.Transaction{
		TransactionID:   "tx-1",
		TransactionType: models.SALE,
		Status:          models.APPROVAL,
		MerchantID:      "m-1",
		Processor:       models.ProcessorInfo{ProcessorID: "p-1"},
	}
}

func modifyEvent(oldStatus models.TransactionStatus, next *models.Transaction) models.ChangeEvent {
	old := *next
	old.Status = oldStatus
	return models.ChangeEvent{EventID: "ev-1", Kind: models.ChangeModify, OldImage: &old, NewImage: next}
}

func TestReact(t *testing.T) {
	t.Run("Fans Out To Every Target", func(t *testing.T) {
		f := newFixture(t, PolicyOptions{SyncRequired: true})

		f.dir.On("GetMerchant", mock.Anything, "m-1").Return(merchant, true, nil).Once()
		f.dir.On("ListProcessorsByMerchantID", mock.Anything, "m-1").
			Return([]models.Processor{{ProcessorID: "p-1", ProcessorName: "Acquirer", ProcessorType: "GATEWAY"}}, nil).Once()
		f.queue.On("Enqueue", mock.Anything, queueURL, mock.MatchedBy(func(p models.WebhookPayload) bool {
			return p.DestinationURL == merchant.WebhookURL &&
				p.SigningSecret == "s3cret" &&
				p.Transaction.Processor.ProcessorName == "Acquirer"
		})).Return(nil).Once()
		f.topic.On("PublishTopic", mock.Anything, topicARN, mock.MatchedBy(func(e models.SyncEvent) bool {
			return e.EventID == "ev-1" && e.Transaction.TransactionID == "tx-1"
		})).Return(nil).Once()
		f.analytics.On("Put", mock.Anything, mock.MatchedBy(func(records []any) bool {
			r, ok := records[0].(models.AnalyticsRecord)
			return len(records) == 1 && ok && r.ProcessorName == "Acquirer"
		}), mock.AnythingOfType("string")).Return(nil).Twice()

		out := f.reactor.React(context.Background(), modifyEvent(models.INITIALIZED, approvedSale()))

		assert.Equal(t, Settled, out.State)
		assert.NoError(t, out.Err)
		assert.Equal(t, "tx-1", out.TransactionID)
		require.Len(t, out.Results, 3)
		for _, r := range out.Results {
			assert.False(t, r.Skipped)
			assert.NoError(t, r.Err)
		}
	})

	t.Run("Status Unchanged Is Skipped", func(t *testing.T) {
		f := newFixture(t, PolicyOptions{})

		out := f.reactor.React(context.Background(), modifyEvent(models.APPROVAL, approvedSale()))

		assert.Equal(t, Settled, out.State)
		assert.Empty(t, out.Results)
	})

	t.Run("Remove Is Skipped", func(t *testing.T) {
		f := newFixture(t, PolicyOptions{})

		out := f.reactor.React(context.Background(), models.ChangeEvent{EventID: "ev-2", Kind: models.ChangeRemove, OldImage: approvedSale()})

		assert.Equal(t, Settled, out.State)
	})

	t.Run("Initialized Insert Skips Webhook", func(t *testing.T) {
		f := newFixture(t, PolicyOptions{})
		tx := approvedSale()
		tx.Status = models.INITIALIZED
		tx.Processor.ProcessorName = "Known"

		f.dir.On("GetMerchant", mock.Anything, "m-1").Return(merchant, true, nil).Once()
		f.topic.On("PublishTopic", mock.Anything, topicARN, mock.Anything).Return(nil).Once()
		f.analytics.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

		out := f.reactor.React(context.Background(), models.ChangeEvent{EventID: "ev-3", Kind: models.ChangeInsert, NewImage: tx})

		assert.Equal(t, Settled, out.State)
		assert.True(t, out.Results[0].Skipped)
		assert.Equal(t, ActionWebhookRelay, out.Results[0].Action)
	})

	t.Run("Unknown Merchant Only Mirrors", func(t *testing.T) {
		f := newFixture(t, PolicyOptions{})

		f.dir.On("GetMerchant", mock.Anything, "m-1").Return(nil, false, nil).Once()
		f.dir.On("ListProcessorsByMerchantID", mock.Anything, "m-1").Return([]models.Processor{}, nil).Once()
		f.analytics.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

		out := f.reactor.React(context.Background(), modifyEvent(models.INITIALIZED, approvedSale()))

		assert.Equal(t, Settled, out.State)
		assert.True(t, out.Results[0].Skipped)
		assert.True(t, out.Results[1].Skipped)
		assert.False(t, out.Results[2].Skipped)
	})

	t.Run("Web Checkout Relayed Without Merchant URL", func(t *testing.T) {
		f := newFixture(t, PolicyOptions{})
		tx := approvedSale()
		tx.Channel = "webcheckout"
		tx.Processor.ProcessorName = "Known"

		f.dir.On("GetMerchant", mock.Anything, "m-1").Return(&models.Merchant{MerchantID: "m-1"}, true, nil).Once()
		f.queue.On("Enqueue", mock.Anything, queueURL, mock.MatchedBy(func(p models.WebhookPayload) bool {
			return p.DestinationURL == "" && p.Transaction.TransactionID == "tx-1"
		})).Return(nil).Once()
		f.analytics.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

		out := f.reactor.React(context.Background(), modifyEvent(models.INITIALIZED, tx))

		assert.Equal(t, Settled, out.State)
		require.Len(t, out.Results, 3)
		assert.Equal(t, ActionWebhookRelay, out.Results[0].Action)
		assert.False(t, out.Results[0].Skipped)
		assert.True(t, out.Results[1].Skipped)
	})

	t.Run("Required Failure Does Not Block Others", func(t *testing.T) {
		f := newFixture(t, PolicyOptions{})
		queueErr := errors.New("queue unavailable")

		f.dir.On("GetMerchant", mock.Anything, "m-1").Return(merchant, true, nil).Once()
		f.dir.On("ListProcessorsByMerchantID", mock.Anything, "m-1").Return(nil, errors.New("throttled")).Once()
		f.queue.On("Enqueue", mock.Anything, queueURL, mock.Anything).Return(queueErr).Once()
		f.topic.On("PublishTopic", mock.Anything, topicARN, mock.Anything).Return(nil).Once()
		f.analytics.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

		out := f.reactor.React(context.Background(), modifyEvent(models.INITIALIZED, approvedSale()))

		assert.Equal(t, Failed, out.State)
		assert.ErrorIs(t, out.Err, queueErr)
		assert.ErrorIs(t, out.Results[0].Err, queueErr)
		assert.NoError(t, out.Results[1].Err)
	})

	t.Run("Best Effort Failure Settles", func(t *testing.T) {
		f := newFixture(t, PolicyOptions{SyncRequired: true})
		mirrorErr := errors.New("firehose down")

		f.dir.On("GetMerchant", mock.Anything, "m-1").Return(merchant, true, nil).Once()
		f.dir.On("ListProcessorsByMerchantID", mock.Anything, "m-1").Return(nil, storage.ErrNotFound).Once()
		f.queue.On("Enqueue", mock.Anything, queueURL, mock.Anything).Return(nil).Once()
		f.topic.On("PublishTopic", mock.Anything, topicARN, mock.Anything).Return(nil).Once()
		f.analytics.On("Put", mock.Anything, mock.Anything, "es-mirror").Return(mirrorErr).Once()
		f.analytics.On("Put", mock.Anything, mock.Anything, "billing-mirror").Return(nil).Once()

		out := f.reactor.React(context.Background(), modifyEvent(models.INITIALIZED, approvedSale()))

		assert.Equal(t, Settled, out.State)
		assert.NoError(t, out.Err)
		assert.ErrorIs(t, out.Results[2].Err, mirrorErr)
	})

	t.Run("Analytics Required By Policy", func(t *testing.T) {
		f := newFixture(t, PolicyOptions{AnalyticsRequired: true})
		mirrorErr := errors.New("firehose down")
		tx := approvedSale()
		tx.Processor.ProcessorName = "Known"

		f.dir.On("GetMerchant", mock.Anything, "m-1").Return(&models.Merchant{MerchantID: "m-1"}, true, nil).Once()
		f.analytics.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(mirrorErr).Twice()

		out := f.reactor.React(context.Background(), modifyEvent(models.INITIALIZED, tx))

		assert.Equal(t, Failed, out.State)
		assert.ErrorIs(t, out.Err, mirrorErr)
	})

	t.Run("Merchant Lookup Error Fails", func(t *testing.T) {
		f := newFixture(t, PolicyOptions{})

		f.dir.On("GetMerchant", mock.Anything, "m-1").Return(nil, false, storage.ErrTransient).Once()

		out := f.reactor.React(context.Background(), modifyEvent(models.INITIALIZED, approvedSale()))

		assert.Equal(t, Failed, out.State)
		assert.ErrorIs(t, out.Err, storage.ErrTransient)
		assert.Empty(t, out.Results)
	})
}
