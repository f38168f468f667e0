package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/firehose"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	firehoseemitter "github.com/chris/card-transaction-pipeline/pkg/analytics/firehose"
	"github.com/chris/card-transaction-pipeline/pkg/config"
	"github.com/chris/card-transaction-pipeline/pkg/reactor"
	snsbus "github.com/chris/card-transaction-pipeline/pkg/signalbus/sns"
	sqsbus "github.com/chris/card-transaction-pipeline/pkg/signalbus/sqs"
	dydbstore "github.com/chris/card-transaction-pipeline/pkg/storage/dynamodb"
)

var streamReactor *reactor.Reactor

func init() {
	// Initialize dependencies once per execution environment.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}
	if err := cfg.Validate(config.NeedTables | config.NeedSignals); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), dydbstore.Tables{
		Transactions: cfg.Tables.Transactions,
		Merchants:    cfg.Tables.Merchants,
		Processors:   cfg.Tables.Processors,
	})

	streamReactor = reactor.New(
		store,
		sqsbus.NewEnqueuer(sqs.NewFromConfig(awsCfg)),
		snsbus.NewPublisher(sns.NewFromConfig(awsCfg)),
		firehoseemitter.NewEmitter(firehose.NewFromConfig(awsCfg)),
		reactor.DefaultPolicy(reactor.PolicyOptions{
			SyncRequired:      cfg.FanOut.SyncRequired,
			AnalyticsRequired: cfg.FanOut.AnalyticsRequired,
		}),
		reactor.Destinations{
			WebhookQueueURL:  cfg.Signals.WebhookQueueURL,
			SyncTopicARN:     cfg.Signals.SyncTopicARN,
			AnalyticsStreams: cfg.Analytics.Streams,
		},
	)
}

func main() {
	lambda.Start(streamReactor.HandleStream)
}
