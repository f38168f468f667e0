package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/card-transaction-pipeline/pkg/config"
	"github.com/chris/card-transaction-pipeline/pkg/webhook"
)

var worker *webhook.Worker

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if cfg.Webhook.WebCheckoutURL == "" {
		slog.Warn("WEBCHECKOUT_WEBHOOK_URL not set, web checkout jobs will be dropped")
	}

	worker = webhook.NewWorker(webhook.NewDispatcher(cfg.Webhook.WebCheckoutURL, cfg.Webhook.Timeout))
}

func main() {
	lambda.Start(worker.HandleSQS)
}
