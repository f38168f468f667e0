package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/card-transaction-pipeline/pkg/config"
	"github.com/chris/card-transaction-pipeline/pkg/handlers"
	txhandlers "github.com/chris/card-transaction-pipeline/pkg/handlers/transactions"
	dydbstore "github.com/chris/card-transaction-pipeline/pkg/storage/dynamodb"
	"github.com/chris/card-transaction-pipeline/pkg/transactions"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}
	if err := cfg.Validate(config.NeedTables); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	// The sandbox gateway stands in for the card processor, so this server never runs in a deployed tier.
	if !cfg.IsLocalDevelopment() {
		log.Fatalf("cmd/app only runs locally, APP_ENV=%s", cfg.Environment)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// AWS Session
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), dydbstore.Tables{
		Transactions: cfg.Tables.Transactions,
		Merchants:    cfg.Tables.Merchants,
		Processors:   cfg.Tables.Processors,
	})

	service := transactions.NewService(store, transactions.SandboxGateway{})

	router := handlers.NewRouter(txhandlers.NewTransactionsHandler(service), logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("starting server", "addr", addr)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
