package dynamodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chris/card-transaction-pipeline/pkg/models"
	"github.com/chris/card-transaction-pipeline/pkg/storage"
)

// CreateTransaction stores tx guarded by attribute_not_exists(transaction_id).
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	slog.DebugContext(ctx, "creating transaction", "transaction_id", tx.TransactionID, "status", tx.Status)

	if err := s.Put(ctx, s.Tables.Transactions, tx, storage.AttributeNotExists("transaction_id")); err != nil {
		return fmt.Errorf("failed to create transaction %s: %w", tx.TransactionID, err)
	}
	return nil
}

// GetTransaction retrieves a transaction from DynamoDB by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, bool, error) {
	tx, found, err := storage.Get[models.Transaction](ctx, s, s.Tables.Transactions, storage.Key{"transaction_id": txID})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get transaction %s: %w", txID, err)
	}
	return tx, found, nil
}

// GetTransactionByTicketNumber returns the first transaction the ticket number index yields.
func (s *Store) GetTransactionByTicketNumber(ctx context.Context, ticketNumber string) (*models.Transaction, bool, error) {
	txs, err := storage.QueryAll[models.Transaction](ctx, s, s.Tables.Transactions, storage.TransactionByTicketNumberIndex, "ticket_number", ticketNumber)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query transactions by ticket number: %w", err)
	}
	if len(txs) == 0 {
		return nil, false, nil
	}
	return &txs[0], true, nil
}

func (s *Store) ListTransactionsBySaleTicketNumber(ctx context.Context, saleTicketNumber string) ([]models.Transaction, error) {
	txs, err := storage.QueryAll[models.Transaction](ctx, s, s.Tables.Transactions, storage.TransactionBySaleTicketNumberIndex, "sale_ticket_number", saleTicketNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by sale ticket number: %w", err)
	}
	return txs, nil
}

// UpdateTransaction partially updates the transaction stored under txID.
func (s *Store) UpdateTransaction(ctx context.Context, txID string, values map[string]any) error {
	if err := s.UpdateValues(ctx, s.Tables.Transactions, storage.Key{"transaction_id": txID}, values); err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txID, err)
	}
	return nil
}

// GetMerchant retrieves a merchant by its public ID.
func (s *Store) GetMerchant(ctx context.Context, merchantID string) (*models.Merchant, bool, error) {
	merchant, found, err := storage.Get[models.Merchant](ctx, s, s.Tables.Merchants, storage.Key{"merchant_id": merchantID})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get merchant %s: %w", merchantID, err)
	}
	return merchant, found, nil
}

// GetMerchantByPrivateID resolves a merchant from the private credential it authenticates with.
func (s *Store) GetMerchantByPrivateID(ctx context.Context, privateID string) (*models.Merchant, bool, error) {
	merchants, err := storage.QueryAll[models.Merchant](ctx, s, s.Tables.Merchants, storage.MerchantByPrivateIDIndex, "private_id", privateID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query merchants by private ID: %w", err)
	}
	if len(merchants) == 0 {
		return nil, false, nil
	}
	return &merchants[0], true, nil
}

func (s *Store) ListProcessorsByMerchantID(ctx context.Context, merchantID string) ([]models.Processor, error) {
	processors, err := storage.QueryAll[models.Processor](ctx, s, s.Tables.Processors, storage.ProcessorByMerchantIDIndex, "merchant_id", merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query processors by merchant ID: %w", err)
	}
	return processors, nil
}
