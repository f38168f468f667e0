package storage

import (
	"context"

	"github.com/chris/card-transaction-pipeline/pkg/models"
)

// Index names used on the transaction, merchant and processor tables.
const (
	TransactionBySaleTicketNumberIndex = "saleTicketNumber-index"
	TransactionByTicketNumberIndex     = "ticketNumber-index"
	MerchantByPrivateIDIndex           = "privateId-index"
	ProcessorByMerchantIDIndex         = "merchantId-index"
)

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, bool, error)

	// GetTransactionByTicketNumber retrieves the transaction that owns ticketNumber.
	GetTransactionByTicketNumber(ctx context.Context, ticketNumber string) (*models.Transaction, bool, error)

	// ListTransactionsBySaleTicketNumber retrieves every transaction referencing a sale ticket (voids).
	ListTransactionsBySaleTicketNumber(ctx context.Context, saleTicketNumber string) ([]models.Transaction, error)
}

// TransactionWriter defines the interface for creating and mutating transactions.
type TransactionWriter interface {
	// CreateTransaction stores tx unless a transaction with the same ID already exists,
	// in which case the stored record is left unchanged and no error is returned.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// UpdateTransaction partially updates a stored transaction.
	UpdateTransaction(ctx context.Context, txID string, values map[string]any) error
}

// MerchantReader defines the interface for reading merchant settings.
type MerchantReader interface {
	GetMerchant(ctx context.Context, merchantID string) (*models.Merchant, bool, error)
	GetMerchantByPrivateID(ctx context.Context, privateID string) (*models.Merchant, bool, error)
}

// ProcessorReader defines the interface for reading a merchant's processors.
type ProcessorReader interface {
	ListProcessorsByMerchantID(ctx context.Context, merchantID string) ([]models.Processor, error)
}

// TransactionStore combines the reader and writer interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepository is every typed operation built on top of the record store.
type TransactionRepository interface {
	TransactionStore
	MerchantReader
	ProcessorReader
}
