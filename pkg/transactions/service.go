package transactions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/card-transaction-pipeline/pkg/models"
	"github.com/chris/card-transaction-pipeline/pkg/storage"
	"github.com/google/uuid"
)

var (
	// ErrInvalidTransition is returned when an operation would move a
	// transaction backwards or across types.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidRequest is returned for requests missing required fields.
	ErrInvalidRequest = errors.New("invalid request")
)

// ChargeRequest starts a sale or a preauthorization.
type ChargeRequest struct {
	// TransactionID is optional; retries should resend the same value.
	TransactionID string        `json:"transaction_id,omitempty"`
	MerchantID    string        `json:"merchant_id"`
	ProcessorID   string        `json:"processor_id"`
	Token         string        `json:"token"`
	Channel       string        `json:"channel,omitempty"`
	Amount        models.Amount `json:"amount"`

	// PrivateMerchantID is the merchant credential; when set it determines MerchantID.
	PrivateMerchantID string `json:"-"`
}

// Store is the storage the service reads and mutates.
type Store interface {
	storage.TransactionStore
	storage.MerchantReader
}

// Service performs the storage mutations that feed the change stream.
type Service struct {
	Store   Store
	Gateway ProcessorGateway
	Now     func() time.Time
	NewID   func() string
}

// NewService creates a new Service.
func NewService(store Store, gateway ProcessorGateway) *Service {
	return &Service{
		Store:   store,
		Gateway: gateway,
		Now:     time.Now,
		NewID:   uuid.NewString,
	}
}

// Charge authorizes an immediate sale.
func (s *Service) Charge(ctx context.Context, req ChargeRequest) (*models.Transaction, error) {
	req, err := s.resolveMerchant(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.authorize(ctx, req, models.SALE, "")
}

// Preauthorize authorizes a deferred transaction that is settled by Capture.
func (s *Service) Preauthorize(ctx context.Context, req ChargeRequest) (*models.Transaction, error) {
	req, err := s.resolveMerchant(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.authorize(ctx, req, models.PREAUTHORIZATION, "")
}

func (s *Service) resolveMerchant(ctx context.Context, req ChargeRequest) (ChargeRequest, error) {
	if req.PrivateMerchantID == "" {
		return req, nil
	}

	merchant, found, err := s.Store.GetMerchantByPrivateID(ctx, req.PrivateMerchantID)
	if err != nil {
		return req, fmt.Errorf("failed to resolve merchant credential: %w", err)
	}
	if !found {
		return req, fmt.Errorf("unknown merchant credential: %w", ErrInvalidRequest)
	}
	if req.MerchantID != "" && req.MerchantID != merchant.MerchantID {
		return req, fmt.Errorf("merchant_id does not match credential: %w", ErrInvalidRequest)
	}

	req.MerchantID = merchant.MerchantID
	return req, nil
}

// Get returns a transaction by ID.
func (s *Service) Get(ctx context.Context, txID string) (*models.Transaction, error) {
	tx, found, err := s.Store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("transaction %s: %w", txID, storage.ErrNotFound)
	}
	return tx, nil
}

// Capture settles an approved preauthorization. amount, when set, replaces
// the authorized amount. Capturing twice returns the captured record.
func (s *Service) Capture(ctx context.Context, ticketNumber string, amount *models.Amount) (*models.Transaction, error) {
	tx, err := s.byTicket(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}

	if !tx.TransactionType.IsDeferred() || !tx.Status.CanTransitionTo(tx.TransactionType, models.CAPTURE) {
		return nil, fmt.Errorf("cannot capture %s %s in status %s: %w", tx.TransactionType, tx.TransactionID, tx.Status, ErrInvalidTransition)
	}
	if tx.Status == models.CAPTURE {
		return tx, nil
	}

	values := map[string]any{
		"status":  models.CAPTURE,
		"updated": s.Now().UnixMilli(),
	}
	if amount != nil {
		values["amount"] = *amount
		tx.Amount = *amount
	}

	if err := s.Store.UpdateTransaction(ctx, tx.TransactionID, values); err != nil {
		return nil, fmt.Errorf("failed to capture transaction %s: %w", tx.TransactionID, err)
	}

	tx.Status = models.CAPTURE
	tx.Updated = values["updated"].(int64)
	slog.InfoContext(ctx, "transaction captured", "transaction_id", tx.TransactionID)
	return tx, nil
}

// Void cancels an approved sale or preauthorization by recording a VOID
// transaction that references it. Voiding twice returns the existing void, and
// a void left INITIALIZED by an interrupted attempt is authorized again.
func (s *Service) Void(ctx context.Context, ticketNumber string) (*models.Transaction, error) {
	sale, err := s.byTicket(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}
	if sale.TransactionType == models.VOID || (sale.Status != models.APPROVAL && sale.Status != models.CAPTURE) {
		return nil, fmt.Errorf("cannot void %s %s in status %s: %w", sale.TransactionType, sale.TransactionID, sale.Status, ErrInvalidTransition)
	}

	related, err := s.Store.ListTransactionsBySaleTicketNumber(ctx, ticketNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list voids of %s: %w", ticketNumber, err)
	}
	req := ChargeRequest{
		MerchantID:  sale.MerchantID,
		ProcessorID: sale.Processor.ProcessorID,
		Channel:     sale.Channel,
		Amount:      sale.Amount,
	}
	for i := range related {
		void := related[i]
		if void.TransactionType != models.VOID || void.Status == models.DECLINED {
			continue
		}
		if void.Status != models.INITIALIZED {
			return &void, nil
		}
		// An earlier attempt stopped before the gateway answered.
		req.TransactionID = void.TransactionID
		break
	}

	return s.authorize(ctx, req, models.VOID, ticketNumber)
}

func (s *Service) byTicket(ctx context.Context, ticketNumber string) (*models.Transaction, error) {
	tx, found, err := s.Store.GetTransactionByTicketNumber(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("ticket %s: %w", ticketNumber, storage.ErrNotFound)
	}
	return tx, nil
}

// authorize creates the INITIALIZED record, asks the gateway and writes the
// answer back. Every step is safe to repeat with the same transaction ID.
func (s *Service) authorize(ctx context.Context, req ChargeRequest, txType models.TransactionType, saleTicket string) (*models.Transaction, error) {
	if req.MerchantID == "" || req.ProcessorID == "" {
		return nil, fmt.Errorf("merchant_id and processor_id are required: %w", ErrInvalidRequest)
	}

	txID := req.TransactionID
	if txID == "" {
		txID = s.NewID()
	}

	tx, found, err := s.Store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %s: %w", txID, err)
	}
	if found && tx.Status != models.INITIALIZED {
		return tx, nil
	}

	if !found {
		now := s.Now().UnixMilli()
		tx = &models.Transaction{
			TransactionID:    txID,
			TicketNumber:     s.NewID(),
			SaleTicketNumber: saleTicket,
			TransactionType:  txType,
			Status:           models.INITIALIZED,
			MerchantID:       req.MerchantID,
			Processor:        models.ProcessorInfo{ProcessorID: req.ProcessorID},
			Amount:           req.Amount,
			Channel:          req.Channel,
			Created:          now,
			Updated:          now,
		}
		if err := s.Store.CreateTransaction(ctx, tx); err != nil {
			return nil, err
		}
	}

	result, err := s.Gateway.Authorize(ctx, AuthorizationRequest{
		TransactionID:    tx.TransactionID,
		TicketNumber:     tx.TicketNumber,
		SaleTicketNumber: tx.SaleTicketNumber,
		TransactionType:  tx.TransactionType,
		MerchantID:       tx.MerchantID,
		ProcessorID:      tx.Processor.ProcessorID,
		Amount:           tx.Amount,
		Token:            req.Token,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to authorize transaction %s: %w", tx.TransactionID, err)
	}

	status := models.DECLINED
	if result.Approved {
		status = models.APPROVAL
	}
	updated := s.Now().UnixMilli()

	if err := s.Store.UpdateTransaction(ctx, tx.TransactionID, map[string]any{
		"status":        status,
		"approval_code": result.ApprovalCode,
		"response_code": result.ResponseCode,
		"response_text": result.ResponseText,
		"updated":       updated,
	}); err != nil {
		return nil, fmt.Errorf("failed to record authorization of %s: %w", tx.TransactionID, err)
	}

	tx.Status = status
	tx.ApprovalCode = result.ApprovalCode
	tx.ResponseCode = result.ResponseCode
	tx.ResponseText = result.ResponseText
	tx.Updated = updated

	slog.InfoContext(ctx, "transaction authorized",
		"transaction_id", tx.TransactionID,
		"type", tx.TransactionType,
		"status", tx.Status)
	return tx, nil
}
