package models

import (
	"strings"
)

// TransactionStatus defines the possible states of a transaction.
type TransactionStatus string

const (
	INITIALIZED TransactionStatus = "INITIALIZED"
	APPROVAL    TransactionStatus = "APPROVAL"
	DECLINED    TransactionStatus = "DECLINED"
	CAPTURE     TransactionStatus = "CAPTURE"
)

// TransactionType distinguishes immediate sales from deferred (authorize then capture) flows.
type TransactionType string

const (
	SALE             TransactionType = "SALE"
	PREAUTHORIZATION TransactionType = "PREAUTHORIZATION"
	VOID             TransactionType = "VOID"
)

// IsDeferred reports whether the transaction is settled through a later capture.
func (t TransactionType) IsDeferred() bool {
	return t == PREAUTHORIZATION
}

// CanTransitionTo reports whether moving from s to next respects the monotonic
// lifecycle of the given transaction type. Writing the current status again is
// always allowed so that retried invocations stay idempotent.
func (s TransactionStatus) CanTransitionTo(txType TransactionType, next TransactionStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case INITIALIZED:
		if next == APPROVAL || next == DECLINED {
			return true
		}
	case APPROVAL:
		return txType.IsDeferred() && next == CAPTURE
	}
	return false
}

// IsNotifiable reports whether merchants are told about a transaction in this status.
// INITIALIZED records have not been through the processor yet.
func (s TransactionStatus) IsNotifiable() bool {
	return s == APPROVAL || s == DECLINED || s == CAPTURE
}

// ProcessorInfo identifies the acquirer that authorized the transaction.
type ProcessorInfo struct {
	ProcessorID   string `json:"processor_id" dynamodbav:"processor_id"`
	ProcessorName string `json:"processor_name,omitempty" dynamodbav:"processor_name,omitempty"`
	ProcessorType string `json:"processor_type,omitempty" dynamodbav:"processor_type,omitempty"`
}

// Amount holds the taxed and untaxed parts of a charge.
type Amount struct {
	SubtotalIva  float64 `json:"subtotal_iva" dynamodbav:"subtotal_iva"`
	SubtotalIva0 float64 `json:"subtotal_iva0" dynamodbav:"subtotal_iva0"`
	Iva          float64 `json:"iva" dynamodbav:"iva"`
	Currency     string  `json:"currency" dynamodbav:"currency"`
}

// Total returns the full charged amount.
func (a Amount) Total() float64 {
	return a.SubtotalIva + a.SubtotalIva0 + a.Iva
}

// Transaction is the central aggregate persisted by the record store.
// Timestamps are milliseconds since the epoch.
type Transaction struct {
	TransactionID    string            `json:"transaction_id" dynamodbav:"transaction_id"`
	TicketNumber     string            `json:"ticket_number" dynamodbav:"ticket_number"`
	SaleTicketNumber string            `json:"sale_ticket_number,omitempty" dynamodbav:"sale_ticket_number,omitempty"`
	TransactionType  TransactionType   `json:"transaction_type" dynamodbav:"transaction_type"`
	Status           TransactionStatus `json:"status" dynamodbav:"status"`
	MerchantID       string            `json:"merchant_id" dynamodbav:"merchant_id"`
	Processor        ProcessorInfo     `json:"processor" dynamodbav:"processor"`
	Amount           Amount            `json:"amount" dynamodbav:"amount"`
	Channel          string            `json:"channel,omitempty" dynamodbav:"channel,omitempty"`
	ApprovalCode     string            `json:"approval_code,omitempty" dynamodbav:"approval_code,omitempty"`
	ResponseCode     string            `json:"response_code,omitempty" dynamodbav:"response_code,omitempty"`
	ResponseText     string            `json:"response_text,omitempty" dynamodbav:"response_text,omitempty"`
	Created          int64             `json:"created" dynamodbav:"created"`
	Updated          int64             `json:"updated" dynamodbav:"updated"`
}

// WebCheckoutChannel tags transactions whose notifications go to the
// web checkout service rather than the merchant.
const WebCheckoutChannel = "WEBCHECKOUT"

// HasChannel compares the transaction channel against a known tag, ignoring case.
func (t *Transaction) HasChannel(tag string) bool {
	return strings.EqualFold(strings.TrimSpace(t.Channel), tag)
}

// Merchant holds the notification settings of a merchant.
type Merchant struct {
	MerchantID           string `json:"merchant_id" dynamodbav:"merchant_id"`
	PrivateID            string `json:"private_id" dynamodbav:"private_id"`
	Name                 string `json:"name" dynamodbav:"name"`
	WebhookURL           string `json:"webhook_url,omitempty" dynamodbav:"webhook_url,omitempty"`
	WebhookSigningSecret string `json:"-" dynamodbav:"webhook_signing_secret,omitempty"`
	SyncEnabled          bool   `json:"sync_enabled" dynamodbav:"sync_enabled"`
}

// Processor links a merchant to one of its configured acquirers.
type Processor struct {
	ProcessorID   string `json:"processor_id" dynamodbav:"processor_id"`
	MerchantID    string `json:"merchant_id" dynamodbav:"merchant_id"`
	ProcessorName string `json:"processor_name" dynamodbav:"processor_name"`
	ProcessorType string `json:"processor_type" dynamodbav:"processor_type"`
}

// WebhookPayload is the transport-only job consumed once by the webhook dispatcher.
type WebhookPayload struct {
	Transaction    Transaction `json:"transaction"`
	DestinationURL string      `json:"destination_url"`
	SigningSecret  string      `json:"signing_secret"`
}

// EventType implements signalbus.Typed.
func (WebhookPayload) EventType() string { return "webhook.delivery" }

// SyncEvent is broadcast to other services whenever a transaction changes status.
type SyncEvent struct {
	EventID     string      `json:"event_id"`
	Transaction Transaction `json:"transaction"`
}

// EventType implements signalbus.Typed.
func (SyncEvent) EventType() string { return "transaction.sync" }
