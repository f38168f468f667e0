package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chris/card-transaction-pipeline/pkg/models"
)

const (
	HeaderID              = "X-Kushki-Id"
	HeaderKey             = "X-Kushki-Key"
	HeaderSignature       = "X-Kushki-Signature"
	HeaderSimpleSignature = "X-Kushki-SimpleSignature"

	// WebCheckoutChannel routes deliveries to the configured checkout URL
	// instead of the merchant destination.
	WebCheckoutChannel = models.WebCheckoutChannel

	DefaultTimeout = 10 * time.Second

	maxBodyExcerpt = 512
)

var (
	// ErrDeliveryFailed is returned for transport errors and non-2xx responses.
	ErrDeliveryFailed = errors.New("webhook delivery failed")
	// ErrNoDestination is returned when no URL could be resolved for a payload.
	ErrNoDestination = errors.New("webhook destination is empty")
)

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Clock returns the current time.
type Clock func() time.Time

// DeliveryResult describes an accepted delivery.
type DeliveryResult struct {
	Destination string
	StatusCode  int
	Timestamp   int64
}

// Dispatcher sends signed transaction notifications. It performs no retries;
// redelivery belongs to the queue feeding it.
type Dispatcher struct {
	Client         HTTPClient
	WebCheckoutURL string
	Now            Clock
}

// NewDispatcher creates a Dispatcher with an http.Client bounded by timeout.
func NewDispatcher(webCheckoutURL string, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		Client:         &http.Client{Timeout: timeout},
		WebCheckoutURL: webCheckoutURL,
		Now:            time.Now,
	}
}

// Destination resolves where the payload is delivered.
func (d *Dispatcher) Destination(payload models.WebhookPayload) string {
	if payload.Transaction.HasChannel(WebCheckoutChannel) {
		return d.WebCheckoutURL
	}
	return payload.DestinationURL
}

// Deliver posts the transaction snapshot to its destination.
func (d *Dispatcher) Deliver(ctx context.Context, payload models.WebhookPayload) (*DeliveryResult, error) {
	tx := payload.Transaction

	destination := d.Destination(payload)
	if destination == "" {
		return nil, fmt.Errorf("failed to deliver transaction %s: %w", tx.TransactionID, ErrNoDestination)
	}

	timestamp := d.now().UnixMilli()

	body, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction %s: %w", tx.TransactionID, err)
	}
	signature, simpleSignature := Sign(body, timestamp, payload.SigningSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderID, strconv.FormatInt(timestamp, 10))
	req.Header.Set(HeaderKey, tx.MerchantID)
	req.Header.Set(HeaderSignature, signature)
	req.Header.Set(HeaderSimpleSignature, simpleSignature)

	resp, err := d.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %w", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyExcerpt))
		return nil, fmt.Errorf("%w: status=%s body=%s", ErrDeliveryFailed, resp.Status, strings.TrimSpace(string(excerpt)))
	}

	slog.InfoContext(ctx, "webhook delivered",
		"transaction_id", tx.TransactionID,
		"merchant_id", tx.MerchantID,
		"status_code", resp.StatusCode)

	return &DeliveryResult{
		Destination: destination,
		StatusCode:  resp.StatusCode,
		Timestamp:   timestamp,
	}, nil
}

func (d *Dispatcher) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d *Dispatcher) client() HTTPClient {
	if d.Client == nil {
		return &http.Client{Timeout: DefaultTimeout}
	}
	return d.Client
}
