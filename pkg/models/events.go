package models

// ChangeKind is the kind of mutation reported by the change feed.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "INSERT"
	ChangeModify ChangeKind = "MODIFY"
	ChangeRemove ChangeKind = "REMOVE"
)

// ChangeEvent is the immutable record the store emits for each committed mutation.
// OldImage is nil for inserts.
type ChangeEvent struct {
	EventID  string
	Kind     ChangeKind
	NewImage *Transaction
	OldImage *Transaction
}

// StatusChanged reports whether the mutation moved the transaction to a new status.
func (e ChangeEvent) StatusChanged() bool {
	if e.NewImage == nil {
		return false
	}
	if e.OldImage == nil {
		return true
	}
	return e.OldImage.Status != e.NewImage.Status
}

// AnalyticsRecord is the flat projection of a transaction mirrored to analytics streams.
type AnalyticsRecord struct {
	TransactionID    string  `json:"transaction_id"`
	TicketNumber     string  `json:"ticket_number"`
	SaleTicketNumber string  `json:"sale_ticket_number,omitempty"`
	TransactionType  string  `json:"transaction_type"`
	Status           string  `json:"status"`
	MerchantID       string  `json:"merchant_id"`
	ProcessorID      string  `json:"processor_id"`
	ProcessorName    string  `json:"processor_name,omitempty"`
	Channel          string  `json:"channel,omitempty"`
	Currency         string  `json:"currency"`
	SubtotalIva      float64 `json:"subtotal_iva"`
	SubtotalIva0     float64 `json:"subtotal_iva0"`
	Iva              float64 `json:"iva"`
	TotalAmount      float64 `json:"total_amount"`
	ResponseCode     string  `json:"response_code,omitempty"`
	Created          int64   `json:"created"`
	Updated          int64   `json:"updated"`
}

// ToAnalyticsRecord flattens a transaction snapshot.
func ToAnalyticsRecord(tx *Transaction) AnalyticsRecord {
	return AnalyticsRecord{
		TransactionID:    tx.TransactionID,
		TicketNumber:     tx.TicketNumber,
		SaleTicketNumber: tx.SaleTicketNumber,
		TransactionType:  string(tx.TransactionType),
		Status:           string(tx.Status),
		MerchantID:       tx.MerchantID,
		ProcessorID:      tx.Processor.ProcessorID,
		ProcessorName:    tx.Processor.ProcessorName,
		Channel:          tx.Channel,
		Currency:         tx.Amount.Currency,
		SubtotalIva:      tx.Amount.SubtotalIva,
		SubtotalIva0:     tx.Amount.SubtotalIva0,
		Iva:              tx.Amount.Iva,
		TotalAmount:      tx.Amount.Total(),
		ResponseCode:     tx.ResponseCode,
		Created:          tx.Created,
		Updated:          tx.Updated,
	}
}
