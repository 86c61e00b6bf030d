package model

import "time"

// Transaction is the append-only audit record written once per settled order.
// RawResponse keeps the provider payload exactly as received.
type Transaction struct {
	ID            int64
	PaymentID     string
	TransactionID string
	Amount        string
	Status        PaymentStatus
	FirstName     string
	Email         string
	Phone         string
	RawResponse   []byte
	CreatedAt     time.Time
}
