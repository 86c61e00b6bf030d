package model

import "time"

// PaymentStatus describes the settlement lifecycle of an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Terminal reports whether no further transitions are allowed.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

// Order describes a storefront order entering the payment flow.
//
// Amount is the exact string the storefront submitted. The gateway hashes it
// verbatim, so it must never be reformatted between intake and digest.
type Order struct {
	ID             string
	Amount         string
	ProductInfo    string
	FirstName      string
	Email          string
	Phone          string
	UDF            [5]string
	Status         PaymentStatus
	PaymentStatus  PaymentStatus
	PaymentDetails []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
