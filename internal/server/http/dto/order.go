package dto

import "time"

// CreateOrderRequest describes the storefront's order intake payload.
// Amount stays a string end to end; the gateway signs it verbatim.
type CreateOrderRequest struct {
	Amount      string `json:"amount" binding:"required"`
	ProductInfo string `json:"productinfo"`
	FirstName   string `json:"firstname" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	UDF1        string `json:"udf1"`
	UDF2        string `json:"udf2"`
	UDF3        string `json:"udf3"`
	UDF4        string `json:"udf4"`
	UDF5        string `json:"udf5"`
}

// OrderResponse describes an order returned to the storefront.
type OrderResponse struct {
	ID            string                `json:"id"`
	Amount        string                `json:"amount"`
	ProductInfo   string                `json:"productinfo"`
	FirstName     string                `json:"firstname"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	Status        string                `json:"status"`
	PaymentStatus string                `json:"payment_status"`
	CreatedAt     time.Time             `json:"created_at"`
	Transactions  []TransactionResponse `json:"transactions,omitempty"`
}

// TransactionResponse describes one settlement audit entry.
type TransactionResponse struct {
	PaymentID string    `json:"payment_id"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
