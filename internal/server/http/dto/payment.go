package dto

// InitiatePaymentRequest asks for a signed redirect to the gateway.
type InitiatePaymentRequest struct {
	OrderID    string `json:"order_id" binding:"required"`
	SuccessURL string `json:"surl" binding:"required,url"`
	FailureURL string `json:"furl" binding:"required,url"`
}

// InitiatePaymentResponse carries the redirect target and the signed
// parameter set the storefront posts to the gateway.
type InitiatePaymentResponse struct {
	PaymentURL string            `json:"payment_url"`
	Params     map[string]string `json:"params"`
}
