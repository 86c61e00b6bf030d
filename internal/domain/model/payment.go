package model

// GatewayStatusSuccess is the literal status the provider reports for a paid
// transaction; anything else on a terminal callback resolves to failed.
// GatewayStatusFailure is what the status API reports for a declined one.
const (
	GatewayStatusSuccess = "success"
	GatewayStatusFailure = "failure"
)

// PaymentRequest is the redirect target plus the signed parameter set the
// storefront forwards to the gateway.
type PaymentRequest struct {
	URL    string
	Params map[string]string
}

// CallbackPayload carries the provider's asynchronous result exactly as posted.
// Raw holds every received form field for the audit trail.
type CallbackPayload struct {
	Status      string
	TxnID       string
	PaymentID   string
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	Phone       string
	UDF         [5]string
	Hash        string
	Raw         map[string]string
}

// Settlement reports the outcome of reconciling a verified provider result.
// Replayed is set when the order was already terminal and nothing was written.
type Settlement struct {
	OrderID   string
	PaymentID string
	Status    PaymentStatus
	Replayed  bool
}

// GatewayResult is the provider's answer to a transaction status query.
type GatewayResult struct {
	TxnID     string
	Status    string
	PaymentID string
	Amount    string
	Raw       []byte
}
