package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/voltride/paygate/internal/domain/model"
	"github.com/voltride/paygate/internal/pkg/signature"
)

// ErrTransactionUnknown indicates the gateway has no record of the txnid,
// usually because the customer never reached the payment page.
var ErrTransactionUnknown = errors.New("transaction unknown to gateway")

const commandVerifyPayment = "verify_payment"

// TooManyRequestsError represents a rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations to query the gateway's merchant API.
type Client interface {
	VerifyPayment(ctx context.Context, txnid string) (*model.GatewayResult, error)
}

// HTTPClient implements Client via the gateway's postservice endpoint.
type HTTPClient struct {
	endpoint   *url.URL
	signer     *signature.Signer
	httpClient *http.Client
	logger     *slog.Logger
}

// verifyResponse mirrors the JSON envelope of the verify_payment command.
type verifyResponse struct {
	Status             int                        `json:"status"`
	Msg                string                     `json:"msg"`
	TransactionDetails map[string]json.RawMessage `json:"transaction_details"`
}

type transactionDetail struct {
	MihPayID string `json:"mihpayid"`
	Status   string `json:"status"`
	Amount   string `json:"amt"`
}

// NewHTTPClient creates the gateway merchant API client with default timeout.
func NewHTTPClient(endpoint string, signer *signature.Signer, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		endpoint: parsed,
		signer:   signer,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// VerifyPayment queries the gateway for the current state of a transaction.
func (c *HTTPClient) VerifyPayment(ctx context.Context, txnid string) (*model.GatewayResult, error) {
	form := url.Values{}
	form.Set("key", c.signer.Key())
	form.Set("command", commandVerifyPayment)
	form.Set("var1", txnid)
	form.Set("hash", c.signer.CommandHash(commandVerifyPayment, txnid))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return c.parseResult(txnid, body)
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("gateway error: %s", resp.Status)
	}
}

func (c *HTTPClient) parseResult(txnid string, body []byte) (*model.GatewayResult, error) {
	var envelope verifyResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	if envelope.Status != 1 {
		return nil, fmt.Errorf("gateway rejected command: %s", envelope.Msg)
	}

	raw, ok := envelope.TransactionDetails[txnid]
	if !ok {
		return nil, ErrTransactionUnknown
	}
	var detail transactionDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, fmt.Errorf("decode transaction detail: %w", err)
	}
	if strings.EqualFold(detail.Status, "not found") {
		return nil, ErrTransactionUnknown
	}

	return &model.GatewayResult{
		TxnID:     txnid,
		Status:    detail.Status,
		PaymentID: detail.MihPayID,
		Amount:    detail.Amount,
		Raw:       []byte(raw),
	}, nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
