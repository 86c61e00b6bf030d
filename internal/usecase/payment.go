package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/voltride/paygate/internal/domain/errors"
	"github.com/voltride/paygate/internal/domain/model"
	"github.com/voltride/paygate/internal/domain/repository"
	"github.com/voltride/paygate/internal/pkg/signature"
)

// ServiceProvider is the fixed service_provider value the gateway expects.
const ServiceProvider = "payu_paisa"

// PaymentUseCase builds signed payment requests and reconciles provider
// results against the order store.
type PaymentUseCase struct {
	signer       *signature.Signer
	orders       repository.OrderRepository
	paymentURL   string
	storeTimeout time.Duration
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(signer *signature.Signer, orders repository.OrderRepository, paymentURL string, storeTimeout time.Duration) *PaymentUseCase {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &PaymentUseCase{signer: signer, orders: orders, paymentURL: paymentURL, storeTimeout: storeTimeout}
}

// BuildRequest assembles the signed parameter set for an order. It is a pure
// construction step: nothing is persisted until the callback arrives.
func (u *PaymentUseCase) BuildRequest(order *model.Order, successURL, failureURL string) (*model.PaymentRequest, error) {
	if order.Status.Terminal() {
		return nil, domainErrors.ErrAlreadySettled
	}
	if !ValidateAmount(order.Amount) {
		return nil, domainErrors.ErrInvalidAmount
	}
	if successURL == "" || failureURL == "" {
		return nil, fmt.Errorf("%w: surl/furl", domainErrors.ErrMissingField)
	}

	hash, err := u.signer.PaymentHash(signature.Fields{
		TxnID:       order.ID,
		Amount:      order.Amount,
		ProductInfo: order.ProductInfo,
		FirstName:   order.FirstName,
		Email:       order.Email,
		UDF:         order.UDF,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrMissingField, err)
	}

	params := map[string]string{
		"key":              u.signer.Key(),
		"txnid":            order.ID,
		"amount":           order.Amount,
		"productinfo":      order.ProductInfo,
		"firstname":        order.FirstName,
		"email":            order.Email,
		"phone":            order.Phone,
		"surl":             successURL,
		"furl":             failureURL,
		"hash":             hash,
		"service_provider": ServiceProvider,
	}
	for i, v := range order.UDF {
		params[fmt.Sprintf("udf%d", i+1)] = v
	}

	return &model.PaymentRequest{URL: u.paymentURL, Params: params}, nil
}

// ProcessCallback verifies the provider's asynchronous result and settles the
// order. The digest is recomputed from the payload's own values so tampering
// anywhere in transit flips verification, regardless of what is stored.
func (u *PaymentUseCase) ProcessCallback(ctx context.Context, payload model.CallbackPayload) (*model.Settlement, error) {
	ok, err := u.signer.VerifyCallback(payload.Hash, payload.Status, signature.Fields{
		TxnID:       payload.TxnID,
		Amount:      payload.Amount,
		ProductInfo: payload.ProductInfo,
		FirstName:   payload.FirstName,
		Email:       payload.Email,
		UDF:         payload.UDF,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrMissingField, err)
	}
	if !ok {
		return nil, domainErrors.ErrVerificationFailed
	}

	status := resolveStatus(payload.Status)
	details, err := json.Marshal(payload.Raw)
	if err != nil {
		return nil, fmt.Errorf("encode provider payload: %w", err)
	}

	txn := &model.Transaction{
		PaymentID:     payload.PaymentID,
		TransactionID: payload.TxnID,
		Amount:        payload.Amount,
		Status:        status,
		FirstName:     payload.FirstName,
		Email:         payload.Email,
		Phone:         payload.Phone,
		RawResponse:   details,
	}
	return u.settle(ctx, payload.TxnID, status, details, txn)
}

// ReconcileRemote settles an order from the provider's transaction status API.
// The caller only hands over terminal results; the response arrives over our
// own authenticated query, so there is no digest to verify here.
func (u *PaymentUseCase) ReconcileRemote(ctx context.Context, order model.Order, result *model.GatewayResult) (*model.Settlement, error) {
	status := resolveStatus(result.Status)

	amount := result.Amount
	if amount == "" {
		amount = order.Amount
	}
	txn := &model.Transaction{
		PaymentID:     result.PaymentID,
		TransactionID: order.ID,
		Amount:        amount,
		Status:        status,
		FirstName:     order.FirstName,
		Email:         order.Email,
		Phone:         order.Phone,
		RawResponse:   result.Raw,
	}
	return u.settle(ctx, order.ID, status, result.Raw, txn)
}

func (u *PaymentUseCase) settle(ctx context.Context, orderID string, status model.PaymentStatus, details []byte, txn *model.Transaction) (*model.Settlement, error) {
	ctx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	updated, err := u.orders.Settle(ctx, orderID, status, details, txn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrStoreUnavailable, err)
	}
	if updated {
		return &model.Settlement{OrderID: orderID, PaymentID: txn.PaymentID, Status: status}, nil
	}

	// Zero rows matched: either the order is unknown or it is already
	// terminal. A replayed callback resolves to the recorded outcome without
	// touching the store again.
	existing, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrStoreUnavailable, err)
	}
	return &model.Settlement{OrderID: orderID, PaymentID: txn.PaymentID, Status: existing.Status, Replayed: true}, nil
}

func resolveStatus(providerStatus string) model.PaymentStatus {
	if providerStatus == model.GatewayStatusSuccess {
		return model.PaymentStatusCompleted
	}
	return model.PaymentStatusFailed
}
