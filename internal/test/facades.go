package test

import (
	"context"

	"github.com/voltride/paygate/internal/domain/model"
	"github.com/voltride/paygate/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateOrderFn func(context.Context, usecase.CreateOrderInput) (*model.Order, error)
	OrderFn       func(context.Context, string) (*model.Order, []model.Transaction, error)
}

// CreateOrder delegates to the provided function or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, in)
	}
	return &model.Order{
		ID:            "ORD1",
		Amount:        in.Amount,
		FirstName:     in.FirstName,
		Email:         in.Email,
		Status:        model.PaymentStatusPending,
		PaymentStatus: model.PaymentStatusPending,
	}, nil
}

// Order returns a predefined order.
func (s OrderFacadeStub) Order(ctx context.Context, id string) (*model.Order, []model.Transaction, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, Amount: "500.00", Status: model.PaymentStatusPending, PaymentStatus: model.PaymentStatusPending}, nil, nil
}

// PaymentFacadeStub simulates payment initiation and callback processing.
type PaymentFacadeStub struct {
	InitiateFn func(context.Context, string, string, string) (*model.PaymentRequest, error)
	CallbackFn func(context.Context, model.CallbackPayload) (*model.Settlement, error)
}

// InitiatePayment executes the configured handler or returns a canned request.
func (s PaymentFacadeStub) InitiatePayment(ctx context.Context, orderID, successURL, failureURL string) (*model.PaymentRequest, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, orderID, successURL, failureURL)
	}
	return &model.PaymentRequest{URL: "https://gateway.test/_payment", Params: map[string]string{"txnid": orderID}}, nil
}

// ProcessCallback executes the configured handler or settles as completed.
func (s PaymentFacadeStub) ProcessCallback(ctx context.Context, payload model.CallbackPayload) (*model.Settlement, error) {
	if s.CallbackFn != nil {
		return s.CallbackFn(ctx, payload)
	}
	return &model.Settlement{OrderID: payload.TxnID, PaymentID: payload.PaymentID, Status: model.PaymentStatusCompleted}, nil
}

// HealthFacadeStub reports configurable store health.
type HealthFacadeStub struct {
	PingFn func(context.Context) error
}

// Ping delegates to the provided function or reports healthy.
func (s HealthFacadeStub) Ping(ctx context.Context) error {
	if s.PingFn != nil {
		return s.PingFn(ctx)
	}
	return nil
}

// StorefrontFacadeStub aggregates stubs for router level tests.
type StorefrontFacadeStub struct {
	OrderFacadeStub
	PaymentFacadeStub
	HealthFacadeStub
}

// ReconcileFacadeStub drives the background reconciler in tests.
type ReconcileFacadeStub struct {
	PendingFn   func(context.Context, int) ([]model.Order, error)
	VerifyFn    func(context.Context, string) (*model.GatewayResult, error)
	ReconcileFn func(context.Context, model.Order, *model.GatewayResult) (*model.Settlement, error)
}

func (s *ReconcileFacadeStub) PendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	return nil, nil
}

func (s *ReconcileFacadeStub) VerifyRemote(ctx context.Context, txnid string) (*model.GatewayResult, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, txnid)
	}
	return &model.GatewayResult{TxnID: txnid, Status: model.GatewayStatusSuccess}, nil
}

func (s *ReconcileFacadeStub) ReconcileOrder(ctx context.Context, order model.Order, result *model.GatewayResult) (*model.Settlement, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, order, result)
	}
	return &model.Settlement{OrderID: order.ID, Status: model.PaymentStatusCompleted}, nil
}
