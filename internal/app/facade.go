package app

import (
	"context"
	"time"

	"github.com/voltride/paygate/internal/domain/model"
	"github.com/voltride/paygate/internal/domain/repository"
	"github.com/voltride/paygate/internal/usecase"
)

// GatewayVerifier queries the payment gateway for a transaction's state.
type GatewayVerifier interface {
	VerifyPayment(ctx context.Context, txnid string) (*model.GatewayResult, error)
}

// Facade aggregates the payment operations exposed to HTTP handlers and the
// background reconciler.
type Facade struct {
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	gateway  GatewayVerifier
	store    repository.Factory
	grace    time.Duration
}

// NewFacade constructs the application facade.
func NewFacade(orders *usecase.OrderUseCase, payments *usecase.PaymentUseCase, gateway GatewayVerifier, store repository.Factory, grace time.Duration) *Facade {
	return &Facade{orders: orders, payments: payments, gateway: gateway, store: store, grace: grace}
}

func (f *Facade) CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.Create(ctx, in)
}

func (f *Facade) Order(ctx context.Context, id string) (*model.Order, []model.Transaction, error) {
	return f.orders.Get(ctx, id)
}

func (f *Facade) InitiatePayment(ctx context.Context, orderID, successURL, failureURL string) (*model.PaymentRequest, error) {
	order, err := f.orders.Find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return f.payments.BuildRequest(order, successURL, failureURL)
}

func (f *Facade) ProcessCallback(ctx context.Context, payload model.CallbackPayload) (*model.Settlement, error) {
	return f.payments.ProcessCallback(ctx, payload)
}

func (f *Facade) PendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.PendingOlderThan(ctx, f.grace, limit)
}

func (f *Facade) VerifyRemote(ctx context.Context, txnid string) (*model.GatewayResult, error) {
	return f.gateway.VerifyPayment(ctx, txnid)
}

func (f *Facade) ReconcileOrder(ctx context.Context, order model.Order, result *model.GatewayResult) (*model.Settlement, error) {
	return f.payments.ReconcileRemote(ctx, order, result)
}

func (f *Facade) Ping(ctx context.Context) error {
	return f.store.Ping(ctx)
}
