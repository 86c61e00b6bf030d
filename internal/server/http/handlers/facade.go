package handlers

import (
	"context"

	"github.com/voltride/paygate/internal/domain/model"
	"github.com/voltride/paygate/internal/usecase"
)

// OrderFacade encapsulates order intake operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, []model.Transaction, error)
}

// PaymentFacade covers payment initiation and callback reconciliation.
type PaymentFacade interface {
	InitiatePayment(ctx context.Context, orderID, successURL, failureURL string) (*model.PaymentRequest, error)
	ProcessCallback(ctx context.Context, payload model.CallbackPayload) (*model.Settlement, error)
}

// HealthFacade reports store connectivity.
type HealthFacade interface {
	Ping(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	OrderFacade
	PaymentFacade
	HealthFacade
}
