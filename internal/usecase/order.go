package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/voltride/paygate/internal/domain/errors"
	"github.com/voltride/paygate/internal/domain/model"
	"github.com/voltride/paygate/internal/domain/repository"
)

// CreateOrderInput carries the storefront fields for a new pending order.
type CreateOrderInput struct {
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	Phone       string
	UDF         [5]string
}

// OrderUseCase encapsulates order intake and lookup.
type OrderUseCase struct {
	orders       repository.OrderRepository
	transactions repository.TransactionRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, transactions repository.TransactionRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, transactions: transactions}
}

// Create registers a new pending order with a generated transaction id.
func (u *OrderUseCase) Create(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	if !ValidateAmount(in.Amount) {
		return nil, domainErrors.ErrInvalidAmount
	}
	if in.FirstName == "" {
		return nil, fmt.Errorf("%w: firstname", domainErrors.ErrMissingField)
	}
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email", domainErrors.ErrMissingField)
	}

	order := &model.Order{
		ID:          uuid.NewString(),
		Amount:      in.Amount,
		ProductInfo: in.ProductInfo,
		FirstName:   in.FirstName,
		Email:       in.Email,
		Phone:       in.Phone,
		UDF:         in.UDF,
	}
	return u.orders.Create(ctx, order)
}

// Find returns an order by its transaction id.
func (u *OrderUseCase) Find(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// Get returns an order with its settlement audit trail.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, []model.Transaction, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	txns, err := u.transactions.ListByOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return order, txns, nil
}

// PendingOlderThan lists orders still pending after the grace period.
func (u *OrderUseCase) PendingOlderThan(ctx context.Context, grace time.Duration, limit int) ([]model.Order, error) {
	return u.orders.ListPendingBefore(ctx, time.Now().Add(-grace), limit)
}
