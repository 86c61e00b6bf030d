package test

import (
	"context"
	"time"

	domainErrors "github.com/voltride/paygate/internal/domain/errors"
	"github.com/voltride/paygate/internal/domain/model"
	"github.com/voltride/paygate/internal/domain/repository"
)

// OrderRepositoryStub provides controllable order persistence behaviour.
type OrderRepositoryStub struct {
	CreateFn      func(context.Context, *model.Order) (*model.Order, error)
	GetFn         func(context.Context, string) (*model.Order, error)
	SettleFn      func(context.Context, string, model.PaymentStatus, []byte, *model.Transaction) (bool, error)
	ListPendingFn func(context.Context, time.Time, int) ([]model.Order, error)
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	created := *order
	created.Status = model.PaymentStatusPending
	created.PaymentStatus = model.PaymentStatusPending
	return &created, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return nil, domainErrors.ErrOrderNotFound
}

func (s *OrderRepositoryStub) Settle(ctx context.Context, orderID string, status model.PaymentStatus, details []byte, txn *model.Transaction) (bool, error) {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, orderID, status, details, txn)
	}
	return true, nil
}

func (s *OrderRepositoryStub) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if s.ListPendingFn != nil {
		return s.ListPendingFn(ctx, cutoff, limit)
	}
	return nil, nil
}

// TransactionRepositoryStub serves canned audit trails.
type TransactionRepositoryStub struct {
	ListFn func(context.Context, string) ([]model.Transaction, error)
}

func (s *TransactionRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.Transaction, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, orderID)
	}
	return nil, nil
}

// FactoryStub bundles repository stubs behind the factory interface.
type FactoryStub struct {
	OrderRepo *OrderRepositoryStub
	TxnRepo   *TransactionRepositoryStub
	PingErr   error
}

func (s *FactoryStub) Orders() repository.OrderRepository {
	if s.OrderRepo == nil {
		s.OrderRepo = &OrderRepositoryStub{}
	}
	return s.OrderRepo
}

func (s *FactoryStub) Transactions() repository.TransactionRepository {
	if s.TxnRepo == nil {
		s.TxnRepo = &TransactionRepositoryStub{}
	}
	return s.TxnRepo
}

func (s *FactoryStub) Ping(ctx context.Context) error {
	return s.PingErr
}
