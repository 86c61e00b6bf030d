package repository

import (
	"context"
	"time"

	"github.com/voltride/paygate/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	// Settle moves a pending order to the given terminal status and appends the
	// audit transaction in the same database transaction. The update is
	// conditioned on the current status still being pending; Settle reports
	// whether a row actually transitioned, so a replayed callback matches
	// nothing and writes nothing.
	Settle(ctx context.Context, orderID string, status model.PaymentStatus, details []byte, txn *model.Transaction) (bool, error)
	ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
}
