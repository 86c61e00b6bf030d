package repository

import (
	"context"

	"github.com/voltride/paygate/internal/domain/model"
)

// TransactionRepository reads the append-only settlement audit trail.
// Inserts happen only through OrderRepository.Settle.
type TransactionRepository interface {
	ListByOrder(ctx context.Context, orderID string) ([]model.Transaction, error)
}
