package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Orders() OrderRepository
	Transactions() TransactionRepository
	Ping(ctx context.Context) error
}
