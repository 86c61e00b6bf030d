package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/voltride/paygate/internal/domain/errors"
	"github.com/voltride/paygate/internal/domain/model"
	"github.com/voltride/paygate/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on; tests swap in
// a pgxmock pool through the same seam.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type transactionRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Transactions() repository.TransactionRepository {
	return &transactionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            amount TEXT NOT NULL,
            productinfo TEXT NOT NULL DEFAULT '',
            firstname TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            udf1 TEXT NOT NULL DEFAULT '',
            udf2 TEXT NOT NULL DEFAULT '',
            udf3 TEXT NOT NULL DEFAULT '',
            udf4 TEXT NOT NULL DEFAULT '',
            udf5 TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'pending',
            payment_status TEXT NOT NULL DEFAULT 'pending',
            payment_details JSONB,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS transactions (
            id SERIAL PRIMARY KEY,
            payment_id TEXT NOT NULL,
            transaction_id TEXT NOT NULL REFERENCES orders(id),
            amount TEXT NOT NULL,
            status TEXT NOT NULL,
            firstname TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            raw_response JSONB,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_pending ON orders(created_at) WHERE status = 'pending'`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_order ON transactions(transaction_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, amount, productinfo, firstname, email, phone,
                      udf1, udf2, udf3, udf4, udf5,
                      status, payment_status, payment_details, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.Amount, &o.ProductInfo, &o.FirstName, &o.Email, &o.Phone,
		&o.UDF[0], &o.UDF[1], &o.UDF[2], &o.UDF[3], &o.UDF[4],
		&o.Status, &o.PaymentStatus, &o.PaymentDetails, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (id, amount, productinfo, firstname, email, phone, udf1, udf2, udf3, udf4, udf5, status, payment_status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
                   RETURNING created_at, updated_at`
	created := *order
	err := r.storage.pool.QueryRow(ctx, query,
		order.ID, order.Amount, order.ProductInfo, order.FirstName, order.Email, order.Phone,
		order.UDF[0], order.UDF[1], order.UDF[2], order.UDF[3], order.UDF[4],
		model.PaymentStatusPending,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrDuplicateOrder
		}
		return nil, err
	}
	created.Status = model.PaymentStatusPending
	created.PaymentStatus = model.PaymentStatusPending
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// Settle performs the one-shot pending->terminal transition. The conditional
// update and the audit insert share one transaction, so a replayed callback
// matches zero rows and leaves no second transaction behind.
func (r *orderRepository) Settle(ctx context.Context, orderID string, status model.PaymentStatus, details []byte, txn *model.Transaction) (bool, error) {
	var updated bool
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateQuery = `UPDATE orders
                             SET status=$1, payment_status=$1, payment_details=$2, updated_at=NOW()
                             WHERE id=$3 AND status='pending'`
		tag, err := tx.Exec(ctx, updateQuery, status, details, orderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		const insertQuery = `INSERT INTO transactions (payment_id, transaction_id, amount, status, firstname, email, phone, raw_response)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		if _, err := tx.Exec(ctx, insertQuery,
			txn.PaymentID, txn.TransactionID, txn.Amount, txn.Status,
			txn.FirstName, txn.Email, txn.Phone, txn.RawResponse,
		); err != nil {
			return err
		}
		updated = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

func (r *orderRepository) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + `
              FROM orders WHERE status='pending' AND created_at < $1
              ORDER BY created_at LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- TransactionRepository implementation ---

func (r *transactionRepository) ListByOrder(ctx context.Context, orderID string) ([]model.Transaction, error) {
	const query = `SELECT id, payment_id, transaction_id, amount, status, firstname, email, phone, raw_response, created_at
                   FROM transactions WHERE transaction_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		var tr model.Transaction
		if err := rows.Scan(&tr.ID, &tr.PaymentID, &tr.TransactionID, &tr.Amount, &tr.Status,
			&tr.FirstName, &tr.Email, &tr.Phone, &tr.RawResponse, &tr.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// Ping verifies database connectivity.
func (s *Storage) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
