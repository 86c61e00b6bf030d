package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/voltride/paygate/internal/adapter/gateway"
	"github.com/voltride/paygate/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the worker.
type PaymentFacade interface {
	PendingOrders(ctx context.Context, limit int) ([]model.Order, error)
	VerifyRemote(ctx context.Context, txnid string) (*model.GatewayResult, error)
	ReconcileOrder(ctx context.Context, order model.Order, result *model.GatewayResult) (*model.Settlement, error)
}

// Reconciler sweeps orders stuck pending past the grace period and resolves
// them through the gateway's status API. Terminal results go through the same
// settle path the webhook uses, so a late callback and a sweep can never both
// write.
type Reconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	grace        time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconcile worker pool.
func NewReconciler(facade PaymentFacade, pollInterval, grace time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		grace:        grace,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.PendingOrders(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch pending orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- order:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			r.processOrder(ctx, order)
		}
	}
}

func (r *Reconciler) processOrder(ctx context.Context, order model.Order) {
	result, err := r.facade.VerifyRemote(ctx, order.ID)
	if err != nil {
		switch e := err.(type) {
		case gateway.TooManyRequestsError:
			r.logger.Warn("gateway rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, gateway.ErrTransactionUnknown) {
				// The customer may never have reached the payment page;
				// leave the order pending for the next sweep.
				return
			}
			r.logger.Error("gateway verify failed", slog.String("order", order.ID), slog.String("error", err.Error()))
		}
		return
	}

	switch result.Status {
	case model.GatewayStatusSuccess, model.GatewayStatusFailure:
	default:
		// Still in flight at the gateway.
		return
	}

	settlement, err := r.facade.ReconcileOrder(ctx, order, result)
	if err != nil {
		r.logger.Error("reconcile order failed", slog.String("order", order.ID), slog.String("error", err.Error()))
		return
	}
	if !settlement.Replayed {
		r.logger.Info("order reconciled",
			slog.String("order", settlement.OrderID),
			slog.String("status", string(settlement.Status)),
		)
	}
}
