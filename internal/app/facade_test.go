package app

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/voltride/paygate/internal/domain/errors"
	"github.com/voltride/paygate/internal/domain/model"
	"github.com/voltride/paygate/internal/pkg/signature"
	"github.com/voltride/paygate/internal/test"
	"github.com/voltride/paygate/internal/usecase"
)

type gatewayStub struct {
	verifyFn func(context.Context, string) (*model.GatewayResult, error)
}

func (s *gatewayStub) VerifyPayment(ctx context.Context, txnid string) (*model.GatewayResult, error) {
	if s.verifyFn != nil {
		return s.verifyFn(ctx, txnid)
	}
	return &model.GatewayResult{TxnID: txnid, Status: model.GatewayStatusSuccess}, nil
}

func newTestFacade(t *testing.T, store *test.FactoryStub, gw GatewayVerifier) *Facade {
	t.Helper()
	signer, err := signature.NewSigner("kJBxx7", "s3cr3tSalt")
	if err != nil {
		t.Fatalf("NewSigner() error = %v", err)
	}
	orders := usecase.NewOrderUseCase(store.Orders(), store.Transactions())
	payments := usecase.NewPaymentUseCase(signer, store.Orders(), "https://secure.payu.in/_payment", time.Second)
	return NewFacade(orders, payments, gw, store, 15*time.Minute)
}

func TestFacadeInitiatePayment(t *testing.T) {
	t.Run("builds request for pending order", func(t *testing.T) {
		store := &test.FactoryStub{OrderRepo: &test.OrderRepositoryStub{
			GetFn: func(_ context.Context, id string) (*model.Order, error) {
				return &model.Order{ID: id, Amount: "500.00", FirstName: "Asha", Email: "asha@example.com", Status: model.PaymentStatusPending}, nil
			},
		}}
		facade := newTestFacade(t, store, &gatewayStub{})

		req, err := facade.InitiatePayment(context.Background(), "ORD1", "https://shop.test/ok", "https://shop.test/fail")
		if err != nil {
			t.Fatalf("InitiatePayment() error = %v", err)
		}
		if req.Params["txnid"] != "ORD1" || req.Params["hash"] == "" {
			t.Errorf("unexpected params: %+v", req.Params)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		store := &test.FactoryStub{OrderRepo: &test.OrderRepositoryStub{}}
		facade := newTestFacade(t, store, &gatewayStub{})

		_, err := facade.InitiatePayment(context.Background(), "missing", "https://shop.test/ok", "https://shop.test/fail")
		if !errors.Is(err, domainErrors.ErrOrderNotFound) {
			t.Errorf("error = %v, want ErrOrderNotFound", err)
		}
	})

	t.Run("settled order", func(t *testing.T) {
		store := &test.FactoryStub{OrderRepo: &test.OrderRepositoryStub{
			GetFn: func(_ context.Context, id string) (*model.Order, error) {
				return &model.Order{ID: id, Amount: "500.00", Status: model.PaymentStatusCompleted}, nil
			},
		}}
		facade := newTestFacade(t, store, &gatewayStub{})

		_, err := facade.InitiatePayment(context.Background(), "ORD1", "https://shop.test/ok", "https://shop.test/fail")
		if !errors.Is(err, domainErrors.ErrAlreadySettled) {
			t.Errorf("error = %v, want ErrAlreadySettled", err)
		}
	})
}

func TestFacadePendingOrders(t *testing.T) {
	var gotCutoff time.Time
	store := &test.FactoryStub{OrderRepo: &test.OrderRepositoryStub{
		ListPendingFn: func(_ context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
			gotCutoff = cutoff
			return []model.Order{{ID: "ORD1"}}, nil
		},
	}}
	facade := newTestFacade(t, store, &gatewayStub{})

	orders, err := facade.PendingOrders(context.Background(), 8)
	if err != nil {
		t.Fatalf("PendingOrders() error = %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders))
	}
	if time.Since(gotCutoff) < 14*time.Minute {
		t.Errorf("cutoff %v ignores the grace period", gotCutoff)
	}
}

func TestFacadeVerifyRemote(t *testing.T) {
	gw := &gatewayStub{verifyFn: func(_ context.Context, txnid string) (*model.GatewayResult, error) {
		return &model.GatewayResult{TxnID: txnid, Status: model.GatewayStatusFailure, PaymentID: "403993715531"}, nil
	}}
	store := &test.FactoryStub{}
	facade := newTestFacade(t, store, gw)

	result, err := facade.VerifyRemote(context.Background(), "ORD1")
	if err != nil {
		t.Fatalf("VerifyRemote() error = %v", err)
	}
	if result.Status != model.GatewayStatusFailure {
		t.Errorf("status = %q, want failure", result.Status)
	}
}

func TestFacadeReconcileOrder(t *testing.T) {
	var settled bool
	store := &test.FactoryStub{OrderRepo: &test.OrderRepositoryStub{
		SettleFn: func(context.Context, string, model.PaymentStatus, []byte, *model.Transaction) (bool, error) {
			settled = true
			return true, nil
		},
	}}
	facade := newTestFacade(t, store, &gatewayStub{})

	order := model.Order{ID: "ORD1", Amount: "500.00", Status: model.PaymentStatusPending}
	result := &model.GatewayResult{TxnID: "ORD1", Status: model.GatewayStatusSuccess, PaymentID: "403993715531"}
	settlement, err := facade.ReconcileOrder(context.Background(), order, result)
	if err != nil {
		t.Fatalf("ReconcileOrder() error = %v", err)
	}
	if !settled {
		t.Error("order was not settled")
	}
	if settlement.Status != model.PaymentStatusCompleted {
		t.Errorf("status = %q, want completed", settlement.Status)
	}
}

func TestFacadePing(t *testing.T) {
	store := &test.FactoryStub{PingErr: errors.New("down")}
	facade := newTestFacade(t, store, &gatewayStub{})

	if err := facade.Ping(context.Background()); err == nil {
		t.Error("expected ping failure to propagate")
	}
}
