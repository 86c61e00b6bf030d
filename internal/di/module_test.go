package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/voltride/paygate/internal/adapter/gateway"
	"github.com/voltride/paygate/internal/app"
	"github.com/voltride/paygate/internal/config"
	"github.com/voltride/paygate/internal/domain/model"
	"github.com/voltride/paygate/internal/domain/repository"
	"github.com/voltride/paygate/internal/storage/postgres"
	"github.com/voltride/paygate/internal/test"
)

type gatewayClientStub struct{}

func (gatewayClientStub) VerifyPayment(_ context.Context, txnid string) (*model.GatewayResult, error) {
	return &model.GatewayResult{TxnID: txnid, Status: model.GatewayStatusSuccess}, nil
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		MerchantKey:        "kJBxx7",
		MerchantSalt:       "s3cr3tSalt",
		GatewayPaymentURL:  "https://secure.payu.in/_payment",
		GatewayInfoURL:     "https://info.payu.in/merchant/postservice?form=2",
		SuccessRedirectURL: "https://shop.test/ok",
		FailureRedirectURL: "https://shop.test/fail",
		StoreTimeout:       time.Second,
		ReconcileInterval:  time.Millisecond,
		ReconcileBatch:     1,
		ReconcileGrace:     time.Minute,
		WorkerPoolSize:     1,
		ShutdownTimeout:    time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := &test.FactoryStub{}

	var facade *app.Facade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.OrderRepository(store.Orders())),
			fx.Replace(repository.TransactionRepository(store.Transactions())),
			fx.Replace(repository.Factory(store)),
			fx.Replace(gateway.Client(gatewayClientStub{})),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected application facade instance")
	}
}
