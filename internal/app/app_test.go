package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/voltride/paygate/internal/config"
	"github.com/voltride/paygate/internal/test"
	"github.com/voltride/paygate/internal/worker"
)

func testLifecycleParams(t *testing.T, addr string) (lifecycleParams, *test.LifecycleRecorder, *test.ShutdownerStub) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := &test.LifecycleRecorder{}
	shutdowner := &test.ShutdownerStub{Called: make(chan struct{}, 1)}
	facade := &test.ReconcileFacadeStub{}

	params := lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     &http.Server{Addr: addr},
		Worker:     worker.NewReconciler(facade, time.Hour, 15*time.Minute, 1, 1, logger),
		Config:     &config.Config{RunAddress: addr, ShutdownTimeout: time.Second},
	}
	return params, recorder, shutdowner
}

func TestRegisterLifecycle(t *testing.T) {
	t.Run("start and stop", func(t *testing.T) {
		params, recorder, _ := testLifecycleParams(t, "127.0.0.1:0")
		registerLifecycle(params)

		if len(recorder.Hooks) != 1 {
			t.Fatalf("registered %d hooks, want 1", len(recorder.Hooks))
		}
		hook := recorder.Hooks[0]

		if err := hook.OnStart(context.Background()); err != nil {
			t.Fatalf("OnStart() error = %v", err)
		}
		if err := hook.OnStop(context.Background()); err != nil {
			t.Fatalf("OnStop() error = %v", err)
		}
	})

	t.Run("listen failure triggers shutdown", func(t *testing.T) {
		params, recorder, shutdowner := testLifecycleParams(t, "256.256.256.256:99999")
		registerLifecycle(params)

		hook := recorder.Hooks[0]
		if err := hook.OnStart(context.Background()); err != nil {
			t.Fatalf("OnStart() error = %v", err)
		}

		select {
		case <-shutdowner.Called:
		case <-time.After(2 * time.Second):
			t.Fatal("shutdowner was not invoked on listen failure")
		}

		if err := hook.OnStop(context.Background()); err != nil {
			t.Fatalf("OnStop() error = %v", err)
		}
	})
}
