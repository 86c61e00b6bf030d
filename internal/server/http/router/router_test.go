package router

import (
	"compress/gzip"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/voltride/paygate/internal/config"
	"github.com/voltride/paygate/internal/test"
)

func testEngine(token string) http.Handler {
	cfg := &config.Config{
		APIToken:           token,
		SuccessRedirectURL: "https://shop.test/ok",
		FailureRedirectURL: "https://shop.test/fail",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Setup(test.StorefrontFacadeStub{}, cfg, logger)
}

func TestRouterRoutes(t *testing.T) {
	engine := testEngine("s3cr3t")

	t.Run("health is open", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("callback is open", func(t *testing.T) {
		form := url.Values{}
		form.Set("txnid", "ORD1")
		form.Set("status", "success")
		req := httptest.NewRequest(http.MethodPost, "/api/payment/callback", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != http.StatusFound {
			t.Errorf("status = %d, want 302", w.Code)
		}
	})

	t.Run("order intake requires token", func(t *testing.T) {
		body := `{"amount":"500.00","firstname":"Asha","email":"asha@example.com"}`

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("without token: status = %d, want 401", w.Code)
		}

		req = httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer s3cr3t")
		w = httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("with token: status = %d, want 201, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("initiate requires token", func(t *testing.T) {
		body := `{"order_id":"ORD1","surl":"https://shop.test/ok","furl":"https://shop.test/fail"}`
		req := httptest.NewRequest(http.MethodPost, "/api/payment/initiate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestRouterCompressesResponses(t *testing.T) {
	engine := testEngine("")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("content encoding = %q, want gzip", got)
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("response is not valid gzip: %v", err)
	}
	defer zr.Close()
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("read compressed body: %v", err)
	}
	if !strings.Contains(string(body), "ok") {
		t.Errorf("unexpected body: %s", body)
	}
}
