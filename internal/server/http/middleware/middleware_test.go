package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTokenRequired(t *testing.T) {
	newEngine := func(expected string) *gin.Engine {
		engine := gin.New()
		engine.Use(TokenRequired(expected))
		engine.GET("/secured", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		return engine
	}

	tests := []struct {
		name     string
		expected string
		header   string
		want     int
	}{
		{name: "valid token", expected: "s3cr3t", header: "Bearer s3cr3t", want: http.StatusOK},
		{name: "prefix is case insensitive", expected: "s3cr3t", header: "bearer s3cr3t", want: http.StatusOK},
		{name: "wrong token", expected: "s3cr3t", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "missing header", expected: "s3cr3t", header: "", want: http.StatusUnauthorized},
		{name: "token without scheme", expected: "s3cr3t", header: "s3cr3t", want: http.StatusUnauthorized},
		{name: "guard disabled when unconfigured", expected: "", header: "", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secured", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newEngine(tt.expected).ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusTeapot, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	entry := buf.String()
	if !strings.Contains(entry, `"path":"/ping"`) {
		t.Errorf("log entry missing path: %s", entry)
	}
	if !strings.Contains(entry, `"status":418`) {
		t.Errorf("log entry missing status: %s", entry)
	}
}

func TestDecompressRequest(t *testing.T) {
	engine := gin.New()
	engine.Use(DecompressRequest())
	engine.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, string(body))
	})

	t.Run("gzip body is transparently decompressed", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write([]byte(`{"amount":"500.00"}`)); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}

		req := httptest.NewRequest(http.MethodPost, "/echo", &buf)
		req.Header.Set("Content-Encoding", "gzip")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if w.Body.String() != `{"amount":"500.00"}` {
			t.Errorf("body = %q", w.Body.String())
		}
	})

	t.Run("plain body passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("plain"))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		if w.Code != http.StatusOK || w.Body.String() != "plain" {
			t.Errorf("status = %d body = %q", w.Code, w.Body.String())
		}
	})

	t.Run("corrupt gzip rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("not gzip"))
		req.Header.Set("Content-Encoding", "gzip")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
