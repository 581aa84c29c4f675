package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func requestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return r
}

func TestRequestIDKeepsCallerHeader(t *testing.T) {
	r := requestIDRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "gateway-abc-123")
	r.ServeHTTP(rec, req)

	if rec.Body.String() != "gateway-abc-123" {
		t.Fatalf("caller id not kept, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("X-Request-ID"); got != "gateway-abc-123" {
		t.Fatalf("response header mismatch, got %q", got)
	}
}

func TestRequestIDMintsUUIDWhenAbsent(t *testing.T) {
	r := requestIDRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	rid := rec.Header().Get("X-Request-ID")
	if _, err := uuid.Parse(rid); err != nil {
		t.Fatalf("expected a uuid request id, got %q: %v", rid, err)
	}
	if rec.Body.String() != rid {
		t.Fatalf("context id %q does not match header %q", rec.Body.String(), rid)
	}
}

func TestRequestIDIgnoresBlankHeader(t *testing.T) {
	r := requestIDRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "   ")
	r.ServeHTTP(rec, req)

	if _, err := uuid.Parse(rec.Header().Get("X-Request-ID")); err != nil {
		t.Fatalf("blank header should be replaced with a uuid, got %q", rec.Header().Get("X-Request-ID"))
	}
}
