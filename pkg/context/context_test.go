package ctxutil

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestNewContextWithRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/api", nil)
	req.Header.Set("User-Agent", "catalog-test")

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = NewContextWithRequest(ctx, req, "handler", "List")

	if got := GetRequestID(ctx); got != "req-1" {
		t.Errorf("Expected request ID req-1, got %q", got)
	}
	if got := GetModule(ctx); got != "handler" {
		t.Errorf("Expected module handler, got %q", got)
	}
	if got := GetFunction(ctx); got != "List" {
		t.Errorf("Expected function List, got %q", got)
	}
	if got := GetUserAgent(ctx); got != "catalog-test" {
		t.Errorf("Expected user agent catalog-test, got %q", got)
	}
	if GetStartTime(ctx).IsZero() {
		t.Error("Expected start time to be set")
	}
}

func TestContextToMap(t *testing.T) {
	ctx := WithFunction(context.Background(), "service", "Create")
	m := ContextToMap(ctx)

	if m["module"] != "service" || m["function"] != "Create" {
		t.Errorf("Unexpected map %v", m)
	}
	if _, ok := m["request_id"]; ok {
		t.Error("Expected empty request ID to be omitted")
	}
}
