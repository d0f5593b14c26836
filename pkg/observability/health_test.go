package observability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestLiveness tests the liveness probe
func TestLiveness(t *testing.T) {
	checker := NewHealthChecker()

	rec := httptest.NewRecorder()
	checker.Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

// TestReadinessHealthy tests readiness with passing checks
func TestReadinessHealthy(t *testing.T) {
	checker := NewHealthChecker()
	checker.RegisterCheck("storage", func(ctx context.Context) error { return nil })

	rec := httptest.NewRecorder()
	checker.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var status HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if status.Status != StatusHealthy {
		t.Errorf("status = %v, want %v", status.Status, StatusHealthy)
	}
	if status.Dependencies["storage"].Status != StatusHealthy {
		t.Errorf("storage status = %v", status.Dependencies["storage"].Status)
	}
}

// TestReadinessUnhealthy tests readiness with a failing check
func TestReadinessUnhealthy(t *testing.T) {
	checker := NewHealthChecker()
	checker.RegisterCheck("storage", func(ctx context.Context) error {
		return errors.New("snapshot directory unreadable")
	})

	rec := httptest.NewRecorder()
	checker.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}

	var status HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if status.Dependencies["storage"].Message != "snapshot directory unreadable" {
		t.Errorf("message = %v", status.Dependencies["storage"].Message)
	}
}

// TestMustRecover tests panic-to-error conversion
func TestMustRecover(t *testing.T) {
	if err := MustRecover(nil); err != nil {
		t.Errorf("MustRecover(nil) = %v, want nil", err)
	}
	if err := MustRecover("boom"); err == nil {
		t.Error("MustRecover(boom) = nil, want error")
	}
}
