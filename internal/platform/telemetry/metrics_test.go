package telemetry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"retrolog/internal/platform/telemetry"
)

func TestObserveAnalyticsCountsResult(t *testing.T) {
	before := testutil.ToFloat64(telemetry.AnalyticsRequests.WithLabelValues("dashboard", "error"))
	telemetry.ObserveAnalytics("dashboard", time.Now(), errors.New("boom"))
	after := testutil.ToFloat64(telemetry.AnalyticsRequests.WithLabelValues("dashboard", "error"))
	if after-before != 1 {
		t.Fatalf("expected one error observation, got %v", after-before)
	}
}
