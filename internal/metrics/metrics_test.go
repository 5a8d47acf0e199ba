package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInit(t *testing.T) {
	// Call Init multiple times to test idempotency.
	Init()
	Init()

	if digestComputationsTotal == nil || digestMessageBytesTotal == nil || digestDurationSeconds == nil ||
		httpRequestsTotal == nil || httpRequestDurationSeconds == nil {
		t.Fatal("Init() did not initialize metrics collectors")
	}
}

func TestObserveDigest(t *testing.T) {
	ObserveDigest("unit", StatusOK, 3, time.Millisecond)
	ObserveDigest("unit", StatusOK, 0, time.Millisecond)
	ObserveDigest("unit", StatusError, 10, 0)

	if val := testutil.ToFloat64(digestComputationsTotal.WithLabelValues("unit", StatusOK)); val != 2 {
		t.Errorf("Expected 2 successful unit digests, got %f", val)
	}
	if val := testutil.ToFloat64(digestComputationsTotal.WithLabelValues("unit", StatusError)); val != 1 {
		t.Errorf("Expected 1 failed unit digest, got %f", val)
	}
	if val := testutil.ToFloat64(digestMessageBytesTotal.WithLabelValues("unit")); val != 3 {
		t.Errorf("Expected 3 hashed bytes, got %f", val)
	}
}
