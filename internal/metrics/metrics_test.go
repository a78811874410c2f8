package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserverCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	o := NewObserver(reg)

	o.CommandExecuted("GET", 2*time.Millisecond)
	o.CommandExecuted("GET", time.Millisecond)
	o.ReplyNormalized("Get")
	o.NormalizationFailed("Get", "encoding")

	if got := testutil.ToFloat64(o.commandCount.WithLabelValues("GET")); got != 2 {
		t.Errorf("commands_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(o.normalized.WithLabelValues("Get")); got != 1 {
		t.Errorf("replies_normalized_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(o.failures.WithLabelValues("Get", "encoding")); got != 1 {
		t.Errorf("normalization_failures_total = %v, want 1", got)
	}
}

func TestObserverDoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewObserver(reg)
	defer func() {
		if recover() == nil {
			t.Error("expected duplicate registration to panic")
		}
	}()
	NewObserver(reg)
}
