package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("flightsnap", reg)

	m.SearchesInserted.Inc()
	m.RouteFieldChanges.WithLabelValues("fare_classes", "true").Inc()
	m.ErrorsCount.WithLabelValues("insert").Inc()
	m.IngestTime.Observe(0.2)

	if got := testutil.ToFloat64(m.SearchesInserted); got != 1 {
		t.Errorf("searches_inserted_total = %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"flightsnap_searches_inserted_total",
		"flightsnap_route_field_changes_total",
		"flightsnap_errors_total",
		"flightsnap_search_ingest_time_seconds",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	// Two stores in one process must not collide
	a := NewMetrics("flightsnap", prometheus.NewRegistry())
	b := NewMetrics("flightsnap", prometheus.NewRegistry())

	a.RoutesCreated.Add(3)
	if got := testutil.ToFloat64(b.RoutesCreated); got != 0 {
		t.Errorf("second registry sees %v routes, want 0", got)
	}
}
