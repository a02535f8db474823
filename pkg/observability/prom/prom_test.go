package prom

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/matzehuels/hamcount/pkg/observability"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

func TestSolveMetrics(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.OnSolveStart(ctx, "gophersat", 9, 310, 1200)
	m.OnSolveComplete(ctx, "gophersat", 3, 200*time.Millisecond, nil)
	m.OnSolveComplete(ctx, "gophersat", -1, time.Second, hcerrors.New(hcerrors.ErrCodeOracle, "boom"))

	if got := testutil.ToFloat64(m.ModelVariables.WithLabelValues("gophersat")); got != 310 {
		t.Errorf("variables = %v, want 310", got)
	}
	if got := testutil.ToFloat64(m.SolvesTotal.WithLabelValues("gophersat", "ok")); got != 1 {
		t.Errorf("ok solves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SolvesTotal.WithLabelValues("gophersat", "ORACLE_FAILURE")); got != 1 {
		t.Errorf("failed solves = %v, want 1", got)
	}

	h, err := m.SolveDuration.GetMetricWithLabelValues("gophersat")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := h.(interface{ Write(*dto.Metric) error }).Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetHistogram().GetSampleCount(); got != 2 {
		t.Errorf("solve duration samples = %d, want 2", got)
	}
}

func TestOrderAndCountMetrics(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.OnOrderComplete(ctx, "pathwidth", 3, time.Second, nil)
	m.OnOrderComplete(ctx, "pathwidth", -1, time.Second, errors.New("plain"))
	m.OnCountComplete(ctx, "paths", time.Millisecond, nil)

	if got := testutil.ToFloat64(m.SeparationWidth.WithLabelValues("pathwidth")); got != 3 {
		t.Errorf("width = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.OrdersTotal.WithLabelValues("pathwidth", "error")); got != 1 {
		t.Errorf("failed orders = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CountsTotal.WithLabelValues("paths", "ok")); got != 1 {
		t.Errorf("counts = %v, want 1", got)
	}
}

func TestCacheMetrics(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.OnCacheHit(ctx, "order")
	m.OnCacheMiss(ctx, "count")
	m.OnCacheMiss(ctx, "count")
	m.OnCacheSet(ctx, "count", 12)

	if got := testutil.ToFloat64(m.CacheRequests.WithLabelValues("count", "miss")); got != 2 {
		t.Errorf("count misses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.CacheBytes.WithLabelValues("count")); got != 12 {
		t.Errorf("bytes = %v, want 12", got)
	}
}

func TestInstall(t *testing.T) {
	m := New()
	m.Install()
	t.Cleanup(observability.Reset)

	observability.Cache().OnCacheHit(context.Background(), "order")
	if got := testutil.ToFloat64(m.CacheRequests.WithLabelValues("order", "hit")); got != 1 {
		t.Errorf("installed hooks did not record, got %v", got)
	}
}

func TestWriteToTextfile(t *testing.T) {
	m := New()
	m.OnCountComplete(context.Background(), "cycles", time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "hamcount.prom")
	if err := m.WriteToTextfile(path); err != nil {
		t.Fatalf("WriteToTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `hamcount_counts_total{mode="cycles",status="ok"} 1`) {
		t.Errorf("textfile missing count series:\n%s", data)
	}
}
