package shardcost

import (
	"errors"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	est, err := New()
	if err != nil {
		t.Fatalf("New(): %v", err)
	}

	st := est.Statistics()
	if st.NumServers != 1000 {
		t.Errorf("NumServers = %d, want 1000", st.NumServers)
	}
	if st.NumStockEntries != st.NumProducts*st.NumWarehouses {
		t.Errorf("derived NumStockEntries = %d", st.NumStockEntries)
	}
}

func TestNew_InvalidCostParams(t *testing.T) {
	p := DefaultParams()
	p.BandwidthBytesPerMS = 0

	_, err := New(WithCostParams(p))
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestWithServers(t *testing.T) {
	est, err := New(WithServers(50))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := est.Statistics().NumServers; got != 50 {
		t.Errorf("NumServers = %d, want 50", got)
	}
}

func TestWithStatistics_Renormalized(t *testing.T) {
	st := DefaultStatistics()
	st.NumProducts = 10
	st.NumWarehouses = 4

	est, err := New(WithStatistics(st))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := est.Statistics().NumStockEntries; got != 40 {
		t.Errorf("NumStockEntries = %d, want 40", got)
	}
}

func TestEstimator_Sizes(t *testing.T) {
	est, _ := New()

	report, err := est.Sizes(1)
	if err != nil {
		t.Fatalf("Sizes(1): %v", err)
	}
	if report.TotalSizeBytes <= 0 {
		t.Errorf("TotalSizeBytes = %d, want positive", report.TotalSizeBytes)
	}

	if _, err := est.Sizes(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Sizes(42) err = %v, want ErrNotFound", err)
	}
}

func TestEstimator_RunQuery(t *testing.T) {
	est, _ := New()

	res, err := est.RunQuery(1, 1, RunOptions{Strategy: ShardingStrategy{"Stock": "IDP"}})
	if err != nil {
		t.Fatalf("RunQuery: %v", err)
	}
	if res.Filter == nil || res.Filter.S1 != 1 {
		t.Errorf("Filter = %+v, want routed point lookup", res.Filter)
	}

	if _, err := est.RunQuery(1, 99, RunOptions{}); !errors.Is(err, ErrUnknownQuery) {
		t.Errorf("unknown query err = %v, want ErrUnknownQuery", err)
	}
}

func TestEstimator_Analyze(t *testing.T) {
	est, _ := New()

	report, err := est.Analyze(2, RunOptions{})
	if err != nil {
		t.Fatalf("Analyze(2): %v", err)
	}
	if len(report.Queries) != NumQueries {
		t.Errorf("Queries len = %d, want %d", len(report.Queries), NumQueries)
	}
	if len(report.Sharding) == 0 {
		t.Error("Sharding is empty")
	}
}
