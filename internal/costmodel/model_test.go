package costmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/shardcost/internal/domain"
)

func newModel(t *testing.T) *Model {
	t.Helper()
	m, err := New(DefaultParams())
	require.NoError(t, err)
	return m
}

func TestNew_RejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.BandwidthBytesPerMS = 0
	_, err := New(p)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestParamsValidate_EachConstant(t *testing.T) {
	zero := func(mutate func(*Params)) Params {
		p := DefaultParams()
		mutate(&p)
		return p
	}
	cases := map[string]Params{
		"bandwidth": zero(func(p *Params) { p.BandwidthBytesPerMS = 0 }),
		"carbon_gb": zero(func(p *Params) { p.CarbonPerGBTransfer = -1 }),
		"price_gb":  zero(func(p *Params) { p.PricePerGBTransfer = 0 }),
		"carbon_ms": zero(func(p *Params) { p.CarbonPerServerMS = 0 }),
		"price_ms":  zero(func(p *Params) { p.PricePerServerMS = 0 }),
		"index":     zero(func(p *Params) { p.IndexAccessTimeMS = 0 }),
		"full_scan": zero(func(p *Params) { p.FullScanTimePerDocMS = 0 }),
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, p.Validate(), domain.ErrInvalidParameter)
		})
	}
	assert.NoError(t, DefaultParams().Validate())
}

func TestCommunicationCost_TimeFromBandwidth(t *testing.T) {
	m := newModel(t)

	// 125000 bytes at 125000 bytes/ms is one millisecond.
	c, err := m.CommunicationCost(125_000, 1)
	require.NoError(t, err)

	assert.Equal(t, 1.0, c.TimeMS)
	assert.Equal(t, 125_000.0, c.DataVolumeBytes)
	assert.Equal(t, int64(1), c.NumServers)

	volumeGB := 125_000.0 / 1e9
	assert.InDelta(t, volumeGB*11+1.0*1.25e-5, c.CarbonGCO2, 1e-12)
	assert.InDelta(t, volumeGB*0.09+1.0*1.4e-6, c.PriceUSD, 1e-12)
}

func TestCommunicationCost_ServersScaleOverheadNotTime(t *testing.T) {
	m := newModel(t)

	one, err := m.CommunicationCost(1e9, 1)
	require.NoError(t, err)
	thousand, err := m.CommunicationCost(1e9, 1000)
	require.NoError(t, err)

	assert.Equal(t, one.TimeMS, thousand.TimeMS, "time is volume over bandwidth, servers add no speed-up")
	assert.Greater(t, thousand.CarbonGCO2, one.CarbonGCO2)
	assert.Greater(t, thousand.PriceUSD, one.PriceUSD)
}

func TestCommunicationCost_Invalid(t *testing.T) {
	m := newModel(t)
	_, err := m.CommunicationCost(-1, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	_, err = m.CommunicationCost(1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestScanCost_IndexVersusFullScan(t *testing.T) {
	m := newModel(t)

	indexed, err := m.ScanCost(1000, 100, true, 1)
	require.NoError(t, err)
	scanned, err := m.ScanCost(1000, 100, false, 1)
	require.NoError(t, err)

	assert.Equal(t, 1.0, indexed.TimeMS)  // 1000 * 0.001
	assert.Equal(t, 10.0, scanned.TimeMS) // 1000 * 0.01
	assert.Equal(t, 100_000.0, indexed.DataVolumeBytes)
	assert.Equal(t, 1000.0, indexed.NumDocuments)
}

func TestFilterCost_IsScanPlusCommunication(t *testing.T) {
	m := newModel(t)

	scan, err := m.ScanCost(1000, 100, true, 10)
	require.NoError(t, err)
	comm, err := m.CommunicationCost(50_000, 10)
	require.NoError(t, err)

	filter, err := m.FilterCost(1000, 100, 50_000, true, 10)
	require.NoError(t, err)

	assert.Equal(t, scan.Add(comm), filter)
}

func TestNestedLoopJoinCost_LoopWeighted(t *testing.T) {
	m := newModel(t)

	outerScan, err := m.ScanCost(1000, 100, false, 10)
	require.NoError(t, err)
	innerScan, err := m.ScanCost(500, 50, false, 1)
	require.NoError(t, err)
	outerComm, err := m.CommunicationCost(10_000, 10)
	require.NoError(t, err)
	innerComm, err := m.CommunicationCost(2_000, 1)
	require.NoError(t, err)

	want := outerScan.Add(innerScan.Scale(5)).Add(outerComm).Add(innerComm.Scale(5))

	got, err := m.NestedLoopJoinCost(1000, 500, 100, 50, 10_000, 2_000, 5, 10, 1)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestNestedLoopJoinCost_NegativeLoops(t *testing.T) {
	m := newModel(t)
	_, err := m.NestedLoopJoinCost(1, 1, 1, 1, 1, 1, -1, 1, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}
