// Package costmodel turns document counts, byte volumes and server counts
// into time, carbon and price figures. Every method is a deterministic pure
// function of its arguments and the cluster constants.
package costmodel

import (
	"github.com/kailas-cloud/shardcost/internal/domain"
	"github.com/kailas-cloud/shardcost/internal/domain/cost"
)

// Model evaluates the cost formulas under a fixed set of cluster constants.
type Model struct {
	params Params
}

// New validates the constants and creates a Model.
func New(params Params) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Model{params: params}, nil
}

// Params returns the cluster constants the model evaluates under.
func (m *Model) Params() Params { return m.params }

// CommunicationCost models moving volumeBytes across the network with
// numServers participating.
//
// Time is volume over bandwidth and is NOT divided by the server count:
// adding servers raises carbon and price linearly (per-node overhead) but
// models no parallel speed-up. The asymmetry is part of the contract.
func (m *Model) CommunicationCost(volumeBytes float64, numServers int64) (cost.QueryCost, error) {
	if volumeBytes < 0 {
		return cost.QueryCost{}, domain.NewInvalidParameter("data_volume_bytes", volumeBytes)
	}
	if numServers <= 0 {
		return cost.QueryCost{}, domain.NewInvalidParameter("num_servers", float64(numServers))
	}

	timeMS := volumeBytes / m.params.BandwidthBytesPerMS
	volumeGB := volumeBytes / 1e9
	servers := float64(numServers)

	return cost.QueryCost{
		TimeMS:          timeMS,
		CarbonGCO2:      volumeGB*m.params.CarbonPerGBTransfer + timeMS*m.params.CarbonPerServerMS*servers,
		PriceUSD:        volumeGB*m.params.PricePerGBTransfer + timeMS*m.params.PricePerServerMS*servers,
		DataVolumeBytes: volumeBytes,
		NumServers:      numServers,
	}, nil
}

// ScanCost models reading numDocuments documents of docSizeBytes each,
// through an index or by full scan, on numServers servers.
func (m *Model) ScanCost(numDocuments, docSizeBytes float64, useIndex bool, numServers int64) (cost.QueryCost, error) {
	if numDocuments < 0 {
		return cost.QueryCost{}, domain.NewInvalidParameter("num_documents", numDocuments)
	}
	if docSizeBytes < 0 {
		return cost.QueryCost{}, domain.NewInvalidParameter("doc_size_bytes", docSizeBytes)
	}
	if numServers <= 0 {
		return cost.QueryCost{}, domain.NewInvalidParameter("num_servers", float64(numServers))
	}

	perDoc := m.params.FullScanTimePerDocMS
	if useIndex {
		perDoc = m.params.IndexAccessTimeMS
	}
	timeMS := numDocuments * perDoc
	servers := float64(numServers)

	return cost.QueryCost{
		TimeMS:          timeMS,
		CarbonGCO2:      timeMS * m.params.CarbonPerServerMS * servers,
		PriceUSD:        timeMS * m.params.PricePerServerMS * servers,
		DataVolumeBytes: numDocuments * docSizeBytes,
		NumDocuments:    numDocuments,
		NumServers:      numServers,
	}, nil
}

// FilterCost models a selection: one scan over the accessed documents plus
// the communication of the matched output bytes back to the coordinator.
func (m *Model) FilterCost(
	totalDocumentsAccessed, docSizeBytes, resultVolumeBytes float64,
	useIndex bool, numServers int64,
) (cost.QueryCost, error) {
	scan, err := m.ScanCost(totalDocumentsAccessed, docSizeBytes, useIndex, numServers)
	if err != nil {
		return cost.QueryCost{}, err
	}
	comm, err := m.CommunicationCost(resultVolumeBytes, numServers)
	if err != nil {
		return cost.QueryCost{}, err
	}
	return scan.Add(comm), nil
}

// NestedLoopJoinCost models a sharded nested-loop join: the outer side is
// scanned and communicated once, the inner side once per loop iteration.
func (m *Model) NestedLoopJoinCost(
	s1Documents, s2Documents float64,
	docSizeLeft, docSizeRight float64,
	c1VolumeBytes, c2VolumeBytes float64,
	numLoops float64,
	numServersLeft, numServersRight int64,
) (cost.QueryCost, error) {
	if numLoops < 0 {
		return cost.QueryCost{}, domain.NewInvalidParameter("num_loops", numLoops)
	}

	outerScan, err := m.ScanCost(s1Documents, docSizeLeft, false, numServersLeft)
	if err != nil {
		return cost.QueryCost{}, err
	}
	innerScan, err := m.ScanCost(s2Documents, docSizeRight, false, numServersRight)
	if err != nil {
		return cost.QueryCost{}, err
	}
	outerComm, err := m.CommunicationCost(c1VolumeBytes, numServersLeft)
	if err != nil {
		return cost.QueryCost{}, err
	}
	innerComm, err := m.CommunicationCost(c2VolumeBytes, numServersRight)
	if err != nil {
		return cost.QueryCost{}, err
	}

	return outerScan.
		Add(innerScan.Scale(numLoops)).
		Add(outerComm).
		Add(innerComm.Scale(numLoops)), nil
}
