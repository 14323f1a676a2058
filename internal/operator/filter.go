package operator

import (
	"github.com/kailas-cloud/shardcost/internal/costmodel"
	"github.com/kailas-cloud/shardcost/internal/domain/collection"
	"github.com/kailas-cloud/shardcost/internal/domain/cost"
	"github.com/kailas-cloud/shardcost/internal/domain/stats"
)

// Filter estimates single-collection selection queries.
type Filter struct {
	stats stats.Statistics
	model *costmodel.Model
}

// NewFilter creates a filter operator.
func NewFilter(st stats.Statistics, model *costmodel.Model) *Filter {
	return &Filter{stats: st, model: model}
}

// FilterRequest describes the selection to estimate.
type FilterRequest struct {
	Collection  *collection.Collection
	FilterKeys  []string
	OutputKeys  []string
	ShardingKey string
	Selectivity float64
	UseIndex    bool
}

// FilterResult reports the phase counts, volumes and cost of a selection.
// S1 is the number of servers the predicate is sent to, O1 the expected
// match count, C1 the communicated volume. Immutable once returned.
type FilterResult struct {
	S1                 int64          `json:"s1"`
	O1                 int64          `json:"o1"`
	InputDocSizeBytes  int64          `json:"input_doc_size_bytes"`
	OutputDocSizeBytes int64          `json:"output_doc_size_bytes"`
	C1VolumeBytes      int64          `json:"c1_volume_bytes"`
	ShardingKey        string         `json:"sharding_key,omitempty"`
	IndexUsed          bool           `json:"index_used"`
	Cost               cost.QueryCost `json:"cost"`
}

// Estimate computes the cost of the selection.
//
// Routing: when the collection's sharding key appears among the filter keys
// the predicate reaches exactly one shard (S1=1), otherwise it broadcasts to
// every server. Routing reduces the communication fan-out only; the scan
// term always covers the full document count.
func (f *Filter) Estimate(req FilterRequest) (FilterResult, error) {
	if err := validateCollection("target", req.Collection); err != nil {
		return FilterResult{}, err
	}
	if err := validateSelectivity("selectivity", req.Selectivity); err != nil {
		return FilterResult{}, err
	}
	if err := validateServers(f.stats.NumServers); err != nil {
		return FilterResult{}, err
	}

	s1 := f.stats.NumServers
	if routed(req.ShardingKey, req.FilterKeys) {
		s1 = 1
	}

	o1 := int64(float64(req.Collection.DocumentCount()) * req.Selectivity)

	sch := req.Collection.Schema()
	inputSize := projectedInputSize(sch, req.OutputKeys, req.FilterKeys, "")
	outputSize := projectedOutputSize(sch, req.OutputKeys)

	// Reported volume C1 = #S1 * size(S1) + #O1 * size(O1). Only the
	// returned bytes (#O1 * size(O1)) travel over the wire; the scan side
	// of C1 is local to each shard and priced by the scan term.
	c1 := s1*inputSize + o1*outputSize

	queryCost, err := f.model.FilterCost(
		float64(req.Collection.DocumentCount()),
		float64(inputSize),
		float64(o1*outputSize),
		req.UseIndex,
		s1,
	)
	if err != nil {
		return FilterResult{}, err
	}

	return FilterResult{
		S1:                 s1,
		O1:                 o1,
		InputDocSizeBytes:  inputSize,
		OutputDocSizeBytes: outputSize,
		C1VolumeBytes:      c1,
		ShardingKey:        req.ShardingKey,
		IndexUsed:          req.UseIndex,
		Cost:               queryCost,
	}, nil
}
