package operator

import (
	"github.com/kailas-cloud/shardcost/internal/costmodel"
	"github.com/kailas-cloud/shardcost/internal/domain/collection"
	"github.com/kailas-cloud/shardcost/internal/domain/cost"
	"github.com/kailas-cloud/shardcost/internal/domain/stats"
)

// Join estimates two-collection equality joins executed as nested loops:
// one inner pass per surviving outer document.
type Join struct {
	stats stats.Statistics
	model *costmodel.Model
}

// NewJoin creates a nested-loop join operator.
func NewJoin(st stats.Statistics, model *costmodel.Model) *Join {
	return &Join{stats: st, model: model}
}

// JoinSide describes one side of the join.
type JoinSide struct {
	Collection  *collection.Collection
	OutputKeys  []string
	FilterKeys  []string
	ShardingKey string
	Selectivity float64
}

// JoinRequest describes the equality join to estimate. Left is the outer
// side of the nested loop, Right the inner side.
type JoinRequest struct {
	Left    JoinSide
	Right   JoinSide
	JoinKey string
}

// JoinSideResult reports per-side sizes of a join estimate.
type JoinSideResult struct {
	InputDocSizeBytes  int64  `json:"input_doc_size_bytes"`
	OutputDocSizeBytes int64  `json:"output_doc_size_bytes"`
	ShardingKey        string `json:"sharding_key,omitempty"`
}

// JoinResult reports the phase counts, volumes and cost of a join.
// S1/O1 describe the outer phase, S2/O2 one inner iteration; C1/C2 are the
// per-phase volumes and VT the loop-weighted total C1 + NumLoops*C2.
type JoinResult struct {
	S1            int64          `json:"s1"`
	O1            int64          `json:"o1"`
	S2            int64          `json:"s2"`
	O2            int64          `json:"o2"`
	NumLoops      int64          `json:"num_loops"`
	C1VolumeBytes int64          `json:"c1_volume_bytes"`
	C2VolumeBytes int64          `json:"c2_volume_bytes"`
	VtVolumeBytes int64          `json:"vt_volume_bytes"`
	JoinKey       string         `json:"join_key"`
	Left          JoinSideResult `json:"left"`
	Right         JoinSideResult `json:"right"`
	Cost          cost.QueryCost `json:"cost"`
}

// Estimate computes the cost of the nested-loop join.
//
// Sharding awareness needs both sides to declare a sharding key. The outer
// side routes to one shard when its sharding key is among its own filter
// keys. The inner side additionally routes when partitioned by the join key:
// co-location lets each outer row find its match on exactly one server.
func (j *Join) Estimate(req JoinRequest) (JoinResult, error) {
	s1, s2, o1, o2, err := j.phases(req)
	if err != nil {
		return JoinResult{}, err
	}

	leftSchema := req.Left.Collection.Schema()
	rightSchema := req.Right.Collection.Schema()
	leftInput := projectedInputSize(leftSchema, req.Left.OutputKeys, req.Left.FilterKeys, req.JoinKey)
	leftOutput := projectedOutputSize(leftSchema, req.Left.OutputKeys)
	rightInput := projectedInputSize(rightSchema, req.Right.OutputKeys, req.Right.FilterKeys, req.JoinKey)
	rightOutput := projectedOutputSize(rightSchema, req.Right.OutputKeys)

	c1 := s1*leftInput + o1*leftOutput
	c2 := s2*rightInput + o2*rightOutput

	// One inner scan per surviving outer document.
	numLoops := o1

	queryCost, err := j.model.NestedLoopJoinCost(
		float64(req.Left.Collection.DocumentCount()),
		float64(req.Right.Collection.DocumentCount()),
		float64(leftInput), float64(rightInput),
		float64(c1), float64(c2),
		float64(numLoops),
		s1, s2,
	)
	if err != nil {
		return JoinResult{}, err
	}

	return JoinResult{
		S1:            s1,
		O1:            o1,
		S2:            s2,
		O2:            o2,
		NumLoops:      numLoops,
		C1VolumeBytes: c1,
		C2VolumeBytes: c2,
		VtVolumeBytes: c1 + numLoops*c2,
		JoinKey:       req.JoinKey,
		Left: JoinSideResult{
			InputDocSizeBytes:  leftInput,
			OutputDocSizeBytes: leftOutput,
			ShardingKey:        req.Left.ShardingKey,
		},
		Right: JoinSideResult{
			InputDocSizeBytes:  rightInput,
			OutputDocSizeBytes: rightOutput,
			ShardingKey:        req.Right.ShardingKey,
		},
		Cost: queryCost,
	}, nil
}

// phases validates the request and computes the fan-outs and match counts
// shared by the join and aggregate operators.
func (j *Join) phases(req JoinRequest) (s1, s2, o1, o2 int64, err error) {
	if err = validateCollection("left", req.Left.Collection); err != nil {
		return 0, 0, 0, 0, err
	}
	if err = validateCollection("right", req.Right.Collection); err != nil {
		return 0, 0, 0, 0, err
	}
	if err = validateSelectivity("left_selectivity", req.Left.Selectivity); err != nil {
		return 0, 0, 0, 0, err
	}
	if err = validateSelectivity("right_selectivity", req.Right.Selectivity); err != nil {
		return 0, 0, 0, 0, err
	}
	if err = validateServers(j.stats.NumServers); err != nil {
		return 0, 0, 0, 0, err
	}

	useSharding := req.Left.ShardingKey != "" && req.Right.ShardingKey != ""

	s1 = j.stats.NumServers
	if useSharding && routed(req.Left.ShardingKey, req.Left.FilterKeys) {
		s1 = 1
	}
	s2 = j.stats.NumServers
	if useSharding && (routed(req.Right.ShardingKey, req.Right.FilterKeys) || req.Right.ShardingKey == req.JoinKey) {
		s2 = 1
	}

	o1 = int64(float64(req.Left.Collection.DocumentCount()) * req.Left.Selectivity)
	o2 = int64(float64(req.Right.Collection.DocumentCount()) * req.Right.Selectivity)
	return s1, s2, o1, o2, nil
}
