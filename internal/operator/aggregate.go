package operator

import (
	"github.com/kailas-cloud/shardcost/internal/costmodel"
	"github.com/kailas-cloud/shardcost/internal/domain"
	"github.com/kailas-cloud/shardcost/internal/domain/cost"
	"github.com/kailas-cloud/shardcost/internal/domain/schema"
	"github.com/kailas-cloud/shardcost/internal/domain/stats"
	"github.com/kailas-cloud/shardcost/internal/sizing"
)

// Aggregate estimates a join followed by a group-by and an optional LIMIT.
// It extends the nested-loop join with the shuffle needed to combine partial
// per-server groups.
type Aggregate struct {
	stats stats.Statistics
	join  *Join
}

// NewAggregate creates an aggregate operator.
func NewAggregate(st stats.Statistics, model *costmodel.Model) *Aggregate {
	return &Aggregate{stats: st, join: NewJoin(st, model)}
}

// AggregateRequest is a join request extended with per-side group-by keys
// and an optional result limit (0 = no limit).
type AggregateRequest struct {
	JoinRequest
	LeftGroupByKey  string
	RightGroupByKey string
	Limit           int64
}

// AggregateSideResult extends the join side report with shuffle figures.
type AggregateSideResult struct {
	JoinSideResult
	GroupByKey          string `json:"group_by_key,omitempty"`
	ShuffleDocuments    int64  `json:"shuffle_documents"`
	ShuffleDocSizeBytes int64  `json:"shuffle_doc_size_bytes"`
}

// AggregateResult reports the phase counts, volumes, shuffle and cost of a
// join-with-aggregation.
type AggregateResult struct {
	S1            int64               `json:"s1"`
	O1            int64               `json:"o1"`
	S2            int64               `json:"s2"`
	O2            int64               `json:"o2"`
	NumLoops      int64               `json:"num_loops"`
	Limit         int64               `json:"limit,omitempty"`
	C1VolumeBytes int64               `json:"c1_volume_bytes"`
	C2VolumeBytes int64               `json:"c2_volume_bytes"`
	VtVolumeBytes int64               `json:"vt_volume_bytes"`
	JoinKey       string              `json:"join_key"`
	Left          AggregateSideResult `json:"left"`
	Right         AggregateSideResult `json:"right"`
	Cost          cost.QueryCost      `json:"cost"`
}

// Estimate computes the cost of the join-with-aggregation.
//
// A side that groups on its sharding key combines its groups locally and
// shuffles nothing. Otherwise every matched document's partial group is
// redistributed to the other servers of that side:
// shuffle = matched_count * (servers_on_side - 1), counted in documents of
// the group-by key projection. A supplied LIMIT caps the loop count; without
// one the loop count stays at the surviving outer document count.
func (a *Aggregate) Estimate(req AggregateRequest) (AggregateResult, error) {
	if req.Limit < 0 {
		return AggregateResult{}, domain.NewInvalidParameter("limit", float64(req.Limit))
	}

	s1, s2, o1, o2, err := a.join.phases(req.JoinRequest)
	if err != nil {
		return AggregateResult{}, err
	}

	leftSchema := req.Left.Collection.Schema()
	rightSchema := req.Right.Collection.Schema()
	leftInput := projectedInputSize(leftSchema, req.Left.OutputKeys, req.Left.FilterKeys, req.JoinKey)
	leftOutput := projectedOutputSize(leftSchema, req.Left.OutputKeys)
	rightInput := projectedInputSize(rightSchema, req.Right.OutputKeys, req.Right.FilterKeys, req.JoinKey)
	rightOutput := projectedOutputSize(rightSchema, req.Right.OutputKeys)

	useSharding := req.Left.ShardingKey != "" && req.Right.ShardingKey != ""
	leftShuffle := shuffleDocuments(useSharding, req.Left.ShardingKey, req.LeftGroupByKey, o1, s1)
	rightShuffle := shuffleDocuments(useSharding, req.Right.ShardingKey, req.RightGroupByKey, o2, s2)
	leftShuffleSize := groupKeySize(leftSchema, req.LeftGroupByKey)
	rightShuffleSize := groupKeySize(rightSchema, req.RightGroupByKey)

	c1 := s1*leftInput + o1*leftOutput + leftShuffle*leftShuffleSize
	c2 := s2*rightInput + o2*rightOutput + rightShuffle*rightShuffleSize

	numLoops := o1
	if req.Limit > 0 {
		numLoops = req.Limit
	}

	queryCost, err := a.join.model.NestedLoopJoinCost(
		float64(req.Left.Collection.DocumentCount()),
		float64(req.Right.Collection.DocumentCount()),
		float64(leftInput), float64(rightInput),
		float64(c1), float64(c2),
		float64(numLoops),
		s1, s2,
	)
	if err != nil {
		return AggregateResult{}, err
	}

	return AggregateResult{
		S1:            s1,
		O1:            o1,
		S2:            s2,
		O2:            o2,
		NumLoops:      numLoops,
		Limit:         req.Limit,
		C1VolumeBytes: c1,
		C2VolumeBytes: c2,
		VtVolumeBytes: c1 + numLoops*c2,
		JoinKey:       req.JoinKey,
		Left: AggregateSideResult{
			JoinSideResult: JoinSideResult{
				InputDocSizeBytes:  leftInput,
				OutputDocSizeBytes: leftOutput,
				ShardingKey:        req.Left.ShardingKey,
			},
			GroupByKey:          req.LeftGroupByKey,
			ShuffleDocuments:    leftShuffle,
			ShuffleDocSizeBytes: leftShuffleSize,
		},
		Right: AggregateSideResult{
			JoinSideResult: JoinSideResult{
				InputDocSizeBytes:  rightInput,
				OutputDocSizeBytes: rightOutput,
				ShardingKey:        req.Right.ShardingKey,
			},
			GroupByKey:          req.RightGroupByKey,
			ShuffleDocuments:    rightShuffle,
			ShuffleDocSizeBytes: rightShuffleSize,
		},
		Cost: queryCost,
	}, nil
}

// shuffleDocuments is zero when the side does not group, or when sharding
// already co-locates the groups (sharding key equals group-by key).
func shuffleDocuments(useSharding bool, shardingKey, groupByKey string, matched, servers int64) int64 {
	if groupByKey == "" {
		return 0
	}
	if useSharding && shardingKey == groupByKey {
		return 0
	}
	return matched * (servers - 1)
}

func groupKeySize(sch schema.Schema, groupByKey string) int64 {
	if groupByKey == "" {
		return 0
	}
	return sizing.DocumentSize(sch.Project(sch.Name()+"_group", groupByKey), nil)
}
