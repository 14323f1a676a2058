package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/shardcost/internal/domain"
)

// q4Request is the warehouse-stock-with-product-names join used across the
// join tests: Stock is the outer side filtered by warehouse, Product the
// inner side matched by id.
func q4Request(t *testing.T, stockKey, productKey string) JoinRequest {
	t.Helper()
	return JoinRequest{
		JoinKey: "IDP",
		Left: JoinSide{
			Collection:  stockCollection(t, 20_000_000),
			OutputKeys:  []string{"quantity"},
			FilterKeys:  []string{"IDW"},
			ShardingKey: stockKey,
			Selectivity: 1.0 / 200,
		},
		Right: JoinSide{
			Collection:  productCollection(t, 100_000),
			OutputKeys:  []string{"name"},
			ShardingKey: productKey,
			Selectivity: 1.0 / 100_000,
		},
	}
}

func TestJoinEstimate_NoSharding(t *testing.T) {
	j := NewJoin(testStats(1000), testModel(t))

	res, err := j.Estimate(q4Request(t, "", ""))
	require.NoError(t, err)

	assert.Equal(t, int64(1000), res.S1)
	assert.Equal(t, int64(1000), res.S2)
	assert.Equal(t, int64(100_000), res.O1) // 20M / 200 warehouses
	assert.Equal(t, int64(1), res.O2)
	assert.Equal(t, res.O1, res.NumLoops)
}

func TestJoinEstimate_ShardingNeedsBothSides(t *testing.T) {
	j := NewJoin(testStats(1000), testModel(t))

	// Only the outer side declares a key: sharding stays off.
	res, err := j.Estimate(q4Request(t, "IDW", ""))
	require.NoError(t, err)

	assert.Equal(t, int64(1000), res.S1)
	assert.Equal(t, int64(1000), res.S2)
}

func TestJoinEstimate_OuterRoutedByFilter(t *testing.T) {
	j := NewJoin(testStats(1000), testModel(t))

	// Stock sharded by the filtered warehouse id: the outer phase hits one
	// shard. Product sharded by brand does not help the inner phase.
	res, err := j.Estimate(q4Request(t, "IDW", "brand"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.S1)
	assert.Equal(t, int64(1000), res.S2)
}

func TestJoinEstimate_InnerRoutedByJoinKey(t *testing.T) {
	j := NewJoin(testStats(1000), testModel(t))

	// Product sharded by the join key: every outer row finds its match on
	// exactly one server.
	res, err := j.Estimate(q4Request(t, "IDW", "IDP"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.S1)
	assert.Equal(t, int64(1), res.S2)
}

func TestJoinEstimate_VolumesAndSizes(t *testing.T) {
	j := NewJoin(testStats(1000), testModel(t))

	res, err := j.Estimate(q4Request(t, "IDW", "IDP"))
	require.NoError(t, err)

	// Outer input: quantity + IDW + join key IDP, all integers.
	assert.Equal(t, int64(3*intFieldSize), res.Left.InputDocSizeBytes)
	assert.Equal(t, int64(intFieldSize), res.Left.OutputDocSizeBytes)
	// Inner input: name + join key IDP.
	assert.Equal(t, int64(strFieldSize+intFieldSize), res.Right.InputDocSizeBytes)
	assert.Equal(t, int64(strFieldSize), res.Right.OutputDocSizeBytes)

	assert.Equal(t, res.S1*res.Left.InputDocSizeBytes+res.O1*res.Left.OutputDocSizeBytes, res.C1VolumeBytes)
	assert.Equal(t, res.S2*res.Right.InputDocSizeBytes+res.O2*res.Right.OutputDocSizeBytes, res.C2VolumeBytes)
	assert.Equal(t, res.C1VolumeBytes+res.NumLoops*res.C2VolumeBytes, res.VtVolumeBytes)
}

func TestJoinEstimate_CostMatchesModel(t *testing.T) {
	st := testStats(1000)
	model := testModel(t)
	j := NewJoin(st, model)

	req := q4Request(t, "IDW", "IDP")
	res, err := j.Estimate(req)
	require.NoError(t, err)

	want, err := model.NestedLoopJoinCost(
		float64(req.Left.Collection.DocumentCount()),
		float64(req.Right.Collection.DocumentCount()),
		float64(res.Left.InputDocSizeBytes), float64(res.Right.InputDocSizeBytes),
		float64(res.C1VolumeBytes), float64(res.C2VolumeBytes),
		float64(res.NumLoops),
		res.S1, res.S2,
	)
	require.NoError(t, err)
	assert.Equal(t, want, res.Cost)
}

func TestJoinEstimate_Invalid(t *testing.T) {
	j := NewJoin(testStats(10), testModel(t))

	req := q4Request(t, "", "")
	req.Left.Collection = nil
	_, err := j.Estimate(req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = q4Request(t, "", "")
	req.Right.Selectivity = 0
	_, err = j.Estimate(req)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	req = q4Request(t, "", "")
	req.Left.Selectivity = 2
	_, err = j.Estimate(req)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}
