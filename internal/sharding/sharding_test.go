package sharding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/shardcost/internal/domain"
	"github.com/kailas-cloud/shardcost/internal/domain/collection"
	"github.com/kailas-cloud/shardcost/internal/domain/schema"
)

func stockCollection(t *testing.T, docs int64) *collection.Collection {
	t.Helper()
	idp, err := schema.NewField("IDP", schema.KindInteger, true)
	require.NoError(t, err)
	idw, err := schema.NewField("IDW", schema.KindInteger, true)
	require.NoError(t, err)
	s, err := schema.New("Stock", []schema.Field{idp, idw})
	require.NoError(t, err)
	c, err := collection.New("Stock", s, docs)
	require.NoError(t, err)
	return c
}

func TestDistribute_KeyWiderThanCluster(t *testing.T) {
	// 20M stock entries sharded by product id over 1000 servers.
	c := stockCollection(t, 20_000_000)

	d, err := Distribute(c, "IDP", 100_000, 1000)
	require.NoError(t, err)

	assert.Equal(t, "IDP", d.ShardingKey)
	assert.Equal(t, int64(20_000_000), d.TotalDocuments)
	assert.Equal(t, float64(20_000), d.AvgDocsPerServer)
	assert.Equal(t, float64(100), d.AvgDistinctPerServer)
	assert.Equal(t, int64(1000), d.ServersWithData)
	assert.Equal(t, 1.0, d.Utilization)
	assert.False(t, d.SkewWarning)
}

func TestDistribute_KeyNarrowerThanCluster(t *testing.T) {
	// Sharding by warehouse id leaves 800 of 1000 servers empty.
	c := stockCollection(t, 20_000_000)

	d, err := Distribute(c, "IDW", 200, 1000)
	require.NoError(t, err)

	assert.Equal(t, int64(200), d.ServersWithData)
	assert.Equal(t, 0.2, d.Utilization)
	assert.True(t, d.SkewWarning)
}

func TestDistribute_SkewThreshold(t *testing.T) {
	c := stockCollection(t, 1000)

	atHalf, err := Distribute(c, "k", 500, 1000)
	require.NoError(t, err)
	assert.False(t, atHalf.SkewWarning, "utilization of exactly 0.5 is not skewed")

	below, err := Distribute(c, "k", 499, 1000)
	require.NoError(t, err)
	assert.True(t, below.SkewWarning)
}

func TestDistribute_InvalidArguments(t *testing.T) {
	c := stockCollection(t, 1000)

	_, err := Distribute(c, "k", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = Distribute(c, "k", -1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestCompare_PreservesCandidateOrder(t *testing.T) {
	c := stockCollection(t, 20_000_000)
	candidates := []Candidate{
		{Key: "IDW", DistinctValues: 200},
		{Key: "IDP", DistinctValues: 100_000},
	}

	ds, err := Compare(c, candidates, 1000)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "IDW", ds[0].ShardingKey)
	assert.Equal(t, "IDP", ds[1].ShardingKey)
}

func TestRecommend_PrefersHighUtilization(t *testing.T) {
	c := stockCollection(t, 20_000_000)
	candidates := []Candidate{
		{Key: "IDW", DistinctValues: 200},
		{Key: "IDP", DistinctValues: 100_000},
	}

	key, err := Recommend(c, candidates, 1000)
	require.NoError(t, err)
	assert.Equal(t, "IDP", key)
}

func TestRecommend_TieKeepsFirst(t *testing.T) {
	c := stockCollection(t, 20_000_000)
	candidates := []Candidate{
		{Key: "first", DistinctValues: 100_000},
		{Key: "second", DistinctValues: 100_000},
	}

	key, err := Recommend(c, candidates, 1000)
	require.NoError(t, err)
	assert.Equal(t, "first", key)
}

func TestRecommend_NoCandidates(t *testing.T) {
	c := stockCollection(t, 1000)
	_, err := Recommend(c, nil, 1000)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}
