package operator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/shardcost/internal/costmodel"
	"github.com/kailas-cloud/shardcost/internal/domain/collection"
	"github.com/kailas-cloud/shardcost/internal/domain/schema"
	"github.com/kailas-cloud/shardcost/internal/domain/stats"
)

func testStats(servers int64) stats.Statistics {
	s := stats.Default()
	s.NumServers = servers
	return s.Normalize()
}

func testModel(t *testing.T) *costmodel.Model {
	t.Helper()
	m, err := costmodel.New(costmodel.DefaultParams())
	require.NoError(t, err)
	return m
}

func field(t *testing.T, name string, kind schema.Kind) schema.Field {
	t.Helper()
	f, err := schema.NewField(name, kind, true)
	require.NoError(t, err)
	return f
}

// stockCollection has two integer keys, an integer payload and a string
// payload, so projected sizes stay easy to compute by hand.
func stockCollection(t *testing.T, docs int64) *collection.Collection {
	t.Helper()
	s, err := schema.New("Stock", []schema.Field{
		field(t, "IDP", schema.KindInteger),
		field(t, "IDW", schema.KindInteger),
		field(t, "quantity", schema.KindInteger),
		field(t, "location", schema.KindString),
	})
	require.NoError(t, err)
	c, err := collection.New("Stock", s, docs)
	require.NoError(t, err)
	return c
}

func orderLinesCollection(t *testing.T, docs int64) *collection.Collection {
	t.Helper()
	s, err := schema.New("OrderLines", []schema.Field{
		field(t, "IDC", schema.KindInteger),
		field(t, "IDP", schema.KindInteger),
		field(t, "quantity", schema.KindInteger),
		field(t, "date", schema.KindDate),
	})
	require.NoError(t, err)
	c, err := collection.New("OrderLines", s, docs)
	require.NoError(t, err)
	return c
}

func productCollection(t *testing.T, docs int64) *collection.Collection {
	t.Helper()
	s, err := schema.New("Product", []schema.Field{
		field(t, "IDP", schema.KindInteger),
		field(t, "name", schema.KindString),
		field(t, "brand", schema.KindString),
	})
	require.NoError(t, err)
	c, err := collection.New("Product", s, docs)
	require.NoError(t, err)
	return c
}

// Projected sizes of the fixtures, from the per-kind constants:
// integer fields are 20 bytes, string fields 92.
const (
	intFieldSize = 20
	strFieldSize = 92
)
