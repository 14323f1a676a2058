// Package sharding evaluates candidate sharding keys for a collection:
// per-server load under a key, side-by-side comparison of candidates, and a
// scored recommendation.
package sharding

import (
	"github.com/kailas-cloud/shardcost/internal/domain"
	"github.com/kailas-cloud/shardcost/internal/domain/collection"
)

// Distribution describes the per-server load of one sharding key, assuming
// uniform distribution of key values.
type Distribution struct {
	ShardingKey          string  `json:"sharding_key"`
	TotalDocuments       int64   `json:"total_documents"`
	DistinctValues       int64   `json:"distinct_values"`
	NumServers           int64   `json:"num_servers"`
	AvgDocsPerServer     float64 `json:"avg_docs_per_server"`
	AvgDistinctPerServer float64 `json:"avg_distinct_per_server"`
	ServersWithData      int64   `json:"servers_with_data"`
	Utilization          float64 `json:"server_utilization"`
	SkewWarning          bool    `json:"skew_warning"`
}

// Candidate is one sharding key under evaluation together with the distinct
// value count of that key.
type Candidate struct {
	Key            string `json:"key"`
	DistinctValues int64  `json:"distinct_values"`
}

// Distribute computes the distribution metrics for sharding the collection
// by the given key. A key with fewer distinct values than servers leaves
// servers empty; utilization below one half raises the skew warning.
func Distribute(c *collection.Collection, key string, distinctValues, numServers int64) (Distribution, error) {
	if numServers <= 0 {
		return Distribution{}, domain.NewInvalidParameter("num_servers", float64(numServers))
	}
	if distinctValues < 0 {
		return Distribution{}, domain.NewInvalidParameter("distinct_values", float64(distinctValues))
	}

	serversWithData := min(distinctValues, numServers)
	utilization := float64(serversWithData) / float64(numServers)

	return Distribution{
		ShardingKey:          key,
		TotalDocuments:       c.DocumentCount(),
		DistinctValues:       distinctValues,
		NumServers:           numServers,
		AvgDocsPerServer:     float64(c.DocumentCount()) / float64(numServers),
		AvgDistinctPerServer: float64(distinctValues) / float64(numServers),
		ServersWithData:      serversWithData,
		Utilization:          utilization,
		SkewWarning:          utilization < 0.5,
	}, nil
}

// Compare evaluates every candidate key, reporting distributions in the
// candidates' order.
func Compare(c *collection.Collection, candidates []Candidate, numServers int64) ([]Distribution, error) {
	out := make([]Distribution, 0, len(candidates))
	for _, cand := range candidates {
		d, err := Distribute(c, cand.Key, cand.DistinctValues, numServers)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Recommend picks the candidate with the highest score, where
// score = 0.7*utilization + 0.3*min(avg_distinct_per_server/10, 1).
// Comparison is strict greater-than against the running best, so on a tie
// the earlier candidate wins.
func Recommend(c *collection.Collection, candidates []Candidate, numServers int64) (string, error) {
	if len(candidates) == 0 {
		return "", domain.NewInvalidParameter("candidates", 0)
	}

	distributions, err := Compare(c, candidates, numServers)
	if err != nil {
		return "", err
	}

	bestKey := ""
	bestScore := -1.0
	for _, d := range distributions {
		distinctScore := min(d.AvgDistinctPerServer/10, 1.0)
		score := 0.7*d.Utilization + 0.3*distinctScore
		if score > bestScore {
			bestScore = score
			bestKey = d.ShardingKey
		}
	}
	return bestKey, nil
}
