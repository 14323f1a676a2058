// Package operator models the execution cost of filter, nested-loop join and
// join-with-aggregation queries over sharded collections. Nothing here runs a
// query: the operators combine collection statistics, a sharding assignment
// and the cost model into a structured estimate.
package operator

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/shardcost/internal/domain"
	"github.com/kailas-cloud/shardcost/internal/domain/collection"
	"github.com/kailas-cloud/shardcost/internal/domain/schema"
	"github.com/kailas-cloud/shardcost/internal/sizing"
)

func validateCollection(role string, c *collection.Collection) error {
	if c == nil {
		return fmt.Errorf("%s collection: %w", role, domain.ErrNotFound)
	}
	if c.DocumentCount() <= 0 {
		return domain.NewInvalidParameter(role+"_document_count", float64(c.DocumentCount()))
	}
	return nil
}

func validateSelectivity(name string, selectivity float64) error {
	if selectivity <= 0 || selectivity > 1 {
		return domain.NewInvalidParameter(name, selectivity)
	}
	return nil
}

func validateServers(numServers int64) error {
	if numServers <= 0 {
		return domain.NewInvalidParameter("num_servers", float64(numServers))
	}
	return nil
}

// projectedInputSize is the size of a document carrying the keys a query
// reads: output keys, filter keys and, for joins, the join key. Keys absent
// from the schema are skipped silently.
func projectedInputSize(sch schema.Schema, outputKeys, filterKeys []string, joinKey string) int64 {
	keys := make([]string, 0, len(outputKeys)+len(filterKeys)+1)
	keys = append(keys, outputKeys...)
	keys = append(keys, filterKeys...)
	if joinKey != "" {
		keys = append(keys, joinKey)
	}
	return sizing.DocumentSize(sch.Project(sch.Name()+"_input", keys...), nil)
}

// projectedOutputSize is the size of a document carrying only the output keys.
func projectedOutputSize(sch schema.Schema, outputKeys []string) int64 {
	return sizing.DocumentSize(sch.Project(sch.Name()+"_output", outputKeys...), nil)
}

// routed reports whether a predicate can be sent to a single shard: the
// collection is sharded and its sharding key appears among the filter keys.
func routed(shardingKey string, filterKeys []string) bool {
	return shardingKey != "" && slices.Contains(filterKeys, shardingKey)
}
